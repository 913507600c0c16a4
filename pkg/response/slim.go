// Package response provides the JSON strings handed back to the JS client.
// Results are serialized with only the fields the client reads.
package response

import (
	"encoding/json"

	"github.com/kittclouds/memofilter/pkg/filtersync"
)

// Result is the envelope for calls that return no data.
// Exactly one field is set.
type Result struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// Error creates an error result
func Error(msg string) string {
	return marshal(Result{Error: msg})
}

// Success creates a success result
func Success(msg string) string {
	return marshal(Result{Success: msg})
}

// Count reports how many items a call touched.
func Count(n int) string {
	return marshal(Result{Count: &n})
}

// SlimChip contains only the chip fields the client renders.
// The full filter is left out; the key is enough to remove it.
type SlimChip struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	Icon      string `json:"icon,omitempty"`
	Truncate  bool   `json:"truncate,omitempty"`
	Removable bool   `json:"removable,omitempty"`
}

// FromChips converts controller chips to their slim form.
func FromChips(chips []filtersync.Chip) []SlimChip {
	out := make([]SlimChip, 0, len(chips))
	for _, c := range chips {
		out = append(out, SlimChip{
			Key:       c.Key,
			Text:      c.Text,
			Icon:      c.Icon,
			Truncate:  c.Truncate,
			Removable: c.Removable,
		})
	}
	return out
}

// MarshalChips creates the minimal chips JSON.
func MarshalChips(chips []filtersync.Chip) string {
	return marshal(FromChips(chips))
}

// JSON marshals v, or returns an error result if it cannot.
func JSON(v any) string {
	return marshal(v)
}

func marshal(v any) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		bytes, _ = json.Marshal(Result{Error: err.Error()})
	}
	return string(bytes)
}
