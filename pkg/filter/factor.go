// Package filter defines memo filter conditions and their URL wire format.
// A Filter is a factor plus an optional value; collections are ordered.
package filter

import (
	"encoding/json"
	"strings"
)

// Kind identifies the dimension a filter narrows on.
type Kind int

const (
	KindOther Kind = iota // Unrecognized spelling, kept verbatim
	KindTagSearch
	KindVisibility
	KindContentSearch
	KindDisplayTime
	KindPinned
	KindProperty // Content-shape predicate, sub-kind carried in the factor
)

func (k Kind) String() string {
	switch k {
	case KindTagSearch:
		return "tagSearch"
	case KindVisibility:
		return "visibility"
	case KindContentSearch:
		return "contentSearch"
	case KindDisplayTime:
		return "displayTime"
	case KindPinned:
		return "pinned"
	case KindProperty:
		return "property"
	default:
		return "other"
	}
}

// PropertyPrefix starts every property factor spelling.
const PropertyPrefix = "property."

// Recognized property sub-kinds.
const (
	HasLink     = "hasLink"
	HasTaskList = "hasTaskList"
	HasCode     = "hasCode"
)

// Factor is a filter dimension. The zero value is an empty KindOther factor.
// Fields are unexported so every Factor has exactly one spelling.
type Factor struct {
	kind Kind
	name string // property sub-kind, or raw spelling for KindOther
}

var (
	TagSearch     = Factor{kind: KindTagSearch}
	Visibility    = Factor{kind: KindVisibility}
	ContentSearch = Factor{kind: KindContentSearch}
	DisplayTime   = Factor{kind: KindDisplayTime}
	Pinned        = Factor{kind: KindPinned}
)

// Property returns the property factor for a sub-kind such as HasLink.
// Unrecognized sub-kinds are valid.
func Property(sub string) Factor {
	return Factor{kind: KindProperty, name: sub}
}

// ParseFactor maps a spelling to its factor. It never fails: unknown
// spellings become KindOther factors that print back unchanged.
func ParseFactor(s string) Factor {
	switch s {
	case "tagSearch":
		return TagSearch
	case "visibility":
		return Visibility
	case "contentSearch":
		return ContentSearch
	case "displayTime":
		return DisplayTime
	case "pinned":
		return Pinned
	}
	if sub, ok := strings.CutPrefix(s, PropertyPrefix); ok {
		return Property(sub)
	}
	return Factor{kind: KindOther, name: s}
}

// Kind returns the factor's kind.
func (f Factor) Kind() Kind { return f.kind }

// Sub returns the property sub-kind; ok is false for non-property factors.
func (f Factor) Sub() (sub string, ok bool) {
	if f.kind != KindProperty {
		return "", false
	}
	return f.name, true
}

// String returns the wire spelling, the inverse of ParseFactor.
func (f Factor) String() string {
	switch f.kind {
	case KindProperty:
		return PropertyPrefix + f.name
	case KindOther:
		return f.name
	default:
		return f.kind.String()
	}
}

// MarshalJSON encodes the factor as its spelling.
func (f Factor) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts any string spelling.
func (f *Factor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = ParseFactor(s)
	return nil
}
