// Package store provides the SQLite-backed tag catalog.
// It records which tags each memo carries so search suggestions only name
// tags that exist. Filters themselves are never stored here.
package store

// Tag is a tag name with the number of memos carrying it.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MemoTags is the tag set of one memo, the unit of hydration.
type MemoTags struct {
	MemoID    string   `json:"memoId"`
	Tags      []string `json:"tags"`
	UpdatedAt int64    `json:"updatedAt"`
}

// TagStorer defines the tag catalog.
// SQLiteStore is the sole implementation, in-memory by default for WASM.
type TagStorer interface {
	SetMemoTags(mt *MemoTags) error
	Hydrate(all []*MemoTags) (int, error)
	DeleteMemo(memoID string) error
	ListTags() ([]Tag, error)
	TagNames() ([]string, error)
	CountTags() (int, error)

	// Export/Import (catalog snapshot for reload)
	Export() ([]byte, error)
	Import(data []byte) error

	Close() error
}
