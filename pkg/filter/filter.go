package filter

// Filter is one condition: a factor plus an optional value.
// An empty Value means the filter is a pure predicate (e.g. pinned).
type Filter struct {
	Factor Factor `json:"factor"`
	Value  string `json:"value,omitempty"`
}

// New builds a filter.
func New(factor Factor, value string) Filter {
	return Filter{Factor: factor, Value: value}
}

// Tag builds a tagSearch filter.
func Tag(name string) Filter {
	return Filter{Factor: TagSearch, Value: name}
}

// Equal reports whether a and b have the same factor and value.
func Equal(a, b Filter) bool {
	return a.Factor == b.Factor && a.Value == b.Value
}

// Is returns a predicate matching filters equal to f.
func Is(f Filter) func(Filter) bool {
	return func(other Filter) bool { return Equal(f, other) }
}

// Key is a stable rendering identity. Key(a) == Key(b) iff Equal(a, b).
func Key(f Filter) string {
	return encodeOne(f)
}

// Label keys handed to the translator for recognized property sub-kinds.
const (
	LabelHasLink     = "filters.has-link"
	LabelHasCode     = "filters.has-code"
	LabelHasTaskList = "filters.has-task-list"
)

// Translator resolves a label key to user-facing text.
type Translator func(key string) string

// LabelKey returns the label key for a property sub-kind.
func LabelKey(sub string) (string, bool) {
	switch sub {
	case HasLink:
		return LabelHasLink, true
	case HasCode:
		return LabelHasCode, true
	case HasTaskList:
		return LabelHasTaskList, true
	default:
		return "", false
	}
}

// DisplayText returns the chip text for f. It never fails.
func DisplayText(f Filter, t Translator) string {
	if f.Value != "" {
		return f.Value
	}
	if sub, ok := f.Factor.Sub(); ok {
		key, known := LabelKey(sub)
		if !known {
			return sub
		}
		if t == nil {
			return key
		}
		return t(key)
	}
	return f.Factor.String()
}

// Tags returns the values of tagSearch filters that carry a value,
// in collection order with duplicates kept.
func Tags(fs []Filter) []string {
	tags := make([]string, 0, len(fs))
	for _, f := range fs {
		if f.Factor == TagSearch && f.Value != "" {
			tags = append(tags, f.Value)
		}
	}
	return tags
}

// OnlyTags projects a collection onto its tagSearch filters.
func OnlyTags(fs []Filter) []Filter {
	out := make([]Filter, 0, len(fs))
	for _, f := range fs {
		if f.Factor == TagSearch {
			out = append(out, f)
		}
	}
	return out
}
