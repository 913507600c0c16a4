package filtersync

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func queryValue(s string) string {
	return url.QueryEscape(s)
}

func TestMemoryNavigator(t *testing.T) {
	nav, err := NewMemoryNavigator("https://memos.example/explore?a=1")
	require.NoError(t, err)
	assert.Equal(t, 1, nav.Len())

	loc := nav.Location()
	loc.Path = "/mutated"
	assert.Equal(t, "/explore", nav.Location().Path, "Location returns a copy")

	require.NoError(t, nav.Replace(mustURL(t, "https://memos.example/explore?a=2")))
	assert.Equal(t, 1, nav.Len())
	assert.Equal(t, 1, nav.Replaced())
	assert.Equal(t, "a=2", nav.Location().RawQuery)

	nav.Push(mustURL(t, "https://memos.example/inbox"))
	assert.Equal(t, 2, nav.Len())
	assert.Equal(t, "/inbox", nav.Location().Path)
}

func TestNewMemoryNavigatorBadURL(t *testing.T) {
	_, err := NewMemoryNavigator("http://[::1")
	assert.Error(t, err)
}

func TestWithParam(t *testing.T) {
	u := mustURL(t, "https://memos.example/?b=2&filter=old")

	next, changed := withParam(u, "filter", "new")
	assert.True(t, changed)
	assert.Equal(t, "b=2&filter=new", next.RawQuery)
	assert.Equal(t, "b=2&filter=old", u.RawQuery, "input untouched")

	_, changed = withParam(u, "filter", "old")
	assert.False(t, changed)

	next, changed = withParam(u, "filter", "")
	assert.True(t, changed)
	assert.Equal(t, "b=2", next.RawQuery)

	_, changed = withParam(mustURL(t, "https://memos.example/"), "filter", "")
	assert.False(t, changed)

	// Repeated params collapse to one.
	next, changed = withParam(mustURL(t, "https://memos.example/?filter=x&filter=x"), "filter", "x")
	assert.True(t, changed)
	assert.Equal(t, "filter=x", next.RawQuery)
}

func TestWithParamLeavesOtherPairsAlone(t *testing.T) {
	u := mustURL(t, "https://memos.example/?b=1&a=2&odd=%zz&q=x+y")

	next, changed := withParam(u, "filter", "tagSearch:a")
	assert.True(t, changed)
	assert.Equal(t, "b=1&a=2&odd=%zz&q=x+y&filter=tagSearch%3Aa", next.RawQuery)

	next, changed = withParam(next, "filter", "pinned:")
	assert.True(t, changed)
	assert.Equal(t, "b=1&a=2&odd=%zz&q=x+y&filter=pinned%3A", next.RawQuery)

	next, changed = withParam(next, "filter", "")
	assert.True(t, changed)
	assert.Equal(t, u.RawQuery, next.RawQuery)

	// The param keeps its slot when it is not last.
	next, _ = withParam(mustURL(t, "https://memos.example/?filter=old&view=list"), "filter", "new")
	assert.Equal(t, "filter=new&view=list", next.RawQuery)
}
