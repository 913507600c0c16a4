package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		fs   []Filter
	}{
		{"empty", []Filter{}},
		{"single tag", []Filter{Tag("projectA")}},
		{"no value", []Filter{New(Pinned, ""), New(Property(HasLink), "")}},
		{"separators in value", []Filter{
			Tag("a,b"),
			New(ContentSearch, "key:value"),
			New(ContentSearch, "100% & more"),
		}},
		{"unicode", []Filter{Tag("日本語"), New(ContentSearch, "café ☕")}},
		{"unknown factor", []Filter{New(ParseFactor("weird:factor,name"), "x")}},
		{"unknown property", []Filter{New(Property("unknownThing"), "")}},
		{"duplicates and order", []Filter{Tag("b"), Tag("a"), Tag("b")}},
		{"empty factor", []Filter{{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.fs)
			got, err := Parse(encoded)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.fs, got, cmp.Comparer(Equal)); diff != "" {
				t.Errorf("round trip of %q mismatch (-want +got):\n%s", encoded, diff)
			}
			assert.Equal(t, encoded, Encode(got))
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]Filter{}))
	assert.Equal(t, "tagSearch:projectA", Encode([]Filter{Tag("projectA")}))
	assert.Equal(t, "pinned:", Encode([]Filter{New(Pinned, "")}))
	assert.Equal(t,
		"tagSearch:a%2Cb,contentSearch:x%3Ay",
		Encode([]Filter{Tag("a,b"), New(ContentSearch, "x:y")}))
	assert.Equal(t, "property.hasCode:", Encode([]Filter{New(Property(HasCode), "")}))
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{
		"tagSearch",               // no separator
		"tagSearch:a,",            // trailing empty segment
		",tagSearch:a",            // leading empty segment
		"tagSearch:a,,pinned:",    // empty middle segment
		"tagSearch:%zz",           // bad escape in value
		"tag%Search:a",            // bad escape in factor
		"tagSearch:a,contentOnly", // second segment broken
	} {
		t.Run(raw, func(t *testing.T) {
			fs, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Nil(t, fs)

			decoded := Decode(raw)
			assert.NotNil(t, decoded)
			assert.Empty(t, decoded)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	fs := Decode("")
	assert.NotNil(t, fs)
	assert.Empty(t, fs)
}

func TestDecodeValueWithColon(t *testing.T) {
	// Only the first unescaped ":" splits factor from value.
	fs := Decode("contentSearch:a:b")
	require.Len(t, fs, 1)
	assert.Equal(t, ContentSearch, fs[0].Factor)
	assert.Equal(t, "a:b", fs[0].Value)
}

func TestDecodePlusIsSpace(t *testing.T) {
	fs := Decode("contentSearch:hello+world")
	require.Len(t, fs, 1)
	assert.Equal(t, "hello world", fs[0].Value)
}
