package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/memofilter/pkg/filter"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []filter.Filter
	}{
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
		{
			name: "hash tag and tag prefix",
			text: "#work tag:#home tag:books",
			want: []filter.Filter{filter.Tag("work"), filter.Tag("home"), filter.Tag("books")},
		},
		{
			name: "properties",
			text: "has:link has:Code has:tasks",
			want: []filter.Filter{
				filter.New(filter.Property(filter.HasLink), ""),
				filter.New(filter.Property(filter.HasCode), ""),
				filter.New(filter.Property(filter.HasTaskList), ""),
			},
		},
		{
			name: "pinned visibility date",
			text: "is:pinned visibility:public date:2024-01-31",
			want: []filter.Filter{
				filter.New(filter.Pinned, ""),
				filter.New(filter.Visibility, "PUBLIC"),
				filter.New(filter.DisplayTime, "2024-01-31"),
			},
		},
		{
			name: "structured first then words without stopwords",
			text: "the meeting notes #work about budget",
			want: []filter.Filter{
				filter.Tag("work"),
				filter.New(filter.ContentSearch, "meeting"),
				filter.New(filter.ContentSearch, "notes"),
				filter.New(filter.ContentSearch, "budget"),
			},
		},
		{
			name: "only stopwords are kept",
			text: "The Who",
			want: []filter.Filter{
				filter.New(filter.ContentSearch, "The"),
				filter.New(filter.ContentSearch, "Who"),
			},
		},
		{
			name: "unrecognized prefixes are words",
			text: "has:pictures date:yesterday is:archived # tag:",
			want: []filter.Filter{
				filter.New(filter.ContentSearch, "has:pictures"),
				filter.New(filter.ContentSearch, "date:yesterday"),
				filter.New(filter.ContentSearch, "is:archived"),
				filter.New(filter.ContentSearch, "#"),
				filter.New(filter.ContentSearch, "tag:"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.text))
		})
	}
}

func TestParseEncodes(t *testing.T) {
	fs := Parse("#a,b x:y")
	assert.Equal(t, "tagSearch:a%2Cb,contentSearch:x%3Ay", filter.Encode(fs))
	assert.Equal(t, fs, filter.Decode(filter.Encode(fs)))
}
