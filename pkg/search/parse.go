// Package search turns search-bar text into memo filters and suggests tag
// filters for known tags mentioned in free text.
package search

import (
	"strings"
	"time"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/memofilter/pkg/filter"
)

var english = stopwords.MustGet("en")

// Parse splits text on whitespace and maps recognized tokens to filters:
//
//	#work, tag:work     tagSearch
//	has:link|code|task  property.hasLink / hasCode / hasTaskList
//	is:pinned           pinned
//	visibility:public   visibility (upper-cased)
//	date:2024-01-31     displayTime
//
// Every other word becomes its own contentSearch filter, minus English
// stopwords. If only stopwords remain they are kept. Structured filters come
// first, then content words, each group in input order.
func Parse(text string) []filter.Filter {
	var out []filter.Filter
	var words []string
	significant := 0

	for _, tok := range strings.Fields(text) {
		if f, ok := parseToken(tok); ok {
			out = append(out, f)
			continue
		}
		words = append(words, tok)
		if !isStopword(tok) {
			significant++
		}
	}

	for _, w := range words {
		if significant > 0 && isStopword(w) {
			continue
		}
		out = append(out, filter.New(filter.ContentSearch, w))
	}
	return out
}

func isStopword(word string) bool {
	return english.Contains(strings.ToLower(word))
}

func parseToken(tok string) (filter.Filter, bool) {
	if name, ok := strings.CutPrefix(tok, "#"); ok && name != "" {
		return filter.Tag(name), true
	}
	key, value, ok := strings.Cut(tok, ":")
	if !ok || value == "" {
		return filter.Filter{}, false
	}
	switch strings.ToLower(key) {
	case "tag":
		return filter.Tag(strings.TrimPrefix(value, "#")), true
	case "has":
		if sub, ok := propertyAlias(value); ok {
			return filter.New(filter.Property(sub), ""), true
		}
	case "is":
		if strings.EqualFold(value, "pinned") {
			return filter.New(filter.Pinned, ""), true
		}
	case "visibility":
		return filter.New(filter.Visibility, strings.ToUpper(value)), true
	case "date":
		if _, err := time.Parse(time.DateOnly, value); err == nil {
			return filter.New(filter.DisplayTime, value), true
		}
	}
	return filter.Filter{}, false
}

func propertyAlias(v string) (string, bool) {
	switch strings.ToLower(v) {
	case "link", "links":
		return filter.HasLink, true
	case "code":
		return filter.HasCode, true
	case "task", "tasks", "tasklist":
		return filter.HasTaskList, true
	}
	return "", false
}
