package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Wire format: "factor:value" segments joined by ",". Both halves are
// query-escaped so separators inside values cannot be confused with ours.
const (
	listSep  = ","
	valueSep = ":"
)

// ErrMalformed is wrapped by every Parse failure.
var ErrMalformed = errors.New("malformed filter query")

// Encode serializes filters in order. An empty collection encodes to "".
func Encode(fs []Filter) string {
	if len(fs) == 0 {
		return ""
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = encodeOne(f)
	}
	return strings.Join(parts, listSep)
}

func encodeOne(f Filter) string {
	return url.QueryEscape(f.Factor.String()) + valueSep + url.QueryEscape(f.Value)
}

// Parse is the strict inverse of Encode. A segment without the value
// separator or with a broken escape fails the whole query.
func Parse(raw string) ([]Filter, error) {
	if raw == "" {
		return []Filter{}, nil
	}
	segments := strings.Split(raw, listSep)
	fs := make([]Filter, 0, len(segments))
	for i, seg := range segments {
		factor, value, ok := strings.Cut(seg, valueSep)
		if !ok {
			return nil, fmt.Errorf("%w: segment %d has no %q", ErrMalformed, i, valueSep)
		}
		name, err := url.QueryUnescape(factor)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d factor: %v", ErrMalformed, i, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d value: %v", ErrMalformed, i, err)
		}
		fs = append(fs, Filter{Factor: ParseFactor(name), Value: v})
	}
	return fs, nil
}

// Decode is Parse that degrades to an empty collection on bad input,
// so a corrupted shared link still opens an unfiltered view.
func Decode(raw string) []Filter {
	fs, err := Parse(raw)
	if err != nil {
		return []Filter{}
	}
	return fs
}
