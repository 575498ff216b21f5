package sortutil

import (
	"iter"
	"sort"
)

// CodePoints returns a copy of ids sorted ascending by Unicode code point.
// Byte order of valid UTF-8 equals code point order, so "B" < "a" < "c".
// Duplicates are kept. The input slice is not modified.
func CodePoints(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

// Collect drains seq into a code-point sorted slice, stopping at the first
// error. The result is never nil.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	out := make([]string, 0, 64)
	for s, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return CodePoints(out), nil
}
