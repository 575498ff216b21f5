// Package delta computes which identifiers appeared or disappeared between
// two versions of the same category.
package delta

import "sort"

// Delta is the change set from an older identifier list to a newer one.
// Both slices are sorted by code point and never nil.
type Delta struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Build compares prev and curr as sets; duplicate identifiers count once.
func Build(prev, curr []string) Delta {
	prevSet := toSet(prev)
	currSet := toSet(curr)
	d := Delta{
		Added:   classify(currSet, prevSet),
		Removed: classify(prevSet, currSet),
	}
	return d
}

// classify returns the members of from that are missing in other.
func classify(from, other map[string]struct{}) []string {
	out := make([]string, 0)
	for id := range from {
		if _, ok := other[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, v := range list {
		m[v] = struct{}{}
	}
	return m
}
