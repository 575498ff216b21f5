// Package diff renders unified diffs between generated ID files, used by the
// -check and -compare modes. It wraps github.com/pmezard/go-difflib/difflib
// to produce classic patches (---/+++ headers, @@ hunks).
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// MaxBytes caps len(a)+len(b). Larger inputs produce a placeholder and
	// oversize=true. 0 means no limit.
	MaxBytes int

	// Context is the number of context lines per hunk. 0 defaults to 3.
	Context int
}

// Unified returns the patch turning a into b, or "" when they are equal.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	if string(a) == string(b) {
		return "", false
	}
	if opt.MaxBytes > 0 && len(a)+len(b) > opt.MaxBytes {
		return omitted(aName, bName), true
	}
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted(aName, bName), false
	}
	return s, false
}

// Added returns a patch creating b from nothing.
func Added(bName string, b []byte, opt Options) (string, bool) {
	return Unified("/dev/null", bName, nil, b, opt)
}

// Lines renders one identifier per line, the input Unified expects when
// comparing bare identifier lists.
func Lines(ids []string) []byte {
	if len(ids) == 0 {
		return nil
	}
	return []byte(strings.Join(ids, "\n") + "\n")
}

// splitLinesKeepNL keeps the trailing "\n" on each line for cleaner hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
