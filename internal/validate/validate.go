// Package validate checks a pipeline configuration before anything touches
// the disk. All problems are collected into a single error so the user sees
// every mistake at once.
package validate

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/emit"
	"mc-id-extractor/internal/pipeline"
	"mc-id-extractor/internal/version"
)

// Options validates o:
//
//   - Version (and CompareTo in compare mode) parse as versions.
//   - Mode is one of write, check, compare; CompareTo is only set for compare.
//   - Format is py or go; GoPackage, when set, is a Go identifier.
//   - At least one category is selected and none repeats.
//   - DiffContext and MaxDiffBytes are non-negative.
//   - OutDir and WorkDir differ, so extraction never lands among outputs.
func Options(o pipeline.Options) error {
	var errs errlist

	if _, err := version.Parse(o.Version); err != nil {
		errs.add("version: %v", err)
	}

	switch o.Mode {
	case "", pipeline.ModeWrite, pipeline.ModeCheck:
		if o.CompareTo != "" {
			errs.add("compare version %q given outside compare mode", o.CompareTo)
		}
	case pipeline.ModeCompare:
		if o.CompareTo == "" {
			errs.add("compare mode needs a second version")
		} else if _, err := version.Parse(o.CompareTo); err != nil {
			errs.add("compare version: %v", err)
		}
	default:
		errs.add("unknown mode %q", o.Mode)
	}

	if _, err := emit.ParseFormat(string(o.Format)); err != nil {
		errs.add("%v", err)
	}
	if o.GoPackage != "" && !token.IsIdentifier(o.GoPackage) {
		errs.add("go package %q is not a valid identifier", o.GoPackage)
	}

	if len(o.Categories) == 0 {
		errs.add("no categories selected")
	}
	seen := make(map[string]bool, len(o.Categories))
	for i, c := range o.Categories {
		if !slices.Contains(category.All, c) {
			errs.add("categories[%d]: unknown %s", i, c)
			continue
		}
		if seen[c.Stem()] {
			errs.add("categories[%d]: duplicate %s", i, c.Stem())
		}
		seen[c.Stem()] = true
	}

	if o.DiffContext < 0 {
		errs.add("diff context must be >= 0 (got %d)", o.DiffContext)
	}
	if o.MaxDiffBytes < 0 {
		errs.add("max diff bytes must be >= 0 (got %d)", o.MaxDiffBytes)
	}
	if o.OutDir != "" && o.OutDir == o.WorkDir {
		errs.add("out dir and work dir must differ (both %q)", o.OutDir)
	}

	return errs.err()
}

type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(e.msgs, "\n"))
}
