package pipeline

import (
	"errors"
	"fmt"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/collect"
	"mc-id-extractor/internal/delta"
	"mc-id-extractor/internal/diff"
	"mc-id-extractor/internal/version"
)

// runCompare extracts Opts.CompareTo (old) and v (new), then reports per
// category which identifiers were added or removed. No files are written.
func (r *Runner) runCompare(v version.Version) ([]Result, error) {
	if r.Opts.CompareTo == "" {
		return nil, errors.New("compare mode needs a second version")
	}
	old, err := version.Parse(r.Opts.CompareTo)
	if err != nil {
		return nil, fmt.Errorf("compare version: %w", err)
	}

	if old.Compare(v) > 0 {
		r.Log.Warn("comparing against a newer version", "old", old.Raw, "new", v.Raw)
	}

	var (
		cats []category.Category
		errs []error
	)
	for _, c := range r.Opts.Categories {
		if err := errors.Join(c.Supports(old), c.Supports(v)); err != nil {
			r.Log.Error("version not supported", "category", c.Stem(), "old", old.Raw, "new", v.Raw)
			errs = append(errs, err)
			continue
		}
		cats = append(cats, c)
	}
	r.Log.Debug("compare", "old", old.Raw, "new", v.Raw, "categories", joinNames(cats))
	if len(cats) == 0 {
		return nil, errors.Join(errs...)
	}

	oldRoot, err := r.extract(old)
	if err != nil {
		return nil, errors.Join(append(errs, err)...)
	}
	newRoot, err := r.extract(v)
	if err != nil {
		return nil, errors.Join(append(errs, err)...)
	}
	if r.Opts.DryRun {
		return nil, errors.Join(errs...)
	}

	opt := diff.Options{Context: r.Opts.DiffContext, MaxBytes: r.Opts.MaxDiffBytes}
	results := make([]Result, 0, len(cats))
	for _, c := range cats {
		res, err := r.compareCategory(c, old, v, oldRoot, newRoot, opt)
		if err != nil {
			r.Log.Error("category failed", "category", c.Stem(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Stem(), err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

func (r *Runner) compareCategory(c category.Category, old, v version.Version, oldRoot, newRoot string, opt diff.Options) (Result, error) {
	prev, err := collect.Identifiers(oldRoot, c, old)
	if err != nil {
		return Result{}, err
	}
	curr, err := collect.Identifiers(newRoot, c, v)
	if err != nil {
		return Result{}, err
	}
	d := delta.Build(prev, curr)
	fmt.Fprintf(r.Out, "%s %s -> %s: +%d -%d\n", c.Stem(), old.Raw, v.Raw, len(d.Added), len(d.Removed))
	if !d.Empty() {
		patch, _ := diff.Unified(
			fmt.Sprintf("%s/%s", old.Raw, c.Stem()),
			fmt.Sprintf("%s/%s", v.Raw, c.Stem()),
			diff.Lines(prev), diff.Lines(curr), opt)
		fmt.Fprint(r.Out, patch)
	}
	r.Log.Info("compared", "category", c.Stem(), "added", len(d.Added), "removed", len(d.Removed))
	return Result{Category: c, Count: len(curr), Added: d.Added, Removed: d.Removed}, nil
}
