package pipeline

import (
	"fmt"
	"path/filepath"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/collect"
	"mc-id-extractor/internal/diff"
	"mc-id-extractor/internal/emit"
	"mc-id-extractor/internal/indexdb"
	"mc-id-extractor/internal/textutil"
	"mc-id-extractor/internal/version"
	"mc-id-extractor/internal/walkwalk"
)

// runCategory collects, renders and then writes or checks one category.
func (r *Runner) runCategory(root string, c category.Category, v version.Version, idx *indexdb.SQLiteIndex) (Result, error) {
	ids, err := collect.Identifiers(root, c, v)
	if err != nil {
		return Result{}, err
	}
	if len(ids) == 0 {
		r.Log.Warn("no identifiers found", "category", c.Stem(), "dir", collect.Dir(root, c, v))
	}
	body, err := emit.Render(ids, r.header(c, v))
	if err != nil {
		return Result{}, err
	}
	res := Result{Category: c, Path: r.outputPath(c, v), Count: len(ids)}

	if r.Opts.Mode == ModeCheck {
		return r.check(res, body)
	}
	if err := emit.WriteFile(res.Path, body); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", res.Path, err)
	}
	r.Log.Info("wrote identifiers", "category", c.Stem(), "count", len(ids), "path", res.Path)

	if idx != nil {
		if err := r.record(idx, c, v, ids); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// check compares body with the file at res.Path and prints a unified diff
// when they differ.
func (r *Runner) check(res Result, body []byte) (Result, error) {
	existing, ok, err := emit.ReadExisting(res.Path)
	if err != nil {
		return Result{}, err
	}
	opt := diff.Options{Context: r.Opts.DiffContext, MaxBytes: r.Opts.MaxDiffBytes}
	name := filepath.ToSlash(res.Path)
	var patch string
	if !ok {
		patch, _ = diff.Added(name, body, opt)
	} else {
		patch, _ = diff.Unified("a/"+name, "b/"+name, existing, body, opt)
	}
	if patch == "" {
		r.Log.Info("up to date", "path", res.Path)
		return res, nil
	}
	res.Drift = true
	fmt.Fprint(r.Out, patch)
	return res, fmt.Errorf("%w: %s", ErrDrift, res.Path)
}

func (r *Runner) record(idx *indexdb.SQLiteIndex, c category.Category, v version.Version, ids []string) error {
	jar, err := r.jarPath(v)
	if err != nil {
		return err
	}
	sum, err := walkwalk.FileSHA256(jar)
	if err != nil {
		return fmt.Errorf("hash %s: %w", jar, err)
	}
	err = idx.RecordRun(indexdb.Run{
		Version:    v.Raw,
		Normalized: v.String(),
		Category:   c.Stem(),
		JarSHA256:  sum,
		IDs:        ids,
	}, textutil.ConstName)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", r.Opts.DBPath, err)
	}
	r.Log.Debug("recorded in catalog", "category", c.Stem(), "db", r.Opts.DBPath)
	return nil
}
