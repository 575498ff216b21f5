// Package pipeline runs the extraction end to end:
//
//	version → jar path → extraction → identifier collection → generated file
//
// All inputs come from an explicit Options value; nothing here reads process
// arguments or environment variables, so the pipeline runs the same way from
// the CLI and from tests.
//
// Modes:
//   - write   : render and overwrite <out>/<category>_<version>.<ext>
//   - check   : render, compare with the file on disk, print a diff on drift
//   - compare : collect two versions and print added/removed identifiers
//
// Categories are processed one after another. A failing category is reported
// and the remaining ones still run; Run returns every failure joined.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/emit"
	"mc-id-extractor/internal/gamedir"
	"mc-id-extractor/internal/indexdb"
	"mc-id-extractor/internal/version"
	"mc-id-extractor/internal/ziputil"
)

// Mode selects what Run does with the collected identifiers.
type Mode string

const (
	ModeWrite   Mode = "write"
	ModeCheck   Mode = "check"
	ModeCompare Mode = "compare"
)

// DefaultOutDir is where generated files go unless overridden.
const DefaultOutDir = "ID_list_files"

// ErrDrift is returned by check mode when a generated file is stale or missing.
var ErrDrift = errors.New("generated file out of date")

// Options is the complete configuration of one run.
type Options struct {
	Version    string
	Categories []category.Category

	// GameDir is the launcher data root. Empty resolves the per-OS default.
	GameDir string
	// WorkDir is the extraction root; the jar is unpacked into
	// <WorkDir>/versions/<version>/. Empty means the jar's own directory.
	WorkDir string
	OutDir  string

	Format    emit.Format
	GoPackage string
	DBPath    string

	Mode      Mode
	CompareTo string
	DryRun    bool

	DiffContext  int
	MaxDiffBytes int
}

// Result reports what happened to one category.
type Result struct {
	Category category.Category
	Path     string
	Count    int

	// Drift is set in check mode when the file on disk differs.
	Drift bool
	// Added and Removed are filled in compare mode.
	Added   []string
	Removed []string
}

// ArchiveError wraps a missing or corrupt jar with a hint about the version.
type ArchiveError struct {
	Version string
	Err     error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%v\nAre you sure you have Minecraft %s? Try another version.", e.Err, e.Version)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// Runner executes Options. Log receives progress; Out receives diffs and
// compare reports.
type Runner struct {
	Opts Options
	Log  *slog.Logger
	Out  io.Writer

	// appDataRoot is swapped in tests; nil means gamedir.Default.
	appDataRoot func() (string, error)
}

// New builds a Runner with defaults filled in.
func New(opts Options, log *slog.Logger, out io.Writer) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out == nil {
		out = io.Discard
	}
	if opts.OutDir == "" {
		opts.OutDir = DefaultOutDir
	}
	if opts.Format == "" {
		opts.Format = emit.Python
	}
	if opts.Mode == "" {
		opts.Mode = ModeWrite
	}
	if len(opts.Categories) == 0 {
		opts.Categories = append([]category.Category(nil), category.All...)
	}
	return &Runner{Opts: opts, Log: log, Out: out}
}

// Run executes the configured mode.
func (r *Runner) Run() ([]Result, error) {
	v, err := version.Parse(r.Opts.Version)
	if err != nil {
		return nil, err
	}
	if r.Opts.Mode == ModeCompare {
		return r.runCompare(v)
	}

	cats, errs := r.supported(v)
	r.Log.Debug("run", "mode", r.Opts.Mode, "version", v.Raw, "normalized", v.String(), "categories", joinNames(cats))
	if len(cats) == 0 {
		return nil, errors.Join(errs...)
	}
	root, err := r.extract(v)
	if err != nil {
		return nil, errors.Join(append(errs, err)...)
	}
	if r.Opts.DryRun {
		return r.dryRunResults(v, cats), errors.Join(errs...)
	}

	var idx *indexdb.SQLiteIndex
	if r.Opts.DBPath != "" && r.Opts.Mode == ModeWrite {
		idx, err = indexdb.OpenSQLite(r.Opts.DBPath)
		if err != nil {
			return nil, errors.Join(append(errs, fmt.Errorf("open catalog %s: %w", r.Opts.DBPath, err))...)
		}
		defer idx.Close()
	}

	results := make([]Result, 0, len(cats))
	for _, c := range cats {
		res, err := r.runCategory(root, c, v, idx)
		if err != nil {
			r.Log.Error("category failed", "category", c.Stem(), "version", v.Raw, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Stem(), err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// supported splits the selected categories into those v can serve and the
// errors for the rest.
func (r *Runner) supported(v version.Version) ([]category.Category, []error) {
	var (
		ok   []category.Category
		errs []error
	)
	for _, c := range r.Opts.Categories {
		if err := c.Supports(v); err != nil {
			r.Log.Error("version not supported", "category", c.Stem(), "version", v.Raw)
			errs = append(errs, err)
			continue
		}
		ok = append(ok, c)
	}
	return ok, errs
}

// jarPath resolves the launcher root and the jar for v.
func (r *Runner) jarPath(v version.Version) (string, error) {
	root := r.Opts.GameDir
	if root == "" {
		resolve := r.appDataRoot
		if resolve == nil {
			resolve = gamedir.Default
		}
		var err error
		if root, err = resolve(); err != nil {
			return "", err
		}
	}
	return gamedir.JarPath(root, v.Raw), nil
}

// extract unpacks v's jar and returns the extraction root. In dry-run mode
// it only resolves paths.
func (r *Runner) extract(v version.Version) (string, error) {
	jar, err := r.jarPath(v)
	if err != nil {
		return "", err
	}
	dest := r.extractDir(jar, v)
	if r.Opts.DryRun {
		r.Log.Info("dry run", "jar", jar, "extract_to", dest)
		return dest, nil
	}
	r.Log.Debug("extracting", "jar", jar, "dest", dest)
	n, err := ziputil.ExtractAll(jar, dest)
	if err != nil {
		if errors.Is(err, ziputil.ErrArchiveNotFound) || errors.Is(err, ziputil.ErrCorruptArchive) {
			return "", &ArchiveError{Version: v.Raw, Err: err}
		}
		return "", err
	}
	r.Log.Info("extracted jar", "version", v.Raw, "files", n, "dir", dest)
	return dest, nil
}

// extractDir is <WorkDir>/versions/<v>, with WorkDir defaulting to the
// directory holding the jar.
func (r *Runner) extractDir(jar string, v version.Version) string {
	work := r.Opts.WorkDir
	if work == "" {
		work = filepath.Dir(jar)
	}
	return gamedir.ExtractDir(work, v.Raw)
}

func (r *Runner) outputPath(c category.Category, v version.Version) string {
	return filepath.Join(r.Opts.OutDir, emit.FileName(c, v, r.Opts.Format))
}

func (r *Runner) header(c category.Category, v version.Version) emit.Header {
	return emit.Header{Category: c, Version: v, Format: r.Opts.Format, GoPackage: r.Opts.GoPackage}
}

func (r *Runner) dryRunResults(v version.Version, cats []category.Category) []Result {
	out := make([]Result, 0, len(cats))
	for _, c := range cats {
		p := r.outputPath(c, v)
		r.Log.Info("dry run", "category", c.Stem(), "output", p)
		out = append(out, Result{Category: c, Path: p})
	}
	return out
}

// joinNames is used in log lines listing categories.
func joinNames(cats []category.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Stem()
	}
	return strings.Join(names, ",")
}
