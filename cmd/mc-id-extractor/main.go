// Package main provides the mc-id-extractor CLI. Given a Minecraft version it
// unpacks that version's client jar from the launcher directory and writes one
// constants file per identifier category (block, entity, particle).
//
// Modes:
//   - WRITE   : mc-id-extractor [flags] <version>
//   - CHECK   : mc-id-extractor -check [flags] <version>
//   - COMPARE : mc-id-extractor -compare <old_version> [flags] <version>
//
// Flags may appear before or after the version. Settings can also come from a
// YAML file (-config); flags given on the command line win over the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/config"
	"mc-id-extractor/internal/emit"
	"mc-id-extractor/internal/pipeline"
	"mc-id-extractor/internal/validate"
)

// Config holds the parsed command line.
type Config struct {
	version    string
	categories string
	gameDir    string
	workDir    string
	outDir     string
	format     string
	goPackage  string
	dbPath     string

	check     bool
	compareTo string
	dryRun    bool

	configPath   string
	verbose      bool
	noColor      bool
	diffContext  int
	maxDiffBytes int

	// set records flags given explicitly, so config file values only fill
	// the rest.
	set map[string]bool
}

const usageText = `Usage:
  WRITE   : %[1]s [flags] <version>
  COMPARE : %[1]s -compare <old_version> [flags] <version>
  CHECK   : %[1]s -check [flags] <version>

Flags:
`

// errUsage marks command-line mistakes (exit status 2).
var errUsage = errors.New("usage")

func newFlagSet(cfg *Config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("mc-id-extractor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, usageText, fs.Name())
		fs.PrintDefaults()
	}

	// Selection & locations
	fs.StringVar(&cfg.categories, "category", "all", "comma-separated categories to extract (block,entity,particle or all)")
	fs.StringVar(&cfg.gameDir, "game-dir", "", "launcher data directory (default: per-OS .minecraft location)")
	fs.StringVar(&cfg.workDir, "work-dir", "", "extraction root; the jar is unpacked into <work-dir>/versions/<version> (default: next to the jar)")
	fs.StringVar(&cfg.outDir, "out", pipeline.DefaultOutDir, "output directory for generated files")

	// Output
	fs.StringVar(&cfg.format, "format", string(emit.Python), "output format: py or go")
	fs.StringVar(&cfg.goPackage, "go-package", emit.DefaultGoPackage, "package clause for -format go")
	fs.StringVar(&cfg.dbPath, "db", "", "also record identifiers in this SQLite catalog (write mode only)")

	// Modes
	fs.BoolVar(&cfg.check, "check", false, "do not write; exit 1 and print a diff if generated files are stale")
	fs.StringVar(&cfg.compareTo, "compare", "", "older version to compare <version> against; prints added/removed identifiers")
	fs.BoolVar(&cfg.dryRun, "dry-run", false, "resolve paths and print the plan without touching the disk")

	// Diffs
	fs.IntVar(&cfg.diffContext, "diff-context", 3, "context lines in printed diffs")
	fs.IntVar(&cfg.maxDiffBytes, "max-diff-bytes", 2_000_000, "max bytes for printed diffs (0 = no limit)")

	// Misc
	fs.StringVar(&cfg.configPath, "config", config.DefaultPath, "optional YAML settings file")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.noColor, "no-color", false, "disable colored log output")
	return fs
}

// parseFlags parses args (without the program name). The single positional
// argument is the version; flags may follow it.
func parseFlags(args []string) (Config, error) {
	return parseFlagsTo(args, io.Discard)
}

func parseFlagsTo(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{set: map[string]bool{}}
	fs := newFlagSet(&cfg, stderr)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return Config{}, fmt.Errorf("%w: %w", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	switch len(positional) {
	case 0:
		fs.Usage()
		return Config{}, fmt.Errorf("%w: missing <version>", errUsage)
	case 1:
		cfg.version = positional[0]
	default:
		fs.Usage()
		return Config{}, fmt.Errorf("%w: expected one <version>, got %d arguments", errUsage, len(positional))
	}
	return cfg, nil
}

// selectMode maps the mode flags onto a pipeline mode.
func selectMode(cfg Config) (pipeline.Mode, error) {
	if cfg.check && cfg.compareTo != "" {
		return "", fmt.Errorf("%w: -check and -compare are mutually exclusive", errUsage)
	}
	switch {
	case cfg.check:
		return pipeline.ModeCheck, nil
	case cfg.compareTo != "":
		return pipeline.ModeCompare, nil
	}
	return pipeline.ModeWrite, nil
}

// mergeFile fills every setting not given on the command line from f.
func mergeFile(cfg Config, f config.File) Config {
	fill := func(name string, dst *string, v string) {
		if v != "" && !cfg.set[name] {
			*dst = v
		}
	}
	fill("category", &cfg.categories, string(f.Categories))
	fill("game-dir", &cfg.gameDir, f.GameDir)
	fill("work-dir", &cfg.workDir, f.WorkDir)
	fill("out", &cfg.outDir, f.OutDir)
	fill("format", &cfg.format, f.Format)
	fill("go-package", &cfg.goPackage, f.GoPackage)
	fill("db", &cfg.dbPath, f.DB)
	return cfg
}

// buildOptions turns cfg into pipeline options and validates them.
func buildOptions(cfg Config) (pipeline.Options, error) {
	mode, err := selectMode(cfg)
	if err != nil {
		return pipeline.Options{}, err
	}
	cats, err := category.ParseList(cfg.categories)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	format, err := emit.ParseFormat(cfg.format)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	opts := pipeline.Options{
		Version:      cfg.version,
		Categories:   cats,
		GameDir:      cfg.gameDir,
		WorkDir:      cfg.workDir,
		OutDir:       cfg.outDir,
		Format:       format,
		GoPackage:    cfg.goPackage,
		DBPath:       cfg.dbPath,
		Mode:         mode,
		CompareTo:    cfg.compareTo,
		DryRun:       cfg.dryRun,
		DiffContext:  cfg.diffContext,
		MaxDiffBytes: cfg.maxDiffBytes,
	}
	if err := validate.Options(opts); err != nil {
		return pipeline.Options{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	return opts, nil
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	noColor := cfg.noColor
	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		noColor = true
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// run is main without os.Exit; it returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlagsTo(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}
	load := config.LoadOptional
	if cfg.set["config"] {
		load = config.Load
	}
	file, err := load(cfg.configPath)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}
	cfg = mergeFile(cfg, file)

	opts, err := buildOptions(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}

	log := newLogger(stderr, cfg)
	results, err := pipeline.New(opts, log, stdout).Run()
	report(stdout, opts, results)
	if err != nil {
		if !errors.Is(err, pipeline.ErrDrift) || opts.Mode != pipeline.ModeCheck {
			fmt.Fprintln(stderr, "ERROR:", err)
		}
		return 1
	}
	return 0
}

func report(w io.Writer, opts pipeline.Options, results []pipeline.Result) {
	for _, r := range results {
		switch {
		case opts.DryRun:
			fmt.Fprintf(w, "Would write %s\n", filepath.ToSlash(r.Path))
		case opts.Mode == pipeline.ModeWrite:
			fmt.Fprintf(w, "Wrote %s (%s ids=%d)\n", filepath.ToSlash(r.Path), r.Category, r.Count)
		case opts.Mode == pipeline.ModeCheck:
			fmt.Fprintf(w, "Up to date %s\n", filepath.ToSlash(r.Path))
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
