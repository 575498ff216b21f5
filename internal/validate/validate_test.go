package validate

import (
	"strings"
	"testing"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/emit"
	"mc-id-extractor/internal/pipeline"
)

func good() pipeline.Options {
	return pipeline.Options{
		Version:    "1.20.1",
		Categories: []category.Category{category.Block, category.Particle},
		OutDir:     "ID_list_files",
		Format:     emit.Python,
		Mode:       pipeline.ModeWrite,
	}
}

func TestOptionsOK(t *testing.T) {
	if err := Options(good()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := good()
	o.Mode = pipeline.ModeCompare
	o.CompareTo = "1.19"
	o.Format = emit.Go
	o.GoPackage = "blocks"
	if err := Options(o); err != nil {
		t.Fatalf("compare options: %v", err)
	}
}

func TestOptionsAggregatesProblems(t *testing.T) {
	o := good()
	o.Version = "1.x"
	o.Format = "rs"
	o.GoPackage = "my-ids"
	o.Categories = []category.Category{category.Block, category.Block, category.Category(9)}
	o.DiffContext = -1
	o.WorkDir = o.OutDir

	err := Options(o)
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"version:",
		"unknown output format",
		`go package "my-ids"`,
		"duplicate block",
		"unknown category(9)",
		"diff context",
		"out dir and work dir",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error missing %q:\n%s", want, msg)
		}
	}
	if n := strings.Count(msg, "\n") + 1; n != 7 {
		t.Fatalf("want 7 problems, got %d:\n%s", n, msg)
	}
}

func TestOptionsCompareVersions(t *testing.T) {
	o := good()
	o.Mode = pipeline.ModeCompare
	if err := Options(o); err == nil || !strings.Contains(err.Error(), "second version") {
		t.Fatalf("missing CompareTo: %v", err)
	}
	o = good()
	o.CompareTo = "1.19"
	if err := Options(o); err == nil || !strings.Contains(err.Error(), "outside compare mode") {
		t.Fatalf("CompareTo in write mode: %v", err)
	}
}

func TestOptionsNoCategories(t *testing.T) {
	o := good()
	o.Categories = nil
	if err := Options(o); err == nil || !strings.Contains(err.Error(), "no categories") {
		t.Fatalf("got %v", err)
	}
}
