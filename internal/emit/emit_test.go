package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/version"
)

func header(t *testing.T, c category.Category, v string, f Format) Header {
	t.Helper()
	ver, err := version.Parse(v)
	if err != nil {
		t.Fatal(err)
	}
	return Header{Category: c, Version: ver, Format: f}
}

func TestRenderPythonBody(t *testing.T) {
	out, err := Render([]string{"dirt", "stone"}, header(t, category.Block, "1.20.1", Python))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want := "# Block ID list of Minecraft version 1.20.1\n" +
		"#   auto-generated by mc-id-extractor as block_1_20_1.py\n" +
		"\n" +
		"DIRT = \"dirt\"\n" +
		"STONE = \"stone\"\n"
	if string(out) != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRenderPythonEmptyIsHeaderOnly(t *testing.T) {
	out, err := Render(nil, header(t, category.Particle, "1.21", Python))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			t.Fatalf("non-header line in empty output: %q", line)
		}
	}
	if !strings.Contains(string(out), "particle_1_21.py") {
		t.Fatalf("missing provenance: %q", out)
	}
}

func TestRenderPythonEscapes(t *testing.T) {
	out, _ := Render([]string{`we"ird`}, header(t, category.Block, "1.20", Python))
	if !strings.Contains(string(out), `WE"IRD = "we\"ird"`) {
		t.Fatalf("quote not escaped: %s", out)
	}
}

func TestRenderGoCompilesAndCollapsesDuplicates(t *testing.T) {
	out, err := Render([]string{"Dirt", "dirt", "stone"}, header(t, category.Block, "1.20.1", Go))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "// Code generated by mc-id-extractor") {
		t.Fatalf("missing generated header:\n%s", s)
	}
	if strings.Count(s, "DIRT") != 1 || !strings.Contains(s, `"dirt"`) || strings.Contains(s, `"Dirt"`) {
		t.Fatalf("duplicate not collapsed last-wins:\n%s", s)
	}
	if !strings.Contains(s, "package ids") {
		t.Fatalf("missing package clause:\n%s", s)
	}
}

func TestRenderGoEmpty(t *testing.T) {
	out, err := Render(nil, header(t, category.Entity, "1.21", Go))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "const") {
		t.Fatalf("empty list should not emit const block:\n%s", out)
	}
}

func TestGoConstName(t *testing.T) {
	cases := map[string]string{"oak_log": "OAK_LOG", "1x": "ID_1X", "a-b": "A_B"}
	for in, want := range cases {
		if got := goConstName(in); got != want {
			t.Fatalf("goConstName(%q) got %q want %q", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != Python {
		t.Fatalf("default: %v %v", f, err)
	}
	if f, err := ParseFormat("GO"); err != nil || f != Go {
		t.Fatalf("go: %v %v", f, err)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWriteFileOverwritesAndCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ID_list_files", "block_1_20_1.py")
	if err := WriteFile(path, []byte("first, longer content\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("second\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second\n" {
		t.Fatalf("got %q", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestReadExisting(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := ReadExisting(filepath.Join(dir, "none")); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	p := filepath.Join(dir, "f")
	if err := os.WriteFile(p, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, ok, err := ReadExisting(p)
	if err != nil || !ok || string(b) != "a\nb\n" {
		t.Fatalf("got %q ok=%v err=%v", b, ok, err)
	}
}
