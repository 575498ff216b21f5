package ziputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	cases := map[string]string{
		"assets/minecraft/blockstates/stone.json": "assets/minecraft/blockstates/stone.json",
		"/abs/file.json":                          "abs/file.json",
		"../../etc/passwd":                        "etc/passwd",
		"a/../../b":                               "b",
		`C:\win\path.txt`:                         "win/path.txt",
		"./a/./b/":                                "a/b",
		"..":                                      "",
	}
	for in, want := range cases {
		if got := SanitizePath(in); got != want {
			t.Fatalf("SanitizePath(%q) got %q want %q", in, got, want)
		}
	}
}

func TestExtractAllWritesEntries(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "1.20.1.jar")
	if err := Pack(jar, map[string][]byte{
		"META-INF/":                               nil,
		"assets/minecraft/blockstates/stone.json": []byte(`{"variants":{}}`),
		"assets/minecraft/blockstates/dirt.json":  []byte(`{}`),
	}); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	dest := filepath.Join(dir, "out")
	n, err := ExtractAll(jar, dest)
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}
	if n != 2 {
		t.Fatalf("extracted %d files, want 2", n)
	}
	got, err := os.ReadFile(filepath.Join(dest, "assets", "minecraft", "blockstates", "stone.json"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != `{"variants":{}}` {
		t.Fatalf("content mismatch: %q", got)
	}
	if fi, err := os.Stat(filepath.Join(dest, "META-INF")); err != nil || !fi.IsDir() {
		t.Fatalf("directory entry not created: %v", err)
	}
}

func TestExtractAllIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "v.jar")
	if err := Pack(jar, map[string][]byte{"a/b.json": []byte("short")}); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	dest := filepath.Join(dir, "out")
	target := filepath.Join(dest, "a", "b.json")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("a much longer stale payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := ExtractAll(jar, dest); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "short" {
			t.Fatalf("run %d: stale content survived: %q", i, got)
		}
	}
}

func TestExtractAllMissingArchive(t *testing.T) {
	_, err := ExtractAll(filepath.Join(t.TempDir(), "nope.jar"), t.TempDir())
	if !errors.Is(err, ErrArchiveNotFound) {
		t.Fatalf("expected ErrArchiveNotFound, got %v", err)
	}
}

func TestExtractAllCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "bad.jar")
	if err := os.WriteFile(jar, []byte("this is not a zip file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ExtractAll(jar, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrCorruptArchive) {
		t.Fatalf("expected ErrCorruptArchive, got %v", err)
	}
}

func TestPackIsReproducible(t *testing.T) {
	dir := t.TempDir()
	entries := map[string][]byte{"b.json": []byte("2"), "a.json": []byte("1")}
	p1 := filepath.Join(dir, "one.zip")
	p2 := filepath.Join(dir, "two.zip")
	if err := Pack(p1, entries); err != nil {
		t.Fatal(err)
	}
	if err := Pack(p2, entries); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(p1)
	b, _ := os.ReadFile(p2)
	if string(a) != string(b) {
		t.Fatalf("packed archives differ")
	}
}
