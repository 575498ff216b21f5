package walkwalk

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func collect(t *testing.T, dir, ext string) []string {
	t.Helper()
	var out []string
	for stem, err := range Stems(dir, ext) {
		if err != nil {
			t.Fatalf("Stems error: %v", err)
		}
		out = append(out, stem)
	}
	return out
}

func TestStemsShallowAndFiltered(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "stone.json"))
	touch(t, filepath.Join(dir, "dirt.json"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "UPPER.JSON"))
	touch(t, filepath.Join(dir, ".hidden.json"))
	touch(t, filepath.Join(dir, "nested", "deep.json"))
	if err := os.MkdirAll(filepath.Join(dir, "folder.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := collect(t, dir, ".json")
	want := []string{"dirt", "stone"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestStemsRestartable(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	seq := Stems(dir, ".json")

	first := 0
	for range seq {
		first++
	}
	touch(t, filepath.Join(dir, "b.json"))
	second := 0
	for range seq {
		second++
	}
	if first != 1 || second != 2 {
		t.Fatalf("sequence not re-read: first=%d second=%d", first, second)
	}
}

func TestStemsEarlyBreak(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a", "b", "c"} {
		touch(t, filepath.Join(dir, n+".json"))
	}
	n := 0
	for range Stems(dir, ".json") {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("break not honored: %d", n)
	}
}

func TestStemsMissingDir(t *testing.T) {
	if got := collect(t, filepath.Join(t.TempDir(), "absent"), ".json"); len(got) != 0 {
		t.Fatalf("expected no stems, got %v", got)
	}
}

func TestStemsNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.json")
	touch(t, file)
	var gotErr error
	for _, err := range Stems(file, ".json") {
		gotErr = err
	}
	if gotErr == nil || errors.Is(gotErr, os.ErrNotExist) {
		t.Fatalf("expected a read error, got %v", gotErr)
	}
}

func TestFileSHA256(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x")
	if err := os.WriteFile(p, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FileSHA256(p)
	if err != nil {
		t.Fatal(err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
