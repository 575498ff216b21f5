package diff

import (
	"strings"
	"testing"
)

func TestUnifiedEqualIsEmpty(t *testing.T) {
	body, oversize := Unified("a", "b", []byte("x\n"), []byte("x\n"), Options{})
	if body != "" || oversize {
		t.Fatalf("expected empty patch, got %q oversize=%v", body, oversize)
	}
}

func TestUnifiedShowsChangedLines(t *testing.T) {
	a := Lines([]string{"dirt", "stone"})
	b := Lines([]string{"dirt", "grass_block", "stone"})
	body, oversize := Unified("1.20.1", "1.21", a, b, Options{Context: 1})
	if oversize {
		t.Fatalf("unexpected oversize")
	}
	for _, want := range []string{"--- 1.20.1", "+++ 1.21", "@@", "+grass_block"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in patch:\n%s", want, body)
		}
	}
	if strings.Contains(body, "-stone") || strings.Contains(body, "-dirt") {
		t.Fatalf("unchanged lines marked removed:\n%s", body)
	}
}

func TestUnifiedOversize(t *testing.T) {
	body, oversize := Unified("a", "b", []byte("aaaa\n"), []byte("bbbb\n"), Options{MaxBytes: 4})
	if !oversize || !strings.Contains(body, "diff omitted") {
		t.Fatalf("expected oversize placeholder, got %q", body)
	}
}

func TestAdded(t *testing.T) {
	body, _ := Added("block_1_21.py", []byte("A = \"a\"\n"), Options{})
	if !strings.Contains(body, "--- /dev/null") || !strings.Contains(body, "+A = \"a\"") {
		t.Fatalf("unexpected patch:\n%s", body)
	}
}

func TestLines(t *testing.T) {
	if Lines(nil) != nil {
		t.Fatalf("expected nil for empty list")
	}
	if got := string(Lines([]string{"a", "b"})); got != "a\nb\n" {
		t.Fatalf("got %q", got)
	}
}
