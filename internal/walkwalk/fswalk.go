// Package walkwalk enumerates files inside an extracted jar.
//
// Listing is shallow on purpose: category directories keep one JSON document
// per identifier at their top level, and nested directories (e.g. loot table
// sub-groups) are not identifiers of that category.
package walkwalk

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"
)

// Stems yields the names, minus ext, of the regular files directly inside
// dir whose name ends in ext. Matching is case-sensitive and names starting
// with '.' are skipped, as a shell glob would.
//
// The sequence is lazy and restartable: every range re-reads dir. A missing
// dir yields nothing. Any other read error is yielded once as ("", err) and
// ends the sequence. Order follows the directory listing (sorted by name).
func Stems(dir, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				yield("", err)
			}
			return
		}
		for _, e := range entries {
			stem, ok := matchStem(e, ext)
			if !ok {
				continue
			}
			if !yield(stem, nil) {
				return
			}
		}
	}
}

func matchStem(e fs.DirEntry, ext string) (string, bool) {
	name := e.Name()
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
		return "", false
	}
	if !e.Type().IsRegular() {
		return "", false
	}
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return "", false
	}
	return stem, true
}

// FileSHA256 computes a hex-encoded sha256 for the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
