// Package ziputil unpacks version jars onto disk.
//
// Extraction is idempotent: existing files with the same entry name are
// truncated and rewritten, nothing is removed beforehand, so repeated runs
// over the same jar leave an identical tree.
package ziputil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

var (
	// ErrArchiveNotFound reports a jar that does not exist at the given path.
	ErrArchiveNotFound = errors.New("archive not found")
	// ErrCorruptArchive reports a file that is not a readable zip container.
	ErrCorruptArchive = errors.New("archive is not a valid zip file")
)

// SanitizePath normalizes an entry name (forward slashes, no drive, no leading
// '/') and drops '.' and '..' segments without ever climbing above the root.
// An empty result means the entry has no usable name.
func SanitizePath(p string) string {
	s := strings.ReplaceAll(p, `\`, "/")
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	return strings.Join(stack, "/")
}

// ExtractAll writes every entry of the archive at src under dest and returns
// the number of files written.
func ExtractAll(src, dest string) (int, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrArchiveNotFound, src)
		}
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}
	zr, err := zip.OpenReader(src)
	if err != nil {
		if isFormatError(err) {
			return 0, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, src, err)
		}
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, err
	}
	n := 0
	for _, f := range zr.File {
		name := SanitizePath(f.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(name))
		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return n, err
			}
			continue
		case !mode.IsRegular():
			// Symlinks and devices have no place in a jar.
			continue
		}
		if err := extractFile(f, target); err != nil {
			if isFormatError(err) {
				return n, fmt.Errorf("%w: %s: entry %s: %v", ErrCorruptArchive, src, f.Name, err)
			}
			return n, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		n++
	}
	return n, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func isFormatError(err error) bool {
	return errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrChecksum) ||
		errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
