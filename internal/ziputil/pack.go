package ziputil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// FixedZipTime keeps packed archives byte-for-byte reproducible (1980-01-01 UTC).
var FixedZipTime = time.Unix(315532800, 0).UTC()

// Pack writes entries into a new zip at dst in sorted name order with fixed
// timestamps. Names ending in '/' become directory entries.
func Pack(dst string, entries map[string][]byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		h := &zip.FileHeader{Name: name, Method: zip.Deflate}
		h.Modified = FixedZipTime
		if strings.HasSuffix(name, "/") {
			h.Method = zip.Store
			h.SetMode(os.ModeDir | 0o755)
		} else {
			h.SetMode(0o644)
		}
		w, err := zw.CreateHeader(h)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if h.Mode().IsDir() {
			continue
		}
		if _, err := w.Write(entries[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}
