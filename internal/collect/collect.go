// Package collect derives sorted identifier lists from an extracted jar.
package collect

import (
	"fmt"
	"path/filepath"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/sortutil"
	"mc-id-extractor/internal/version"
	"mc-id-extractor/internal/walkwalk"
)

// Ext is the extension of the per-identifier documents.
const Ext = ".json"

// Dir returns the absolute directory scanned for c under root.
func Dir(root string, c category.Category, v version.Version) string {
	return filepath.Join(root, filepath.FromSlash(c.SourceDir(v)))
}

// Identifiers returns the stems of the JSON files directly under c's source
// directory, sorted by code point. No de-duplication is done; an absent or
// empty directory yields an empty, non-nil slice.
func Identifiers(root string, c category.Category, v version.Version) ([]string, error) {
	dir := Dir(root, c, v)
	ids, err := sortutil.Collect(walkwalk.Stems(dir, Ext))
	if err != nil {
		return nil, fmt.Errorf("list %s identifiers in %s: %w", c, dir, err)
	}
	return ids, nil
}
