// Package emit renders identifier lists as generated constant files and
// writes them to disk.
//
// Two formats are supported:
//   - py : one `NAME = "id"` assignment per line under a '#' comment header
//   - go : a gofmt'd `package ids` file with a single const block
//
// Rendering is a pure function of (identifiers, header), so repeated runs over
// the same jar produce byte-identical files.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"mc-id-extractor/internal/category"
	"mc-id-extractor/internal/textutil"
	"mc-id-extractor/internal/version"
)

// Format selects the output language.
type Format string

const (
	Python Format = "py"
	Go     Format = "go"
)

// ToolName appears in the provenance line of every generated file.
const ToolName = "mc-id-extractor"

// DefaultGoPackage is the package clause of Go output.
const DefaultGoPackage = "ids"

// ParseFormat accepts "py" or "go".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Python, Go:
		return f, nil
	case "":
		return Python, nil
	}
	return "", fmt.Errorf("unknown output format %q (want py or go)", s)
}

// Ext is the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Header carries the provenance written at the top of a generated file.
type Header struct {
	Category  category.Category
	Version   version.Version
	Format    Format
	GoPackage string
}

// FileName is <category>_<version_underscored>.<ext>, e.g. block_1_20_1.py.
func FileName(c category.Category, v version.Version, f Format) string {
	return c.Stem() + "_" + v.Underscored() + f.Ext()
}

// Render produces the file body for ids, which must already be sorted.
func Render(ids []string, h Header) ([]byte, error) {
	switch h.Format {
	case Python, "":
		return renderPython(ids, h), nil
	case Go:
		return renderGo(ids, h)
	}
	return nil, fmt.Errorf("unknown output format %q", h.Format)
}

func renderPython(ids []string, h Header) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s ID list of Minecraft version %s\n", h.Category.Label(), h.Version.Raw)
	fmt.Fprintf(&b, "#   auto-generated by %s as %s\n\n", ToolName, FileName(h.Category, h.Version, Python))
	for _, id := range ids {
		fmt.Fprintf(&b, "%s = \"%s\"\n", textutil.ConstName(id), pyEscape(id))
	}
	return b.Bytes()
}

func pyEscape(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func renderGo(ids []string, h Header) ([]byte, error) {
	pkg := h.GoPackage
	if pkg == "" {
		pkg = DefaultGoPackage
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by %s from Minecraft %s; DO NOT EDIT.\n\n", ToolName, h.Version.Raw)
	fmt.Fprintf(&b, "// Package %s holds the %s ID list of Minecraft version %s.\n", pkg, h.Category.Label(), h.Version.Raw)
	fmt.Fprintf(&b, "package %s\n", pkg)

	// Names that collide after uppercasing keep the value of the last one,
	// the same outcome as re-assigning a Python module constant.
	last := make(map[string]int, len(ids))
	for i, id := range ids {
		last[goConstName(id)] = i
	}
	if len(ids) > 0 {
		b.WriteString("\nconst (\n")
		for i, id := range ids {
			name := goConstName(id)
			if last[name] != i {
				continue
			}
			fmt.Fprintf(&b, "\t%s = %q\n", name, id)
		}
		b.WriteString(")\n")
	}
	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gofmt %s: %w", FileName(h.Category, h.Version, Go), err)
	}
	return out, nil
}

// goConstName maps an identifier to a valid Go identifier.
func goConstName(id string) string {
	var b strings.Builder
	for _, r := range textutil.ConstName(id) {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := b.String()
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "ID_" + s
	}
	return s
}
