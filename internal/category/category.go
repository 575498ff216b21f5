// Package category describes the three identifier domains read from a jar.
package category

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"mc-id-extractor/internal/version"
)

// ErrUnsupportedVersion is returned when a version predates a category's layout.
var ErrUnsupportedVersion = errors.New("unsupported version")

// Category is one of Block, Entity or Particle.
type Category int

const (
	Block Category = iota + 1
	Entity
	Particle
)

// All lists every category in run order.
var All = []Category{Block, Entity, Particle}

// Entity loot tables moved from loot_tables/ to loot_table/ in 1.21.
const entityLootTableRenameMinor = 21

// Stem is the lowercase name used in output files and on the command line.
func (c Category) Stem() string {
	switch c {
	case Block:
		return "block"
	case Entity:
		return "entity"
	case Particle:
		return "particle"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Label is the capitalized name used in generated headers.
func (c Category) Label() string {
	s := c.Stem()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Category) String() string { return c.Stem() }

// MinVersion is the oldest major.minor whose jar has this category's layout.
func (c Category) MinVersion() (major, minor int) {
	if c == Particle {
		return 1, 14
	}
	return 1, 13
}

// Supports returns ErrUnsupportedVersion when v is older than MinVersion.
func (c Category) Supports(v version.Version) error {
	major, minor := c.MinVersion()
	if !v.AtLeast(major, minor) {
		return fmt.Errorf("%w: %s IDs need Minecraft %d.%d or above, got %s",
			ErrUnsupportedVersion, c.Stem(), major, minor, v.Raw)
	}
	return nil
}

// SourceDir is the slash-separated directory, relative to the extraction
// root, holding one JSON file per identifier.
func (c Category) SourceDir(v version.Version) string {
	switch c {
	case Block:
		return path.Join("assets", "minecraft", "blockstates")
	case Entity:
		if v.AtLeast(1, entityLootTableRenameMinor) {
			return path.Join("data", "minecraft", "loot_table", "entities")
		}
		return path.Join("data", "minecraft", "loot_tables", "entities")
	case Particle:
		return path.Join("assets", "minecraft", "particles")
	}
	return ""
}

// Parse accepts a category stem, case-insensitively.
func Parse(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block", "blocks":
		return Block, nil
	case "entity", "entities":
		return Entity, nil
	case "particle", "particles":
		return Particle, nil
	}
	return 0, fmt.Errorf("unknown category %q (want block, entity or particle)", s)
}

// ParseList parses a comma-separated list. "all" or "" selects All.
// Duplicates are dropped and the result follows All's order.
func ParseList(s string) ([]Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return append([]Category(nil), All...), nil
	}
	seen := make(map[Category]bool, len(All))
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := Parse(part)
		if err != nil {
			return nil, err
		}
		seen[c] = true
	}
	out := make([]Category, 0, len(seen))
	for _, c := range All {
		if seen[c] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no categories selected")
	}
	return out, nil
}
