// Package config loads the optional YAML defaults file. Every key mirrors a
// command-line flag; flags given explicitly on the command line win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of the defaults file.
type File struct {
	GameDir   string `yaml:"game_dir"`
	WorkDir   string `yaml:"work_dir"`
	OutDir    string `yaml:"out_dir"`
	Format    string `yaml:"format"`
	GoPackage string `yaml:"go_package"`
	DB        string `yaml:"db"`

	// Categories accepts either a list or a single comma-separated string.
	Categories Categories `yaml:"categories"`
}

// Categories is a category selection, joined back into the flag syntax.
type Categories string

// UnmarshalYAML accepts `categories: all`, `categories: block,entity` and
// `categories: [block, entity]`.
func (c *Categories) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*c = Categories(strings.TrimSpace(n.Value))
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return err
		}
		*c = Categories(strings.Join(list, ","))
		return nil
	}
	return fmt.Errorf("categories: expected string or list, got %v at line %d", n.Tag, n.Line)
}

// Load reads path. A missing file is reported with fs.ErrNotExist so callers
// can distinguish it from a malformed one.
func Load(path string) (File, error) {
	var f File
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// DefaultPath is read from the working directory when -config is not given.
const DefaultPath = "mc-id-extractor.yaml"

// LoadOptional is Load, except that an empty path or a missing file yields
// a zero File.
func LoadOptional(path string) (File, error) {
	if strings.TrimSpace(path) == "" {
		return File{}, nil
	}
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, nil
	}
	return f, err
}
