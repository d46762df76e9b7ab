package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/glbind/errors"
)

// Document is a full, unselected API description as stored on disk. Select
// narrows it to one Identity.
type Document struct {
	Enums    []Enum    `yaml:"enums" toml:"enums" json:"enums"`
	Commands []Command `yaml:"commands" toml:"commands" json:"commands"`
	Groups   []Group   `yaml:"groups,omitempty" toml:"groups,omitempty" json:"groups,omitempty"`
	// Aliases are explicit fallbacks, consulted before those derived from Command.Alias.
	Aliases    map[string][]string `yaml:"aliases,omitempty" toml:"aliases,omitempty" json:"aliases,omitempty"`
	Features   []Feature           `yaml:"features,omitempty" toml:"features,omitempty" json:"features,omitempty"`
	Extensions []Extension         `yaml:"extensions,omitempty" toml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Feature is one versioned slice of an API, e.g. GL_VERSION_3_2.
type Feature struct {
	Name    string      `yaml:"name" toml:"name" json:"name"`
	API     API         `yaml:"api" toml:"api" json:"api"`
	Number  string      `yaml:"number" toml:"number" json:"number"`
	Require []Interface `yaml:"require,omitempty" toml:"require,omitempty" json:"require,omitempty"`
	Remove  []Interface `yaml:"remove,omitempty" toml:"remove,omitempty" json:"remove,omitempty"`
}

// Extension is an optional addition to one or more APIs.
type Extension struct {
	Name      string      `yaml:"name" toml:"name" json:"name"`
	Supported []API       `yaml:"supported,omitempty" toml:"supported,omitempty" json:"supported,omitempty"`
	Require   []Interface `yaml:"require,omitempty" toml:"require,omitempty" json:"require,omitempty"`
}

// Interface lists the enums and commands a require or remove block touches.
type Interface struct {
	// Profile restricts the block to one profile; empty applies to all.
	Profile  Profile  `yaml:"profile,omitempty" toml:"profile,omitempty" json:"profile,omitempty"`
	Enums    []string `yaml:"enums,omitempty" toml:"enums,omitempty" json:"enums,omitempty"`
	Commands []string `yaml:"commands,omitempty" toml:"commands,omitempty" json:"commands,omitempty"`
}

// Format identifies a registry document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.WithHint(
			errors.NewInvalidRegistryError("unsupported registry file extension %q", filepath.Ext(path)),
			"use a .yaml, .yml, .toml or .json registry document")
	}
}

// Load reads a registry document from disk.
func Load(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Mark(errors.Wrapf(err, "registry %s", path), errors.ErrNotFound)
		}
		return nil, errors.Wrapf(err, "failed to read registry %s", path)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode registry %s", path)
	}
	return doc, nil
}

// Decode parses a registry document in the given format. Unknown keys are
// rejected so typos in hand-written registries surface early.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "yaml"), errors.ErrInvalidRegistry)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "toml"), errors.ErrInvalidRegistry)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewInvalidRegistryError("toml: unknown key %s", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "json"), errors.ErrInvalidRegistry)
		}
	default:
		return nil, errors.NewInvalidRegistryError("unknown registry format %q", format)
	}

	return &doc, nil
}
