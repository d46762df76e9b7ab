// Package config loads glbind settings from glbind.toml, GLBIND_* environment
// variables and command-line flags, in increasing precedence.
package config

import (
	"strings"

	"github.com/teranos/glbind/registry"
)

// Config is the full glbind configuration.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry" toml:"registry"`
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch"`
}

// RegistryConfig selects which registry document to read and which slice of
// it to generate.
type RegistryConfig struct {
	Path       string   `mapstructure:"path" toml:"path" comment:"registry document (.yaml, .toml or .json)"`
	API        string   `mapstructure:"api" toml:"api" comment:"gl, glcore, gles1, gles2, glsc2, glx, wgl or egl"`
	Version    string   `mapstructure:"version" toml:"version" comment:"highest feature version to include, e.g. 4.5; empty includes every feature"`
	Profile    string   `mapstructure:"profile" toml:"profile" comment:"core or compatibility"`
	Fallbacks  string   `mapstructure:"fallbacks" toml:"fallbacks" comment:"all or none"`
	Extensions []string `mapstructure:"extensions" toml:"extensions"`
}

// OutputConfig controls the generated file.
type OutputConfig struct {
	Path       string `mapstructure:"path" toml:"path" comment:"generated file; empty or - writes to stdout"`
	Package    string `mapstructure:"package" toml:"package" comment:"package clause; empty derives it from the api"`
	Namespace  string `mapstructure:"namespace" toml:"namespace,omitempty"`
	Format     bool   `mapstructure:"format" toml:"format"`
	BitmaskOps bool   `mapstructure:"bitmask_ops" toml:"bitmask_ops" comment:"emit Contains/Insert/Remove on bitmask groups"`
}

// LogConfig configures the logger package.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"`
}

// WatchConfig configures glbind watch.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// Identity converts the registry section into a selection identity.
func (c *Config) Identity() registry.Identity {
	return registry.Identity{
		API:       registry.API(strings.TrimSpace(c.Registry.API)),
		Version:   strings.TrimSpace(c.Registry.Version),
		Profile:   registry.Profile(c.Registry.Profile),
		Fallbacks: registry.Fallbacks(c.Registry.Fallbacks),
	}
}

// WritesStdout reports whether output goes to standard output.
func (c *Config) WritesStdout() bool {
	return c.Output.Path == "" || c.Output.Path == "-"
}
