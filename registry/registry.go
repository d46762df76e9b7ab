// Package registry holds the in-memory model of a foreign C API description:
// its constants, commands and the semantic groups constants belong to.
//
// A Registry is produced once (see Load and Select) and is read-only afterwards;
// the generator never mutates it.
package registry

import (
	"sort"
	"strings"
)

// API names a family of entry points sharing a symbol prefix.
type API string

const (
	APIGl     API = "gl"
	APIGlCore API = "glcore"
	APIGles1  API = "gles1"
	APIGles2  API = "gles2"
	APIGlsc2  API = "glsc2"
	APIGlx    API = "glx"
	APIWgl    API = "wgl"
	APIEgl    API = "egl"
)

// KnownAPIs lists the APIs with a dedicated naming policy.
var KnownAPIs = []API{APIGl, APIGlCore, APIGles1, APIGles2, APIGlsc2, APIGlx, APIWgl, APIEgl}

// IsKnown reports whether a has a dedicated naming policy.
func (a API) IsKnown() bool {
	for _, k := range KnownAPIs {
		if a == k {
			return true
		}
	}
	return false
}

// Profile selects the core or compatibility subset of a versioned API.
type Profile string

const (
	ProfileCore          Profile = "core"
	ProfileCompatibility Profile = "compatibility"
)

// Fallbacks is the whole-API policy for alternate command names.
type Fallbacks string

const (
	FallbacksAll  Fallbacks = "all"
	FallbacksNone Fallbacks = "none"
)

// Identity is the fixed API selection a registry was built for.
type Identity struct {
	API       API
	Version   string // e.g. "4.5"; empty means every feature
	Profile   Profile
	Fallbacks Fallbacks
}

// String renders the identity the way generated headers cite it, e.g. "gl 4.5 core".
func (id Identity) String() string {
	parts := []string{string(id.API)}
	if id.Version != "" {
		parts = append(parts, id.Version)
	}
	if id.Profile != "" {
		parts = append(parts, string(id.Profile))
	}
	return strings.Join(parts, " ")
}

// Enum is one named constant.
type Enum struct {
	Ident string `yaml:"name" toml:"name" json:"name"`
	// Value is the raw constant expression, emitted verbatim.
	Value string `yaml:"value" toml:"value" json:"value"`
	// Type is the declared semantic type; empty leaves the constant untyped.
	Type string `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
}

// Param is one command parameter.
type Param struct {
	Ident string `yaml:"name" toml:"name" json:"name"`
	Type  string `yaml:"type" toml:"type" json:"type"`
	// Group names the constant group the argument is drawn from, if any.
	Group string `yaml:"group,omitempty" toml:"group,omitempty" json:"group,omitempty"`
}

// Command is one callable entry point.
type Command struct {
	Ident string `yaml:"name" toml:"name" json:"name"`
	// Return is the result type; empty or "void" means no result.
	Return string  `yaml:"return,omitempty" toml:"return,omitempty" json:"return,omitempty"`
	Params []Param `yaml:"params,omitempty" toml:"params,omitempty" json:"params,omitempty"`
	// Alias is the command this one is an alternate name of.
	Alias string `yaml:"alias,omitempty" toml:"alias,omitempty" json:"alias,omitempty"`
}

// HasReturn reports whether the command produces a result.
func (c Command) HasReturn() bool {
	r := strings.TrimSpace(c.Return)
	return r != "" && r != "void"
}

// Flavor is a group's behavioral category.
type Flavor string

const (
	FlavorPlain   Flavor = "plain"
	FlavorBitmask Flavor = "bitmask"
)

// Group is a named, possibly overlapping subset of enums.
type Group struct {
	Ident string `yaml:"name" toml:"name" json:"name"`
	// Enums may repeat names and may name enums the registry does not have.
	Enums  []string `yaml:"enums" toml:"enums" json:"enums"`
	Flavor Flavor   `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
}

// IsBitmask reports whether the group combines its members with bitwise operators.
func (g Group) IsBitmask() bool {
	return g.Flavor == FlavorBitmask
}

// BooleanGroup is the group whose wrapper type uses the boolean representation.
const BooleanGroup = "Boolean"

// Registry is the selected view of an API description.
type Registry struct {
	Identity
	Enums []Enum
	Cmds  []Command
	// Aliases maps a command ident to its fallback idents, in resolution order.
	Aliases map[string][]string
	Groups  map[string]Group
}

// GroupNames returns the group names in iteration order (sorted), which keeps
// generation deterministic.
func (r *Registry) GroupNames() []string {
	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group looks up a group by name.
func (r *Registry) Group(name string) (Group, bool) {
	g, ok := r.Groups[name]
	return g, ok
}

// EnumSet indexes the registry's enums by identifier.
func (r *Registry) EnumSet() map[string]Enum {
	set := make(map[string]Enum, len(r.Enums))
	for _, e := range r.Enums {
		set[e.Ident] = e
	}
	return set
}

// FallbacksFor returns the fallback idents for a command (nil when it has none).
func (r *Registry) FallbacksFor(ident string) []string {
	if r.Aliases == nil {
		return nil
	}
	return r.Aliases[ident]
}
