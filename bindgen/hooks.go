package bindgen

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// TraitHooks lets callers attach behavior to generated group types without
// the group emitter knowing about it. EnumTraits is invoked for every group,
// BitmaskTraits only for bitmask groups. Each returns Go source appended after
// the group's declarations; an empty string adds nothing.
type TraitHooks interface {
	EnumTraits(group string) string
	BitmaskTraits(group string) string
}

// Declarer is implemented by hooks that need file-level declarations. They
// are emitted once, ahead of the first group.
type Declarer interface {
	Declarations() string
}

// MarkerHooks asserts at compile time that every group type satisfies the
// EnumTraits interface, and every bitmask group the BitmaskTraits interface.
type MarkerHooks struct{}

const markerDeclarations = `// EnumTraits is implemented by every constant group type.
type EnumTraits interface {
	String() string
}

// BitmaskTraits is implemented by constant groups whose members combine with
// bitwise operators.
type BitmaskTraits interface {
	EnumTraits
	bitmask()
}
`

func (MarkerHooks) Declarations() string { return markerDeclarations }

func (MarkerHooks) EnumTraits(group string) string {
	return fmt.Sprintf("var _ EnumTraits = %s(0)\n", group)
}

func (MarkerHooks) BitmaskTraits(group string) string {
	return fmt.Sprintf("func (%s) bitmask() {}\n\nvar _ BitmaskTraits = %s(0)\n", group, group)
}

// BitmaskOps is MarkerHooks plus set-style helpers on bitmask groups.
type BitmaskOps struct {
	MarkerHooks
}

func (b BitmaskOps) BitmaskTraits(group string) string {
	var sb strings.Builder
	sb.WriteString(b.MarkerHooks.BitmaskTraits(group))
	sb.WriteString(fmt.Sprintf("\n// Contains reports whether every bit of flag is set in v.\nfunc (v %s) Contains(flag %s) bool { return v&flag == flag }\n", group, group))
	sb.WriteString(fmt.Sprintf("\n// Insert returns v with the bits of flag set.\nfunc (v %s) Insert(flag %s) %s { return v | flag }\n", group, group, group))
	sb.WriteString(fmt.Sprintf("\n// Remove returns v with the bits of flag cleared.\nfunc (v %s) Remove(flag %s) %s { return v &^ flag }\n", group, group, group))
	return sb.String()
}

// HookSet routes hook invocations per group name, falling back to Default
// (MarkerHooks when nil) for groups without an entry.
type HookSet struct {
	Default TraitHooks
	Groups  map[string]TraitHooks
}

func (h HookSet) pick(group string) TraitHooks {
	if t, ok := h.Groups[group]; ok && t != nil {
		return t
	}
	if h.Default != nil {
		return h.Default
	}
	return MarkerHooks{}
}

func (h HookSet) EnumTraits(group string) string { return h.pick(group).EnumTraits(group) }

func (h HookSet) BitmaskTraits(group string) string { return h.pick(group).BitmaskTraits(group) }

// Declarations joins the declarations of every distinct hook in the set.
func (h HookSet) Declarations() string {
	seen := make(map[string]bool)
	var sb strings.Builder
	add := func(t TraitHooks) {
		d, ok := t.(Declarer)
		if !ok {
			return
		}
		decl := d.Declarations()
		if decl == "" || seen[decl] {
			return
		}
		seen[decl] = true
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(decl)
	}

	def := h.Default
	if def == nil {
		def = MarkerHooks{}
	}
	add(def)
	for _, name := range slices.Sorted(maps.Keys(h.Groups)) {
		add(h.Groups[name])
	}
	return sb.String()
}
