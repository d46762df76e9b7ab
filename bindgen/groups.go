package bindgen

import (
	"fmt"
	"strings"

	"github.com/teranos/glbind/registry"
)

// PartitionGroup returns the group's constant set: its declared members in
// order, keeping only the first occurrence of each name and only names known
// to the registry.
func PartitionGroup(group registry.Group, known map[string]registry.Enum) []registry.Enum {
	seen := make(map[string]bool, len(group.Enums))
	var out []registry.Enum
	for _, name := range group.Enums {
		if seen[name] {
			continue
		}
		seen[name] = true
		e, ok := known[name]
		if !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Partition computes the constant set of every group in reg. Membership is
// not deduplicated across groups.
func Partition(reg *registry.Registry) map[string][]registry.Enum {
	known := reg.EnumSet()
	sets := make(map[string][]registry.Enum, len(reg.Groups))
	for name, g := range reg.Groups {
		sets[name] = PartitionGroup(g, known)
	}
	return sets
}

// GroupConstName is the Go name of a group constant, e.g. BlendingFactor_ZERO.
func GroupConstName(group, enum string) string {
	return group + "_" + enumIdent(enum)
}

// EmitGroups renders one wrapper type per group, in sorted group order,
// followed by its constants, its String method and its hook invocations.
func EmitGroups(reg *registry.Registry, hooks TraitHooks) string {
	if len(reg.Groups) == 0 {
		return ""
	}
	if hooks == nil {
		hooks = MarkerHooks{}
	}

	var sb strings.Builder
	if d, ok := hooks.(Declarer); ok {
		if decl := d.Declarations(); decl != "" {
			sb.WriteString(decl)
			sb.WriteString("\n")
		}
	}

	known := reg.EnumSet()
	for i, name := range reg.GroupNames() {
		if i > 0 {
			sb.WriteString("\n")
		}
		g := reg.Groups[name]
		sb.WriteString(emitGroup(reg.API, g, PartitionGroup(g, known), hooks))
	}
	return sb.String()
}

func emitGroup(api registry.API, g registry.Group, consts []registry.Enum, hooks TraitHooks) string {
	name := g.Ident
	repr := EnumType(api)
	if name == registry.BooleanGroup {
		repr = BooleanType(api)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("type %s %s\n", name, repr))

	if len(consts) > 0 || g.IsBitmask() {
		sb.WriteString("\nconst (\n")
		for _, e := range consts {
			sb.WriteString(fmt.Sprintf("\t%s = %s(%s)\n", GroupConstName(name, e.Ident), name, enumIdent(e.Ident)))
		}
		if g.IsBitmask() && !hasMember(consts, "Empty") {
			sb.WriteString(fmt.Sprintf("\t%s = %s(0)\n", GroupConstName(name, "Empty"), name))
		}
		sb.WriteString(")\n")
	}

	table := lowerFirst(name) + "Names"
	sb.WriteString(fmt.Sprintf("\nvar %s = [...]struct {\n\tvalue %s\n\tname  string\n}{\n", table, name))
	for _, e := range consts {
		sb.WriteString(fmt.Sprintf("\t{%s, %q},\n", GroupConstName(name, e.Ident), e.Ident))
	}
	sb.WriteString("}\n")

	sb.WriteString(fmt.Sprintf("\nfunc (v %s) String() string {\n", name))
	sb.WriteString(fmt.Sprintf("\tfor _, c := range %s {\n", table))
	sb.WriteString("\t\tif c.value == v {\n")
	sb.WriteString(fmt.Sprintf("\t\t\treturn %q + c.name + \")\"\n", name+"("))
	sb.WriteString("\t\t}\n\t}\n")
	sb.WriteString(fmt.Sprintf("\treturn %q + strconv.FormatUint(uint64(v), 10) + \")\"\n", name+"("))
	sb.WriteString("}\n")

	if hook := hooks.EnumTraits(name); hook != "" {
		sb.WriteString("\n")
		sb.WriteString(hook)
	}
	if g.IsBitmask() {
		if hook := hooks.BitmaskTraits(name); hook != "" {
			sb.WriteString("\n")
			sb.WriteString(hook)
		}
	}
	return sb.String()
}

// hasMember reports whether a member would be emitted as the constant named ident.
func hasMember(consts []registry.Enum, ident string) bool {
	for _, e := range consts {
		if enumIdent(e.Ident) == ident {
			return true
		}
	}
	return false
}
