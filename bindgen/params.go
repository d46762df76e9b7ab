package bindgen

import (
	"strings"

	"github.com/teranos/glbind/registry"
)

// Mode selects the projection RenderParams produces.
type Mode int

const (
	// IdentsAndTypes renders "name Type", for method parameter lists.
	IdentsAndTypes Mode = iota
	// TypesOnly renders "Type", for the function type a call is made through.
	TypesOnly
	// IdentsOnly renders "name", for forwarded call arguments.
	IdentsOnly
)

func (m Mode) String() string {
	switch m {
	case IdentsAndTypes:
		return "idents-and-types"
	case TypesOnly:
		return "types-only"
	case IdentsOnly:
		return "idents-only"
	default:
		return "unknown"
	}
}

// Renderer renders command signatures. Namespace qualifies group wrapper
// types and is empty when groups live in the same package as the commands.
type Renderer struct {
	Namespace string
	// Receiver is the method receiver name parameters must not collide with.
	Receiver string
}

// QualifiedGroupType is the wrapper type a grouped parameter is declared with.
func QualifiedGroupType(namespace, group string) string {
	if namespace == "" {
		return group
	}
	return strings.TrimSuffix(namespace, ".") + "." + group
}

// RenderParams renders cmd's parameters with the default Renderer.
func RenderParams(cmd registry.Command, reg *registry.Registry, mode Mode) []string {
	return Renderer{}.Params(cmd, reg, mode)
}

// RenderReturn is the Go result type of cmd, or "" when it has none.
func RenderReturn(cmd registry.Command) string {
	if !cmd.HasReturn() {
		return ""
	}
	return strings.TrimSpace(cmd.Return)
}

// Params renders one entry per parameter, in declaration order. A parameter
// whose group exists in reg gets the group's wrapper type; any other keeps its
// raw type.
func (r Renderer) Params(cmd registry.Command, reg *registry.Registry, mode Mode) []string {
	out := make([]string, 0, len(cmd.Params))
	for i, p := range cmd.Params {
		ident := paramIdent(p.Ident, i, r.Receiver)
		typ := r.paramType(p, reg)
		switch mode {
		case TypesOnly:
			out = append(out, typ)
		case IdentsOnly:
			out = append(out, ident)
		default:
			out = append(out, ident+" "+typ)
		}
	}
	return out
}

func (r Renderer) paramType(p registry.Param, reg *registry.Registry) string {
	if p.Group != "" && reg != nil {
		if _, ok := reg.Group(p.Group); ok {
			return QualifiedGroupType(r.Namespace, p.Group)
		}
	}
	return strings.TrimSpace(p.Type)
}
