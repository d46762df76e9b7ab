package bindgen

import (
	"fmt"
	"strings"

	"github.com/teranos/glbind/registry"
)

// fnptrImport is the runtime package every generated file depends on.
const fnptrImport = "github.com/teranos/glbind/fnptr"

// EmitFnPtrDef declares the entry type the table is made of.
func EmitFnPtrDef() string {
	return "// FnPtr is one resolved entry point. IsLoaded reports whether it resolved.\n" +
		"type FnPtr = fnptr.FnPtr\n"
}

// EmitSentinel declares the handler bound to entries that failed to resolve.
// Calling such an entry panics with *fnptr.NotLoadedError.
func EmitSentinel(api registry.API) string {
	var sb strings.Builder
	sb.WriteString("// notLoaded is bound to every entry that failed to resolve.\n")
	sb.WriteString("func notLoaded(symbol string) {\n")
	sb.WriteString(fmt.Sprintf("\tpanic(&fnptr.NotLoadedError{API: %q, Symbol: symbol})\n", string(api)))
	sb.WriteString("}\n")
	return sb.String()
}

// tableField is the binding struct's field holding the function pointer table.
const tableField = "Ptrs"

// fieldName is the table field and method name of a command. A command named
// like the table field gets a trailing underscore.
func fieldName(ident string) string {
	name := exportName(goIdent(ident))
	if name == tableField {
		name += "_"
	}
	return name
}

// receiverName is the receiver of the generated command methods.
func receiverName(structName string) string {
	return strings.ToLower(structName)
}

// EmitStruct declares the function pointer table and the binding type.
func EmitStruct(reg *registry.Registry, basic Basic) string {
	name := basic.StructName(reg.API)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("// %sFnPtrs holds one entry per command, in registry order.\n", name))
	sb.WriteString(fmt.Sprintf("type %sFnPtrs struct {\n", name))
	for _, cmd := range reg.Cmds {
		if fallbacks := reg.FallbacksFor(cmd.Ident); len(fallbacks) > 0 {
			sb.WriteString(fmt.Sprintf("\t// Fallbacks: %s\n", strings.Join(fallbacks, ", ")))
		}
		sb.WriteString(fmt.Sprintf("\t%s FnPtr\n", fieldName(cmd.Ident)))
	}
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("// %s is the binding for %s. Create one with LoadWith.\n", name, reg.Identity))
	sb.WriteString("//\n")
	sb.WriteString("// LoadWith must return before any method is called; after that the methods\n")
	sb.WriteString("// may be called from multiple goroutines. LoadWith must not run concurrently\n")
	sb.WriteString("// with itself or with any method call.\n")
	sb.WriteString(fmt.Sprintf("type %s struct {\n", name))
	sb.WriteString(fmt.Sprintf("\tPtrs %sFnPtrs\n", name))
	sb.WriteString("}\n")
	return sb.String()
}

// EmitImpl renders LoadWith followed by one method per command.
//
// LoadWith resolves every command eagerly, in registry order: the primary
// symbol first, then the command's fallbacks in order. Each method calls its
// entry through a function type built from the command's signature.
func EmitImpl(reg *registry.Registry, basic Basic, namespace string) string {
	name := basic.StructName(reg.API)
	recv := receiverName(name)
	r := Renderer{Namespace: namespace, Receiver: recv}

	var sb strings.Builder
	sb.WriteString("// LoadWith resolves every command through loadFn, which maps a symbol name\n")
	sb.WriteString("// to its address or 0. Unresolved commands panic when called.\n")
	sb.WriteString(fmt.Sprintf("func LoadWith(loadFn fnptr.LoadFunc) *%s {\n", name))
	sb.WriteString(fmt.Sprintf("\t%s := &%s{}\n", recv, name))
	for _, cmd := range reg.Cmds {
		args := []string{"loadFn", "notLoaded", fmt.Sprintf("%q", basic.SymbolName(reg.API, cmd.Ident))}
		for _, fb := range reg.FallbacksFor(cmd.Ident) {
			args = append(args, fmt.Sprintf("%q", basic.SymbolName(reg.API, fb)))
		}
		sb.WriteString(fmt.Sprintf("\t%s.Ptrs.%s = fnptr.Resolve(%s)\n", recv, fieldName(cmd.Ident), strings.Join(args, ", ")))
	}
	sb.WriteString(fmt.Sprintf("\treturn %s\n", recv))
	sb.WriteString("}\n")

	for _, cmd := range reg.Cmds {
		sb.WriteString("\n")
		sb.WriteString(emitMethod(cmd, reg, r, name))
	}
	return sb.String()
}

func emitMethod(cmd registry.Command, reg *registry.Registry, r Renderer, structName string) string {
	field := fieldName(cmd.Ident)
	ret := RenderReturn(cmd)

	sig := "func(" + strings.Join(r.Params(cmd, reg, TypesOnly), ", ") + ")"
	if ret != "" {
		sig += " " + ret
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("func (%s *%s) %s(%s)", r.Receiver, structName, field, strings.Join(r.Params(cmd, reg, IdentsAndTypes), ", ")))
	if ret != "" {
		sb.WriteString(" " + ret)
	}
	sb.WriteString(" {\n\t")
	if ret != "" {
		sb.WriteString("return ")
	}
	sb.WriteString(fmt.Sprintf("fnptr.Func[%s](&%s.Ptrs.%s)(%s)\n", sig, r.Receiver, field, strings.Join(r.Params(cmd, reg, IdentsOnly), ", ")))
	sb.WriteString("}\n")
	return sb.String()
}
