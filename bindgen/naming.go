package bindgen

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/glbind/registry"
)

// SymbolName turns a prefix-stripped registry identifier into the symbol the
// platform library exports, e.g. (gl, "BlendFunc") -> "glBlendFunc".
// APIs without a known prefix keep the identifier as is.
func SymbolName(api registry.API, ident string) string {
	switch api {
	case registry.APIGl, registry.APIGlCore, registry.APIGles1, registry.APIGles2, registry.APIGlsc2:
		return "gl" + ident
	case registry.APIGlx:
		return "glX" + ident
	case registry.APIWgl:
		return "wgl" + ident
	case registry.APIEgl:
		return "egl" + ident
	default:
		return ident
	}
}

// StructName is the name of the generated binding type for api.
func StructName(api registry.API) string {
	switch api {
	case registry.APIGl, registry.APIGlCore:
		return "Gl"
	case registry.APIGlx:
		return "Glx"
	case registry.APIWgl:
		return "Wgl"
	case registry.APIEgl:
		return "Egl"
	case registry.APIGles1:
		return "Gles1"
	case registry.APIGles2:
		return "Gles2"
	case registry.APIGlsc2:
		return "Glsc2"
	}
	name := exportName(goIdent(string(api)))
	if name == "" || name == "_" {
		return "Api"
	}
	return name
}

// PackageName is the default Go package name for api's generated file.
func PackageName(api registry.API) string {
	name := strings.ToLower(goIdent(string(api)))
	name = strings.Trim(name, "_")
	if name == "" || token.IsKeyword(name) {
		return "bindings"
	}
	return name
}

// exportName upper-cases the first rune of s.
func exportName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lower-cases the first rune of s.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// goIdent maps s onto a valid Go identifier: invalid runes become '_' and a
// leading digit gets a '_' prefix. Keywords are left to the caller.
func goIdent(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// predeclared identifiers a parameter must not shadow: the types and
// packages a generated method body refers to.
var predeclared = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true, "error": true,
	"float32": true, "float64": true, "int": true, "int8": true, "int16": true,
	"int32": true, "int64": true, "rune": true, "string": true, "uint": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true, "nil": true, "true": true, "false": true, "iota": true,
	"append": true, "cap": true, "len": true, "make": true, "new": true, "panic": true,
	"unsafe": true, "fnptr": true, "strconv": true,
}

// paramIdent turns a registry parameter name into a usable Go parameter name.
// Keywords, predeclared names and the method receiver get a trailing '_'.
// An empty name becomes p<index>.
func paramIdent(name string, index int, receiver string) string {
	id := goIdent(name)
	if id == "" {
		return "p" + strconv.Itoa(index)
	}
	if token.IsKeyword(id) || predeclared[id] || id == receiver || id == "_" {
		return id + "_"
	}
	return id
}
