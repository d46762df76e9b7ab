package bindgen

import (
	"fmt"
	"strings"

	"github.com/teranos/glbind/registry"
)

// Basic supplies the parts of a generated file that do not depend on the
// registry's groups or commands: primitive type aliases, flat constants and
// naming.
type Basic interface {
	// Types returns the primitive type alias declarations for api.
	Types(api registry.API) string
	// TypeImports lists the import paths Types relies on.
	TypeImports(api registry.API) []string
	// EnumItem renders one flat constant spec (without the const keyword).
	// prefix qualifies the constant's declared type, if any.
	EnumItem(enum registry.Enum, prefix string) string
	StructName(api registry.API) string
	SymbolName(api registry.API, ident string) string
}

// GoBasic is the default Basic for Khronos APIs. Unknown APIs get the GL
// primitive types.
type GoBasic struct{}

var _ Basic = GoBasic{}

type typeAlias struct {
	name, goType string
}

var khrTypes = []typeAlias{
	{"GLenum", "uint32"},
	{"GLboolean", "uint8"},
	{"GLbitfield", "uint32"},
	{"GLbyte", "int8"},
	{"GLubyte", "uint8"},
	{"GLshort", "int16"},
	{"GLushort", "uint16"},
	{"GLint", "int32"},
	{"GLuint", "uint32"},
	{"GLclampx", "int32"},
	{"GLsizei", "int32"},
	{"GLfloat", "float32"},
	{"GLclampf", "float32"},
	{"GLdouble", "float64"},
	{"GLclampd", "float64"},
	{"GLchar", "byte"},
	{"GLcharARB", "byte"},
	{"GLhalf", "uint16"},
	{"GLhalfARB", "uint16"},
	{"GLfixed", "int32"},
	{"GLintptr", "int"},
	{"GLintptrARB", "int"},
	{"GLsizeiptr", "int"},
	{"GLsizeiptrARB", "int"},
	{"GLint64", "int64"},
	{"GLint64EXT", "int64"},
	{"GLuint64", "uint64"},
	{"GLuint64EXT", "uint64"},
	{"GLhandleARB", "uint32"},
	{"GLsync", "unsafe.Pointer"},
	{"GLeglImageOES", "unsafe.Pointer"},
	{"GLDEBUGPROC", "uintptr"},
	{"GLDEBUGPROCARB", "uintptr"},
	{"GLDEBUGPROCKHR", "uintptr"},
	{"GLDEBUGPROCAMD", "uintptr"},
	{"GLvdpauSurfaceNV", "int"},
}

var glxTypes = []typeAlias{
	{"Display", "unsafe.Pointer"},
	{"XID", "uintptr"},
	{"Window", "XID"},
	{"Pixmap", "XID"},
	{"Font", "XID"},
	{"Colormap", "XID"},
	{"GLXFBConfig", "unsafe.Pointer"},
	{"GLXContext", "unsafe.Pointer"},
	{"GLXDrawable", "XID"},
	{"GLXPixmap", "XID"},
	{"GLXWindow", "XID"},
	{"GLXPbuffer", "XID"},
	{"GLXContextID", "XID"},
	{"XVisualInfo", "struct{}"},
	{"Bool", "int32"},
}

var wglTypes = []typeAlias{
	{"BOOL", "int32"},
	{"UINT", "uint32"},
	{"INT", "int32"},
	{"FLOAT", "float32"},
	{"DWORD", "uint32"},
	{"HANDLE", "uintptr"},
	{"HDC", "uintptr"},
	{"HGLRC", "uintptr"},
	{"HPBUFFERARB", "uintptr"},
	{"PROC", "uintptr"},
	{"LPCSTR", "*byte"},
	{"LPVOID", "unsafe.Pointer"},
}

var eglTypes = []typeAlias{
	{"EGLenum", "uint32"},
	{"EGLBoolean", "uint32"},
	{"EGLint", "int32"},
	{"EGLAttrib", "int"},
	{"EGLTime", "uint64"},
	{"EGLDisplay", "unsafe.Pointer"},
	{"EGLConfig", "unsafe.Pointer"},
	{"EGLContext", "unsafe.Pointer"},
	{"EGLSurface", "unsafe.Pointer"},
	{"EGLClientBuffer", "unsafe.Pointer"},
	{"EGLImage", "unsafe.Pointer"},
	{"EGLSync", "unsafe.Pointer"},
	{"EGLNativeDisplayType", "unsafe.Pointer"},
	{"EGLNativeWindowType", "uintptr"},
	{"EGLNativePixmapType", "uintptr"},
	{"EGLDEBUGPROCKHR", "uintptr"},
}

func typeSets(api registry.API) [][]typeAlias {
	switch api {
	case registry.APIEgl:
		return [][]typeAlias{eglTypes}
	case registry.APIGlx:
		return [][]typeAlias{khrTypes, glxTypes}
	case registry.APIWgl:
		return [][]typeAlias{khrTypes, wglTypes}
	default:
		return [][]typeAlias{khrTypes}
	}
}

// Types renders the alias block, e.g. "GLenum = uint32".
func (GoBasic) Types(api registry.API) string {
	var sb strings.Builder
	sb.WriteString("// Primitive types of the C API.\n")
	sb.WriteString("type (\n")
	for _, set := range typeSets(api) {
		for _, t := range set {
			sb.WriteString(fmt.Sprintf("\t%s = %s\n", t.name, t.goType))
		}
	}
	sb.WriteString(")\n")
	return sb.String()
}

func (GoBasic) TypeImports(api registry.API) []string {
	for _, set := range typeSets(api) {
		for _, t := range set {
			if strings.Contains(t.goType, "unsafe.") {
				return []string{"unsafe"}
			}
		}
	}
	return nil
}

// EnumItem renders "NAME = value", or "NAME prefix+Type = value" for a typed enum.
func (GoBasic) EnumItem(enum registry.Enum, prefix string) string {
	name := enumIdent(enum.Ident)
	if enum.Type == "" {
		return fmt.Sprintf("%s = %s", name, enum.Value)
	}
	return fmt.Sprintf("%s %s%s = %s", name, prefix, enum.Type, enum.Value)
}

func (GoBasic) StructName(api registry.API) string { return StructName(api) }

func (GoBasic) SymbolName(api registry.API, ident string) string { return SymbolName(api, ident) }

// enumIdent is the Go name of a flat constant; "2D" becomes "_2D".
func enumIdent(ident string) string {
	return goIdent(ident)
}

// EnumType is the representation of ordinary group wrapper types.
func EnumType(api registry.API) string {
	if api == registry.APIEgl {
		return "EGLenum"
	}
	return "GLenum"
}

// BooleanType is the representation of the Boolean group's wrapper type.
func BooleanType(api registry.API) string {
	if api == registry.APIEgl {
		return "EGLBoolean"
	}
	return "GLboolean"
}
