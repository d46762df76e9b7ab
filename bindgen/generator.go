// Package bindgen generates Go bindings for a C API described by a
// registry.Registry: typed constant groups, a function pointer table with
// per-command fallbacks, and one method per command.
//
// Every emitter is a pure function returning source text. Only
// StructGenerator.Write touches the output.
package bindgen

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/registry"
	"github.com/teranos/glbind/version"
)

// ErrWrite marks a failure of the output sink.
var ErrWrite = errors.New("write generated source")

// Generator writes bindings for a registry.
type Generator interface {
	Write(w io.Writer, reg *registry.Registry) error
}

// Stage names one emission step, in output order.
type Stage string

const (
	StageHeader   Stage = "header"
	StageTypes    Stage = "types"
	StageEnums    Stage = "enums"
	StageGroups   Stage = "groups"
	StageFnPtr    Stage = "fnptr"
	StageSentinel Stage = "sentinel"
	StageStruct   Stage = "struct"
	StageImpl     Stage = "impl"
)

// Stages lists every stage in emission order. Later stages refer to names
// declared by earlier ones.
var Stages = []Stage{
	StageHeader, StageTypes, StageEnums, StageGroups,
	StageFnPtr, StageSentinel, StageStruct, StageImpl,
}

// Fragment is the text produced by one stage.
type Fragment struct {
	Stage Stage
	Text  string
}

// StructGenerator emits a single Go file holding a binding struct with an
// explicit LoadWith constructor.
type StructGenerator struct {
	// Package is the generated package clause; empty derives it from the API.
	Package string
	// Namespace qualifies group types in command signatures.
	Namespace string
	Basic     Basic
	Hooks     TraitHooks
}

var _ Generator = (*StructGenerator)(nil)

// NewStructGenerator returns a generator with GoBasic and MarkerHooks.
func NewStructGenerator(pkg string) *StructGenerator {
	return &StructGenerator{Package: pkg, Basic: GoBasic{}, Hooks: MarkerHooks{}}
}

func (g *StructGenerator) basic() Basic {
	if g.Basic == nil {
		return GoBasic{}
	}
	return g.Basic
}

func (g *StructGenerator) hooks() TraitHooks {
	if g.Hooks == nil {
		return MarkerHooks{}
	}
	return g.Hooks
}

// Fragments renders every stage without writing anything.
func (g *StructGenerator) Fragments(reg *registry.Registry) []Fragment {
	basic := g.basic()
	texts := map[Stage]string{
		StageHeader:   g.header(reg, basic),
		StageTypes:    basic.Types(reg.API),
		StageEnums:    emitEnums(reg, basic),
		StageGroups:   EmitGroups(reg, g.hooks()),
		StageFnPtr:    EmitFnPtrDef(),
		StageSentinel: EmitSentinel(reg.API),
		StageStruct:   EmitStruct(reg, basic),
		StageImpl:     EmitImpl(reg, basic, g.Namespace),
	}

	out := make([]Fragment, 0, len(Stages))
	for _, s := range Stages {
		out = append(out, Fragment{Stage: s, Text: texts[s]})
	}
	return out
}

// Write emits every stage to w in order. The first failing write stops
// generation; its error is marked with ErrWrite.
func (g *StructGenerator) Write(w io.Writer, reg *registry.Registry) error {
	first := true
	for _, f := range g.Fragments(reg) {
		if f.Text == "" {
			continue
		}
		text := f.Text
		if !first {
			text = "\n" + text
		}
		first = false
		if _, err := io.WriteString(w, text); err != nil {
			return errors.Mark(errors.Wrapf(err, "write %s", f.Stage), ErrWrite)
		}
	}
	return nil
}

// Generate returns the whole generated file.
func (g *StructGenerator) Generate(reg *registry.Registry) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = g.Write(&buf, reg)
	return buf.Bytes()
}

// PackageName is the package clause the generator emits for reg.
func (g *StructGenerator) PackageName(reg *registry.Registry) string {
	if g.Package != "" {
		return g.Package
	}
	return PackageName(reg.API)
}

func (g *StructGenerator) header(reg *registry.Registry, basic Basic) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("// Code generated by %s; DO NOT EDIT.\n", version.Get().Generator()))
	sb.WriteString(fmt.Sprintf("// API: %s\n\n", reg.Identity))
	sb.WriteString(fmt.Sprintf("package %s\n\n", g.PackageName(reg)))

	std := append([]string(nil), basic.TypeImports(reg.API)...)
	if len(reg.Groups) > 0 {
		std = append(std, "strconv")
	}
	sort.Strings(std)
	std = dedupe(std)

	sb.WriteString("import (\n")
	for _, imp := range std {
		sb.WriteString(fmt.Sprintf("\t%q\n", imp))
	}
	if len(std) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\t%q\n", fnptrImport))
	sb.WriteString(")\n")
	return sb.String()
}

func emitEnums(reg *registry.Registry, basic Basic) string {
	if len(reg.Enums) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("const (\n")
	for _, e := range reg.Enums {
		sb.WriteString("\t" + basic.EnumItem(e, "") + "\n")
	}
	sb.WriteString(")\n")
	return sb.String()
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
