// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glslgen implements the GLSL emitter (spec.md §4.7): a visitor
// over the typed ast that writes GLSL/ESSL/VKSL text, raising the
// output version monotonically as it encounters version-gated features,
// tracking required extensions, and rewriting HLSL intrinsics and
// structure-flattened entry-point parameters along the way. Structure
// and naming are grounded on the teacher's glsl/writer.go Writer.
package glslgen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/sema"
	"github.com/gogpu/xsc/version"
)

// Stage identifies which shader stage's entry-point conventions apply
// (spec.md §4.6: input/output direction of SV_Position and friends
// depends on whether the entry point is a vertex or fragment shader).
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// Options configures a single translation's GLSL output.
type Options struct {
	Target             version.OutputVersion
	EntryPoint         string
	Stage              Stage
	LineMarks          bool
	NameManglingPrefix string
	UniformBindingBase int

	// ExplicitBinding, when true, emits `layout(binding=N)` on uniform
	// buffers when the target version supports it.
	ExplicitBinding bool

	// AllowExtensions, when true, permits the emitter to insert
	// `#extension` directives for target versions that need one to unlock
	// an explicit binding or other version-gated feature.
	AllowExtensions bool
}

// DefaultOptions returns the emitter defaults: no line marks, the
// teacher's conventional `xsc` mangling prefix, bindings starting at 0.
func DefaultOptions() Options {
	return Options{
		Target:             version.OutputAutoGLSL,
		NameManglingPrefix: "xsc",
	}
}

// Writer walks a *sema.Analyzer-annotated ast.Program and renders GLSL
// source text, raising w.requiredVersion and w.extensions as it goes.
type Writer struct {
	analyzer *sema.Analyzer
	options  Options

	out    strings.Builder
	indent int

	names       map[ast.Symbol]string
	usedNames   map[string]struct{}
	structNames map[string]string

	requiredVersion version.OutputVersion
	extensions      map[string]struct{}

	needsClipHelper bool

	currentLine int

	// entryReturn is non-nil while writeEntryPoint is inlining an entry
	// function's body directly into main(): writeReturnStmnt consults it
	// to rewrite `return expr;` into an assignment into the declared
	// output variable(s) instead of a real GLSL return, since the
	// inlined body no longer lives inside its own callable function.
	entryReturn *entryReturnTarget
}

// New returns a Writer bound to analyzer (already run against the
// program to be emitted) and opts.
func New(analyzer *sema.Analyzer, opts Options) *Writer {
	return &Writer{
		analyzer:        analyzer,
		options:         opts,
		names:           make(map[ast.Symbol]string),
		usedNames:       make(map[string]struct{}),
		structNames:     make(map[string]string),
		requiredVersion: opts.Target,
		extensions:      make(map[string]struct{}),
	}
}

// String returns the GLSL text emitted so far.
func (w *Writer) String() string { return w.out.String() }

// ResolvedVersion returns the output version Emit settled on: the
// configured Target if it named a specific version, or the minimum
// version an auto target was raised to by the features actually used.
func (w *Writer) ResolvedVersion() version.OutputVersion { return w.requiredVersion }

// Emit renders prog's global declarations in order, then returns the
// full source text with the version directive and extensions prepended
// (they are only known in full after the walk, since raising is
// monotonic and driven by what the body actually uses).
func (w *Writer) Emit(prog *ast.Program) (string, error) {
	for _, stmnt := range prog.GlobalStmnts {
		if err := w.writeGlobalStmnt(stmnt); err != nil {
			return "", err
		}
	}

	w.raiseVersion(version.ShaderVersion{}) // an auto target no feature raised settles on its family's minimum
	var header strings.Builder
	fmt.Fprintf(&header, "#version %s %s\n", w.requiredVersion.Number(), w.requiredVersion.Profile())
	for ext := range w.extensions {
		fmt.Fprintf(&header, "#extension %s : enable\n", ext)
	}
	header.WriteByte('\n')
	if w.needsClipHelper {
		header.WriteString(w.clipHelperSource())
	}
	return header.String() + w.String(), nil
}

// raiseVersion implements §4.7's monotonic version-raising rule: the
// emitter never lowers below what a prior feature already required.
func (w *Writer) raiseVersion(need version.ShaderVersion) {
	if !w.options.Target.IsAuto() {
		return
	}
	cur := w.requiredVersion.ShaderVersion()
	w.requiredVersion = w.analyzer.Registry.MinimumFor(w.options.Target, cur.Max(need))
}

func (w *Writer) requireExtension(name string) { w.extensions[name] = struct{}{} }

// clipHelperName is the mangled name of the one-time clip() helper
// function, e.g. "xsc_clip".
func (w *Writer) clipHelperName() string { return w.options.NameManglingPrefix + "_clip" }

// clipHelperSource renders the clip() helper's definition (spec.md §8
// S5), emitted once ahead of the declarations that use it.
func (w *Writer) clipHelperSource() string {
	return fmt.Sprintf("void %s(vec4 x) {\n    if (any(lessThan(x, vec4(0.0)))) discard;\n}\n\n", w.clipHelperName())
}

func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

func (w *Writer) pushIndent() { w.indent++ }
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// writeLineMark emits a `#line N` directive ahead of a statement when
// line marks are enabled and its source line differs from the last one
// marked (§4.7).
func (w *Writer) writeLineMark(pos ast.Pos) {
	if !w.options.LineMarks || pos.Line == w.currentLine {
		return
	}
	w.currentLine = pos.Line
	w.writeLine("#line %d", pos.Line)
}

// mangledName allocates (or returns the cached) escaped, collision-free
// GLSL identifier for a declaration.
func (w *Writer) mangledName(sym ast.Symbol, hint string) string {
	if n, ok := w.names[sym]; ok {
		return n
	}
	base := escapeKeyword(hint)
	name := base
	for i := 1; ; i++ {
		if _, used := w.usedNames[name]; !used {
			break
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	w.usedNames[name] = struct{}{}
	w.names[sym] = name
	return name
}

// localName synthesizes a flattened-parameter local variable name using
// the configured mangling prefix, e.g. `xsc_position` (spec.md §4.6).
// strcase normalizes the member name to lowerCamel first, matching the
// convention the teacher's generated identifiers use elsewhere.
func (w *Writer) localName(member string) string {
	return w.options.NameManglingPrefix + "_" + strcase.ToLowerCamel(member)
}

func (w *Writer) structName(name string) string {
	if n, ok := w.structNames[name]; ok {
		return n
	}
	n := escapeKeyword(name)
	w.structNames[name] = n
	return n
}

// declTypeFor renders t's GLSL spelling, first enforcing
// version.Registry.SupportsDoublePrecision on any Double-component base:
// pos identifies the declaration or parameter t belongs to, for a
// resulting UnsupportedFeature diagnostic.
func (w *Writer) declTypeFor(t denoter.Denoter, pos ast.Pos) (base, suffix string, err error) {
	if err := w.checkSupported(t, pos); err != nil {
		return "", "", err
	}
	return w.baseTypeName(t), w.arraySuffix(t), nil
}

// checkSupported gates a declared type against the target version's
// capabilities. ESSL never has `double`, regardless of version; an Auto
// GLSL/VKSL target raises its minimum version like raiseAtomicsVersion
// does; a fixed target below the threshold is an UnsupportedFeature
// diagnostic at pos.
func (w *Writer) checkSupported(t denoter.Denoter, pos ast.Pos) error {
	b, ok := elemBase(t)
	if !ok || b.Kind != denoter.Double {
		return nil
	}
	if w.requiredVersion.IsLanguageESSL() {
		err := errors.New("double precision floating point is not supported by ESSL")
		return diag.WithPos(diag.KindUnsupportedFeature, pos, err)
	}
	if w.options.Target.IsAuto() {
		w.raiseVersion(version.ShaderVersion{Major: 4, Minor: 0})
		return nil
	}
	if w.analyzer.Registry.SupportsDoublePrecision(w.requiredVersion) {
		return nil
	}
	err := errors.Errorf("double precision floating point requires GLSL 4.00 or later, target is %s", w.requiredVersion)
	return diag.WithPos(diag.KindUnsupportedFeature, pos, err)
}
