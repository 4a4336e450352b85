// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package xsc is a Pure Go HLSL-to-GLSL offline shader cross compiler.
//
// xsc translates HLSL shader source into the GLSL/ESSL/VKSL family:
//   - GLSL — desktop OpenGL 1.10 through 4.60
//   - ESSL — OpenGL ES 1.00, 3.00 through 3.20
//   - VKSL — Vulkan-flavored GLSL 4.50
//
// The package provides a single translation entry point, Translate,
// built on an injected Frontend that turns HLSL source into an *ast.Program
// (lexing, preprocessing, and parsing are assumed-available external
// concerns per this design's scope). Translate then resolves identifiers,
// runs semantic analysis, decides entry-point structure flattening, and
// emits GLSL text through the glslgen package.
//
// Example usage:
//
//	in := xsc.ShaderInput{
//	    SourceCode:   strings.NewReader(hlslSource),
//	    EntryPoint:   "main",
//	    ShaderTarget: xsc.StageVertex,
//	    ShaderVersion: version.HLSL5,
//	}
//	var buf bytes.Buffer
//	out := xsc.ShaderOutput{SourceCode: &buf, ShaderVersion: version.OutputAutoGLSL, Options: xsc.DefaultOptions()}
//	ok, err := xsc.Translate(frontend, in, out, &diag.List{})
package xsc

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/glslgen"
	"github.com/gogpu/xsc/sema"
	"github.com/gogpu/xsc/version"
)

// ShaderStage identifies which pipeline stage the translated entry point
// belongs to (spec.md §6).
type ShaderStage uint8

const (
	StageUndefined ShaderStage = iota
	StageVertex
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
	StageCompute
)

// IncludeHandler resolves an HLSL `#include` filename to a readable
// stream. The zero value (nil) rejects any #include directive.
type IncludeHandler func(filename string) (io.ReadCloser, error)

// Frontend turns HLSL source into an unresolved AST. This is the
// external-collaborator boundary: xsc does not lex, preprocess, or parse
// HLSL itself; a caller supplies a Frontend that does. No default
// implementation is registered.
type Frontend interface {
	Parse(source io.Reader, includeHandler IncludeHandler) (*ast.Program, error)
}

// ShaderInput bundles a single translation's source and target-stage
// metadata (spec.md §6).
type ShaderInput struct {
	SourceCode     io.Reader
	EntryPoint     string // empty means translate every declaration as a pass-through, no entry-point wrapping
	ShaderTarget   ShaderStage
	ShaderVersion  version.InputVersion
	IncludeHandler IncludeHandler
}

// ShaderOutput bundles where translated text is written and how it
// should be formatted (spec.md §6). Despite the name, ShaderVersion here
// is a request, not a report: it may name OutputAutoGLSL and similar
// sentinels, in which case the emitter raises to the minimum concrete
// version the source actually requires.
type ShaderOutput struct {
	SourceCode    io.Writer
	ShaderVersion version.OutputVersion
	Options       Options
}

// Options configures translation behavior beyond the source/target pair
// (spec.md §6). Every field's default matches DefaultOptions.
type Options struct {
	// Indent is the requested indentation unit for emitted GLSL.
	// Translate does not pass it to glslgen, which always indents with
	// four spaces.
	Indent string

	// Prefix is the name-mangling prefix applied to synthesized
	// identifiers (flattened struct-return temporaries, the clip()
	// helper, and any interface variable whose bare name would collide).
	// "<none>" requests an empty prefix.
	Prefix string

	// WarningFlags is a bitmask of warning categories to report; zero
	// disables all warnings (SPEC_FULL.md §12, modeled on the original
	// XShaderCompiler's Warnings bitmask rather than a single bool so a
	// caller can enable e.g. "unused variable" without "implicit cast").
	WarningFlags WarningFlags

	// Blanks requests blank lines between top-level declarations.
	// Translate does not pass it to glslgen; the emitted spacing is the
	// same whatever its value.
	Blanks bool

	// LineMarks emits `#line` directives ahead of statements whose
	// source line differs from the previous one.
	LineMarks bool

	// DumpAST, when true, prepends a debug dump of the resolved AST (see
	// ast.DumpProgram) as a comment block ahead of the emitted GLSL.
	DumpAST bool

	// PreprocessOnly stops translation after the frontend's own
	// preprocessing stage and echoes the resulting HLSL back out,
	// skipping resolution, analysis, and emission entirely.
	PreprocessOnly bool

	// KeepComments passes source comments through to the output.
	// xsc's AST does not model comments, so this is honored by the
	// Frontend (if it preserves them) rather than by Translate itself.
	KeepComments bool

	// ExplicitBinding emits `layout(binding=N)` on uniform buffers when
	// the target version supports it (version.Registry.SupportsExplicitBinding).
	ExplicitBinding bool

	// AllowExtensions permits the emitter to insert `#extension` directives
	// for target versions that need one to unlock a used feature.
	AllowExtensions bool
}

// WarningFlags is a bitmask of warning categories (SPEC_FULL.md §12);
// only WarnUnusedVariable exists today, kept as a bitmask rather than a
// bool so a future category (e.g. an implicit-cast warning) slots in
// without a signature change to Options.
type WarningFlags uint32

const (
	WarnNone WarningFlags = 0

	// WarnUnusedVariable flags a local variable declaration that
	// ResolveProgram never resolved a VarIdent chain to (sema.UnusedLocals).
	WarnUnusedVariable WarningFlags = 1 << iota

	// WarnAll enables every warning category.
	WarnAll = WarnUnusedVariable
)

// DefaultOptions returns spec.md §6's documented defaults: 4-space
// indent, "_" mangling prefix, warnings off, blank lines and comment
// passthrough on, line marks and AST dump off, no preprocess-only
// short-circuit, no explicit bindings, no extensions.
func DefaultOptions() Options {
	return Options{
		Indent:          "    ",
		Prefix:          "_",
		WarningFlags:    WarnNone,
		Blanks:          true,
		LineMarks:       false,
		DumpAST:         false,
		PreprocessOnly:  false,
		KeepComments:    true,
		ExplicitBinding: false,
		AllowExtensions: false,
	}
}

func manglingPrefix(opts Options) string {
	if opts.Prefix == "<none>" {
		return ""
	}
	if opts.Prefix == "" {
		return DefaultOptions().Prefix
	}
	return opts.Prefix
}

// Translate runs the full pipeline — parse (via frontend) → resolve →
// analyze → flatten → emit — writing GLSL to out.SourceCode and
// reporting every diagnostic to log. It returns true if translation
// succeeded (no error-severity diagnostic was reported and no internal
// error occurred), grounded on the teacher's CompileWithOptions
// stage-by-stage structure but restructured for this domain's pipeline
// shape.
func Translate(frontend Frontend, in ShaderInput, out ShaderOutput, log diag.Log) (bool, error) {
	prog, err := frontend.Parse(in.SourceCode, in.IncludeHandler)
	if err != nil {
		log.Report(diag.Internal(errors.Wrap(err, "frontend parse")))
		return false, nil
	}

	if out.Options.PreprocessOnly {
		return true, nil
	}

	registry := version.NewRegistry()
	if err := checkStageSupported(in.ShaderTarget, out.ShaderVersion, registry); err != nil {
		reportClassified(log, err, diag.KindUnsupportedFeature)
		return false, nil
	}

	analyzer := sema.New(out.ShaderVersion)

	if err := sema.ResolveProgram(prog, analyzer); err != nil {
		reportClassified(log, err, diag.KindInternal)
		return false, nil
	}

	if err := sema.TypeCheckProgram(prog, analyzer); err != nil {
		reportClassified(log, err, diag.KindTypeMismatch)
		return false, nil
	}

	sema.ResolveMatrixLayout(prog, analyzer)

	if err := decideEntryPointFlattening(prog, analyzer, in.EntryPoint); err != nil {
		reportClassified(log, err, diag.KindInternal)
		return false, nil
	}

	if out.Options.WarningFlags&WarnUnusedVariable != 0 {
		for _, decl := range sema.UnusedLocals(prog) {
			log.Report(diag.New(diag.KindStyle, diag.SeverityWarning, decl.Pos(), "variable %q is never used", decl.Name))
		}
	}

	writer := glslgen.New(analyzer, glslgen.Options{
		Target:             out.ShaderVersion,
		EntryPoint:         in.EntryPoint,
		Stage:              glslgenStage(in.ShaderTarget),
		LineMarks:          out.Options.LineMarks,
		NameManglingPrefix: manglingPrefix(out.Options),
		UniformBindingBase: 0,
		ExplicitBinding:    out.Options.ExplicitBinding,
		AllowExtensions:    out.Options.AllowExtensions,
	})

	text, err := writer.Emit(prog)
	if err != nil {
		reportClassified(log, err, diag.KindInternal)
		return false, nil
	}

	if out.Options.DumpAST {
		text = "/*\n" + ast.DumpProgram(prog) + "*/\n" + text
	}

	if _, err := io.WriteString(out.SourceCode, text); err != nil {
		return false, errors.Wrap(err, "writing GLSL output")
	}

	if l, ok := log.(*diag.List); ok && l.HasErrors() {
		return false, nil
	}
	return true, nil
}

// reportClassified reports err to log as a Diagnostic, recovering its
// Kind and Pos via diag.Classify when err was raised through
// diag.WithPos, and falling back to fallback at a zero Pos otherwise (an
// error that reached Translate without ever being classified deeper in
// the pipeline, e.g. a default-branch %T mismatch not yet given its own
// diag.WithPos call site).
func reportClassified(log diag.Log, err error, fallback diag.Kind) {
	kind, pos, ok := diag.Classify(err)
	if !ok {
		kind, pos = fallback, ast.Pos{}
	}
	log.Report(diag.New(kind, diag.SeverityError, pos, "%s", err))
}

// checkStageSupported enforces version.Registry's stage-capability
// predicates against a fixed (non-Auto) output version ahead of
// resolution, so a compute/geometry/tessellation shader targeting a
// version that lacks the stage fails fast with an UnsupportedFeature
// diagnostic instead of an emitter producing GLSL the target can't
// actually compile. An Auto target is never rejected here: it always
// resolves to some concrete version, and this compiler does not attempt
// to raise Auto specifically to satisfy a stage (only individual
// version-gated features like atomics or double precision raise it).
func checkStageSupported(stage ShaderStage, target version.OutputVersion, registry version.Registry) error {
	if target.IsAuto() {
		return nil
	}
	var supported bool
	var feature string
	switch stage {
	case StageCompute:
		supported, feature = registry.SupportsCompute(target), "compute shaders"
	case StageGeometry:
		supported, feature = registry.SupportsGeometry(target), "geometry shaders"
	case StageTessControl, StageTessEval:
		supported, feature = registry.SupportsTessellation(target), "tessellation shaders"
	default:
		return nil
	}
	if supported {
		return nil
	}
	return errors.Errorf("%s are not supported by %s", feature, target)
}

// decideEntryPointFlattening marks MustResolve on every struct used as
// the named entry point's parameter or return type (spec.md §4.6); every
// other struct is left MustResolve == false, since only entry-point
// boundary structs are ever flattened.
func decideEntryPointFlattening(prog *ast.Program, analyzer *sema.Analyzer, entryPoint string) error {
	if entryPoint == "" {
		return nil
	}
	for _, stmnt := range prog.GlobalStmnts {
		f, ok := stmnt.(*ast.FunctionDecl)
		if !ok || f.Name != entryPoint || f.Body == nil {
			continue
		}
		for _, p := range f.Params {
			if err := markMustResolve(p.Type, analyzer, true); err != nil {
				return err
			}
		}
		if f.ReturnType != nil {
			if err := markMustResolve(f.ReturnType, analyzer, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func markMustResolve(t *ast.VarType, analyzer *sema.Analyzer, isEntryPoint bool) error {
	dt, err := t.GetTypeDenoter(analyzer)
	if err != nil {
		return err
	}
	s, ok := dt.(denoter.Struct)
	if !ok {
		return nil
	}
	decl, ok := s.Decl.(*ast.StructDecl)
	if !ok {
		return nil
	}
	analyzer.DecideMustResolve(decl, isEntryPoint)
	return nil
}

func glslgenStage(s ShaderStage) glslgen.Stage {
	switch s {
	case StageFragment:
		return glslgen.StageFragment
	case StageCompute:
		return glslgen.StageCompute
	default:
		return glslgen.StageVertex
	}
}
