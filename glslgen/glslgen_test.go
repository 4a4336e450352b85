// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/sema"
	"github.com/gogpu/xsc/version"
)

func newWriter(target version.OutputVersion) *Writer {
	a := sema.New(target)
	opts := DefaultOptions()
	opts.Target = target
	opts.NameManglingPrefix = "xsc"
	return New(a, opts)
}

func TestMangledName_CachesAndDedupesCollisions(t *testing.T) {
	w := newWriter(version.GLSL330)
	a := &ast.VarDecl{Name: "x"}
	b := &ast.VarDecl{Name: "x"}

	first := w.mangledName(a, "x")
	second := w.mangledName(a, "x")
	assert.Equal(t, first, second, "the same symbol always maps back to its cached name")

	third := w.mangledName(b, "x")
	assert.NotEqual(t, first, third, "a distinct symbol colliding on the same hint gets a disambiguated name")
	assert.Equal(t, "x_1", third)
}

func TestMangledName_EscapesReservedWord(t *testing.T) {
	w := newWriter(version.GLSL330)
	decl := &ast.VarDecl{Name: "float"}
	assert.Equal(t, "_float", w.mangledName(decl, "float"))
}

func TestLocalName_LowerCamelsAndPrefixes(t *testing.T) {
	w := newWriter(version.GLSL330)
	assert.Equal(t, "xsc_position", w.localName("Position"))
	assert.Equal(t, "xsc_uv", w.localName("UV"))
}

func TestRaiseVersion_MonotonicOnAutoTarget(t *testing.T) {
	w := newWriter(version.OutputAutoGLSL)
	w.raiseVersion(version.ShaderVersion{Major: 3, Minor: 30})
	assert.Equal(t, version.GLSL330, w.requiredVersion)

	w.raiseVersion(version.ShaderVersion{Major: 1, Minor: 10})
	assert.Equal(t, version.GLSL330, w.requiredVersion, "raising never lowers below what a prior feature required")

	w.raiseVersion(version.ShaderVersion{Major: 4, Minor: 30})
	assert.Equal(t, version.GLSL430, w.requiredVersion)
}

func TestRaiseVersion_NoOpOnFixedTarget(t *testing.T) {
	w := newWriter(version.GLSL110)
	w.raiseVersion(version.ShaderVersion{Major: 4, Minor: 60})
	assert.Equal(t, version.GLSL110, w.requiredVersion, "a fixed (non-auto) target is never raised")
}

func TestBaseTypeName_ScalarsVectorsMatrices(t *testing.T) {
	w := newWriter(version.GLSL330)
	assert.Equal(t, "float", w.baseTypeName(denoter.Scalar(denoter.Float)))
	assert.Equal(t, "int", w.baseTypeName(denoter.Scalar(denoter.Int)))
	assert.Equal(t, "vec3", w.baseTypeName(denoter.Vector(denoter.Float, 3)))
	assert.Equal(t, "ivec4", w.baseTypeName(denoter.Vector(denoter.Int, 4)))
	assert.Equal(t, "mat4", w.baseTypeName(denoter.Matrix(denoter.Float, 4, 4)))
	assert.Equal(t, "mat4x3", w.baseTypeName(denoter.Matrix(denoter.Float, 3, 4)), "GLSL matNxM names columns first, opposite of rows,cols storage")
}

func TestArraySuffix_SizedAndUnsized(t *testing.T) {
	w := newWriter(version.GLSL330)
	size := 4
	arr := denoter.Scalar(denoter.Float).AsArray([]denoter.ArrayDim{{Size: &size}})
	assert.Equal(t, "[4]", w.arraySuffix(arr))

	unsized := denoter.Scalar(denoter.Float).AsArray([]denoter.ArrayDim{{Size: nil}})
	assert.Equal(t, "[]", w.arraySuffix(unsized))
}

func TestEscapeKeyword_ReservedAndGLPrefixed(t *testing.T) {
	assert.Equal(t, "_in", escapeKeyword("in"))
	assert.Equal(t, "_gl_Foo", escapeKeyword("gl_Foo"))
	assert.Equal(t, "position", escapeKeyword("position"))
	assert.Equal(t, "_unnamed", escapeKeyword(""))
}

func TestBuiltinName_PositionDiffersByDirection(t *testing.T) {
	name, ok := builtinName(ast.SVPosition, true)
	require.True(t, ok)
	assert.Equal(t, "gl_Position", name)

	name, ok = builtinName(ast.SVPosition, false)
	require.True(t, ok)
	assert.Equal(t, "gl_FragCoord", name)
}

func TestBuiltinName_TargetHasNoBuiltin(t *testing.T) {
	_, ok := builtinName(ast.SVTarget, true)
	assert.False(t, ok, "SV_Target is handled by an explicit fragColor out variable, not a gl_* built-in")
}

func TestWriteLiteralExpr_FloatGetsDecimalPointAndDropsSuffix(t *testing.T) {
	w := newWriter(version.GLSL330)
	s, err := w.writeExpr(&ast.LiteralExpr{DataType: denoter.Float, Value: "2f"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", s)
}

func TestWriteLiteralExpr_UIntGetsLowercaseSuffix(t *testing.T) {
	w := newWriter(version.GLSL330)
	s, err := w.writeExpr(&ast.LiteralExpr{DataType: denoter.UInt, Value: "3U"})
	require.NoError(t, err)
	assert.Equal(t, "3u", s)
}

func TestWriteLiteralExpr_IntPassesThrough(t *testing.T) {
	w := newWriter(version.GLSL330)
	s, err := w.writeExpr(&ast.LiteralExpr{DataType: denoter.Int, Value: "5"})
	require.NoError(t, err)
	assert.Equal(t, "5", s)
}

func TestWriteBinaryExpr(t *testing.T) {
	w := newWriter(version.GLSL330)
	lhs := &ast.LiteralExpr{DataType: denoter.Int, Value: "1"}
	rhs := &ast.LiteralExpr{DataType: denoter.Int, Value: "2"}
	s, err := w.writeExpr(&ast.BinaryExpr{Op: ast.OpAdd, Lhs: lhs, Rhs: rhs})
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", s)
}

func TestWriteFunctionCallExpr_Constructor(t *testing.T) {
	w := newWriter(version.GLSL330)
	call := &ast.FunctionCallExpr{
		IsCtor:   true,
		CtorType: denoter.Vector(denoter.Float, 4),
		Args: []ast.Expr{
			&ast.LiteralExpr{DataType: denoter.Float, Value: "1"},
			&ast.LiteralExpr{DataType: denoter.Float, Value: "0"},
		},
	}
	s, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, "vec4(1.0, 0.0)", s)
}

func TestWriteFunctionCallExpr_Intrinsic(t *testing.T) {
	w := newWriter(version.GLSL330)
	call := &ast.FunctionCallExpr{
		Name: "saturate",
		Args: []ast.Expr{&ast.LiteralExpr{DataType: denoter.Float, Value: "0.5"}},
	}
	s, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, "clamp(0.5, 0.0, 1.0)", s)
}

func TestWriteFunctionCallExpr_ClipRoutesThroughHelper(t *testing.T) {
	w := newWriter(version.GLSL330)
	call := &ast.FunctionCallExpr{
		Name: "clip",
		Args: []ast.Expr{&ast.LiteralExpr{DataType: denoter.Float, Value: "0"}},
	}
	s, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, "xsc_clip(0.0)", s)
	assert.True(t, w.needsClipHelper)
}

func TestWriteFunctionCallExpr_AtomicRaisesVersionOnAutoTarget(t *testing.T) {
	w := newWriter(version.OutputAutoGLSL)
	call := &ast.FunctionCallExpr{
		Name: "InterlockedAdd",
		Args: []ast.Expr{
			&ast.LiteralExpr{DataType: denoter.Int, Value: "0"},
			&ast.LiteralExpr{DataType: denoter.Int, Value: "1"},
		},
	}
	_, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, version.GLSL430, w.requiredVersion)
}

func TestWriteFunctionCallExpr_AtomicThreeArgFormAssignsOriginalValue(t *testing.T) {
	// spec.md §4.7: InterlockedAdd(dest, val, orig) -> orig = atomicAdd(dest, val)
	w := newWriter(version.GLSL430)
	call := &ast.FunctionCallExpr{
		Name: "InterlockedAdd",
		Args: []ast.Expr{
			&ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "dest"}},
			&ast.LiteralExpr{DataType: denoter.Int, Value: "1"},
			&ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "orig"}},
		},
	}
	s, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, "orig = atomicAdd(dest, 1)", s)
}

func TestWriteFunctionCallExpr_UserFunctionUsesMangledName(t *testing.T) {
	w := newWriter(version.GLSL330)
	fn := &ast.FunctionDecl{Name: "square"}
	call := &ast.FunctionCallExpr{Name: "square", DeclRef: fn, Args: []ast.Expr{&ast.LiteralExpr{DataType: denoter.Float, Value: "2"}}}
	s, err := w.writeExpr(call)
	require.NoError(t, err)
	assert.Equal(t, "square(2.0)", s)
}

func TestWriteVarIdent_TransposesRowMajorMatrixRead(t *testing.T) {
	w := newWriter(version.GLSL330)
	matType := &ast.VarType{Resolved: denoter.Matrix(denoter.Float, 4, 4)}
	decl := &ast.VarDecl{Name: "worldViewProj", Type: matType, DeclStmntRef: &ast.VarDeclStmnt{RequiresTranspose: true}}
	_, err := decl.GetTypeDenoter(w.analyzer)
	require.NoError(t, err)
	v := &ast.VarIdent{Ident: "worldViewProj", SymbolRef: decl}

	s, err := w.writeVarIdent(v)
	require.NoError(t, err)
	assert.Equal(t, "transpose(worldViewProj)", s)
}

func TestWriteVarIdent_ColumnMajorMatrixReadIsUntransposed(t *testing.T) {
	w := newWriter(version.GLSL330)
	matType := &ast.VarType{Resolved: denoter.Matrix(denoter.Float, 4, 4)}
	decl := &ast.VarDecl{Name: "m", Type: matType, DeclStmntRef: &ast.VarDeclStmnt{RequiresTranspose: false}}
	_, err := decl.GetTypeDenoter(w.analyzer)
	require.NoError(t, err)
	v := &ast.VarIdent{Ident: "m", SymbolRef: decl}

	s, err := w.writeVarIdent(v)
	require.NoError(t, err)
	assert.Equal(t, "m", s)
}

func TestWriteVarIdent_UnresolvedSymbolFallsBackToEscapedIdent(t *testing.T) {
	w := newWriter(version.GLSL330)
	v := &ast.VarIdent{Ident: "in"}
	s, err := w.writeVarIdent(v)
	require.NoError(t, err)
	assert.Equal(t, "_in", s)
}

func TestDeclareInterfaceVar_SystemValueResolvesToBuiltinWithoutDeclaring(t *testing.T) {
	w := newWriter(version.GLSL330)
	sem := ast.ParseSemantic("SV_Position")
	name := w.declareInterfaceVar("out", "pos", sem, denoter.Vector(denoter.Float, 4), true, true)
	assert.Equal(t, "gl_Position", name)
	assert.Empty(t, w.String(), "resolving to a built-in emits no declaration")
}

func TestDeclareInterfaceVar_PlainParameterKeepsSourceName(t *testing.T) {
	w := newWriter(version.GLSL330)
	name := w.declareInterfaceVar("in", "pos", ast.Semantic{}, denoter.Vector(denoter.Float, 4), false, false)
	assert.Equal(t, "pos", name)
	assert.Contains(t, w.String(), "in vec4 pos;")
}

func TestDeclareInterfaceVar_SVTargetDeclaresExplicitFragColor(t *testing.T) {
	w := newWriter(version.GLSL330)
	sem := ast.ParseSemantic("SV_Target")
	name := w.declareInterfaceVar("out", "color", sem, denoter.Vector(denoter.Float, 4), true, true)
	assert.Equal(t, "xsc_fragColor", name)
	assert.Contains(t, w.String(), "out vec4 xsc_fragColor;")
}

func TestWriteEntryPoint_ScalarPassThrough(t *testing.T) {
	// spec.md §8 S1: `float4 main(float4 pos : POSITION) : SV_Position { return pos; }`
	// must inline straight into main(), with no separate function emitted
	// for "main" and no wrapped call to it.
	w := newWriter(version.GLSL330)
	w.options.EntryPoint = "main"
	vecType := &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}
	param := &ast.VarDecl{Name: "pos", Type: vecType}
	ret := &ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "pos", SymbolRef: param}}
	fn := &ast.FunctionDecl{
		Name:       "main",
		Params:     []*ast.VarDecl{param},
		ReturnType: vecType,
		Semantic:   ast.ParseSemantic("SV_Position"),
		Body:       &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{&ast.ReturnStmnt{Value: ret}}},
	}

	require.NoError(t, w.writeFunctionDecl(fn))
	out := w.String()
	assert.Contains(t, out, "in vec4 pos;")
	assert.Contains(t, out, "void main() {")
	assert.Contains(t, out, "gl_Position = pos;")
	assert.Equal(t, 1, strings.Count(out, "void main() {"), "the entry function's body is inlined, never emitted as a separately callable function")
	assert.NotContains(t, out, "_main(", "no dangling call to a same-named function that was never emitted")
}

func TestWriteEntryPoint_StructResultCopiesFieldsOutOfATemporary(t *testing.T) {
	// spec.md §8 S2-shaped: a struct return value still needs one
	// temporary to hold the return expression before its flattened
	// members are copied out to their declared `out` variables.
	w := newWriter(version.GLSL330)
	w.options.EntryPoint = "main"
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	vecType := &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}
	posMember := &ast.VarDecl{Name: "position", Type: vecType, Semantic: ast.ParseSemantic("SV_Position")}
	uvMember := &ast.VarDecl{Name: "uv", Type: floatType, Semantic: ast.ParseSemantic("TEXCOORD0")}
	vsOut := &ast.StructDecl{
		Name: "VSOut",
		Members: []*ast.VarDeclStmnt{
			{Type: vecType, Decls: []*ast.VarDecl{posMember}},
			{Type: floatType, Decls: []*ast.VarDecl{uvMember}},
		},
	}
	structType := &ast.VarType{Resolved: denoter.Struct{Decl: vsOut}}
	param := &ast.VarDecl{Name: "p", Type: vecType}
	ret := &ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "result"}}
	fn := &ast.FunctionDecl{
		Name:       "main",
		Params:     []*ast.VarDecl{param},
		ReturnType: structType,
		Body:       &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{&ast.ReturnStmnt{Value: ret}}},
	}

	require.NoError(t, w.writeFunctionDecl(fn))
	out := w.String()
	assert.Contains(t, out, "gl_Position = xsc_result.position;")
	assert.Contains(t, out, "xsc_result.uv;")
	assert.NotContains(t, out, "_main(")
}

func TestWriteStructDecl_EmitsMemberDeclarations(t *testing.T) {
	w := newWriter(version.GLSL330)
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	s := &ast.StructDecl{
		Name:    "Light",
		Members: []*ast.VarDeclStmnt{{Type: floatType, Decls: []*ast.VarDecl{{Name: "intensity", Type: floatType}}}},
	}
	require.NoError(t, w.writeStructDecl(s))
	out := w.String()
	assert.Contains(t, out, "struct Light {")
	assert.Contains(t, out, "float intensity;")
}

func TestWriteUniformBufferDecl_PlainUniformWithoutBinding(t *testing.T) {
	w := newWriter(version.GLSL330)
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	buf := &ast.UniformBufferDecl{
		Name:    "Constants",
		Members: []*ast.VarDeclStmnt{{Type: floatType, Decls: []*ast.VarDecl{{Name: "gTime", Type: floatType}}}},
	}
	require.NoError(t, w.writeUniformBufferDecl(buf))
	out := w.String()
	assert.Contains(t, out, "uniform Constants {")
	assert.Contains(t, out, "float gTime;")
	assert.NotContains(t, out, "layout(binding")
}

func TestWriteUniformBufferDecl_RegisterWithoutExplicitBindingOptionStaysPlain(t *testing.T) {
	w := newWriter(version.GLSL420)
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	buf := &ast.UniformBufferDecl{
		Name:        "Constants",
		RegisterRef: &ast.Register{Slot: "b0"},
		Members:     []*ast.VarDeclStmnt{{Type: floatType, Decls: []*ast.VarDecl{{Name: "gTime", Type: floatType}}}},
	}
	require.NoError(t, w.writeUniformBufferDecl(buf))
	assert.NotContains(t, w.String(), "layout(binding", "Options.ExplicitBinding defaults to false")
}

func TestWriteUniformBufferDecl_ExplicitBindingEmitsNativeLayoutOnGLSL420(t *testing.T) {
	w := newWriter(version.GLSL420)
	w.options.ExplicitBinding = true
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	buf := &ast.UniformBufferDecl{
		Name:        "Constants",
		RegisterRef: &ast.Register{Slot: "b0"},
		Members:     []*ast.VarDeclStmnt{{Type: floatType, Decls: []*ast.VarDecl{{Name: "gTime", Type: floatType}}}},
	}
	require.NoError(t, w.writeUniformBufferDecl(buf))
	out := w.String()
	assert.Contains(t, out, "layout(binding = 0) uniform Constants {")
	assert.NotContains(t, out, "#extension", "GLSL 4.20 supports explicit binding natively")
}

func TestWriteUniformBufferDecl_ExplicitBindingOnGLSL410RequiresExtensionOptIn(t *testing.T) {
	w := newWriter(version.GLSL410)
	w.options.ExplicitBinding = true
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	buf := &ast.UniformBufferDecl{
		Name:        "Constants",
		RegisterRef: &ast.Register{Slot: "b0"},
		Members:     []*ast.VarDeclStmnt{{Type: floatType, Decls: []*ast.VarDecl{{Name: "gTime", Type: floatType}}}},
	}

	require.NoError(t, w.writeUniformBufferDecl(buf))
	assert.NotContains(t, w.String(), "layout(binding", "AllowExtensions is false, so the extension-gated path stays plain")

	w2 := newWriter(version.GLSL410)
	w2.options.ExplicitBinding = true
	w2.options.AllowExtensions = true
	require.NoError(t, w2.writeUniformBufferDecl(buf))
	assert.Contains(t, w2.String(), "layout(binding = 0) uniform Constants {")
	_, required := w2.extensions["GL_ARB_shading_language_420pack"]
	assert.True(t, required, "the 420pack extension must be recorded for Emit to prepend it")
}

func TestEmit_PrependsVersionHeaderAndClipHelperOnce(t *testing.T) {
	w := newWriter(version.GLSL330)
	prog := &ast.Program{}
	w.needsClipHelper = true

	out, err := w.Emit(prog)
	require.NoError(t, err)
	assert.Contains(t, out, "#version 330")
	assert.Contains(t, out, "void xsc_clip(vec4 x)")
}
