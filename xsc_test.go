// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xsc

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/version"
)

// stubFrontend hands Translate a pre-built *ast.Program instead of
// actually lexing/parsing, standing in for the external Frontend this
// package deliberately doesn't implement.
type stubFrontend struct {
	prog *ast.Program
	err  error
}

func (f *stubFrontend) Parse(io.Reader, IncludeHandler) (*ast.Program, error) {
	return f.prog, f.err
}

// spec.md §8 S1: `float4 main(float4 pos : POSITION) : SV_Position { return pos; }`
// translates straight through to a GLSL vertex shader assigning gl_Position.
func TestTranslate_ScalarPassThroughEntryPoint(t *testing.T) {
	vecType := &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}
	param := &ast.VarDecl{Name: "pos", Type: vecType, Semantic: ast.ParseSemantic("POSITION")}
	ret := &ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "pos", SymbolRef: param}}
	fn := &ast.FunctionDecl{
		Name:       "main",
		Params:     []*ast.VarDecl{param},
		ReturnType: vecType,
		Semantic:   ast.ParseSemantic("SV_Position"),
		Body:       &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{&ast.ReturnStmnt{Value: ret}}},
	}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{fn}}

	var out strings.Builder
	log := &diag.List{}
	ok, err := Translate(&stubFrontend{prog: prog}, ShaderInput{
		EntryPoint:    "main",
		ShaderTarget:  StageVertex,
		ShaderVersion: version.HLSL5,
	}, ShaderOutput{
		SourceCode:    &out,
		ShaderVersion: version.OutputAutoGLSL,
		Options:       DefaultOptions(),
	}, log)

	require.NoError(t, err)
	assert.True(t, ok, "diagnostics: %v", log.Items())
	assert.Contains(t, out.String(), "gl_Position = pos;")
	assert.Contains(t, out.String(), "void main() {")
	assert.Equal(t, 1, strings.Count(out.String(), "void main() {"))
}

// spec.md §8 S6: `float4 v = (int3)struct_instance;` must fail
// type-checking with a KindTypeMismatch diagnostic located at the cast
// expression, and produce no output.
func TestTranslate_CastOfStructInstanceFailsTypeCheck(t *testing.T) {
	light := &ast.StructDecl{Name: "Light"}
	lightType := &ast.VarType{Resolved: light.AsDenoter()}
	sunDecl := &ast.VarDecl{Name: "sun", Type: lightType}
	sunStmnt := &ast.VarDeclStmnt{Type: lightType, Decls: []*ast.VarDecl{sunDecl}}
	access := &ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "sun"}}
	castPos := ast.Pos{Line: 5, Column: 12}
	cast := &ast.CastExpr{TargetType: denoter.Vector(denoter.Int, 3), Value: access}
	cast.Loc = castPos
	floatType := &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}
	vDecl := &ast.VarDecl{Name: "v", Type: floatType, Initializer: cast}
	vStmnt := &ast.VarDeclStmnt{Type: floatType, Decls: []*ast.VarDecl{vDecl}}
	fn := &ast.FunctionDecl{
		Name: "helper",
		Body: &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{sunStmnt, vStmnt}},
	}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{light, fn}}

	var out strings.Builder
	log := &diag.List{}
	ok, err := Translate(&stubFrontend{prog: prog}, ShaderInput{
		ShaderTarget:  StageFragment,
		ShaderVersion: version.HLSL5,
	}, ShaderOutput{
		SourceCode:    &out,
		ShaderVersion: version.OutputAutoGLSL,
		Options:       DefaultOptions(),
	}, log)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
	require.NotEmpty(t, log.Items())
	var found *diag.Diagnostic
	for _, d := range log.Items() {
		if d.Kind == diag.KindTypeMismatch {
			found = d
		}
	}
	require.NotNil(t, found, "expected a KindTypeMismatch diagnostic, got: %v", log.Items())
	assert.Equal(t, castPos, found.Loc, "diagnostic should locate the cast expression, not a zero position")
}

func TestTranslate_FrontendErrorReportsInternalDiagnostic(t *testing.T) {
	var out strings.Builder
	log := &diag.List{}
	ok, err := Translate(&stubFrontend{err: assertError{"malformed source"}}, ShaderInput{}, ShaderOutput{
		SourceCode:    &out,
		ShaderVersion: version.OutputAutoGLSL,
		Options:       DefaultOptions(),
	}, log)

	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, log.Items(), 1)
	assert.Equal(t, diag.KindInternal, log.Items()[0].Kind)
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
