// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/version"
)

func floatVarDecl(name string) *ast.VarDecl {
	return &ast.VarDecl{Name: name, Type: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}}
}

func TestAnalyzer_Cast(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	got, err := a.Cast(denoter.Scalar(denoter.Int), denoter.Scalar(denoter.Float), ast.Pos{}, "test")
	require.NoError(t, err)
	assert.True(t, got.Equals(denoter.Scalar(denoter.Float)))
}

func TestAnalyzer_Cast_RejectsIncompatible(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	s := &ast.StructDecl{Name: "Foo"}
	_, err := a.Cast(s.AsDenoter(), denoter.Vector(denoter.Int, 3), ast.Pos{}, "cast")
	assert.Error(t, err)
}

func TestAnalyzer_MutuallyCastable(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	assert.True(t, a.MutuallyCastable(denoter.Scalar(denoter.Float), denoter.Scalar(denoter.Int)))
	assert.True(t, a.MutuallyCastable(denoter.Scalar(denoter.Float), denoter.Vector(denoter.Float, 4)))
}

func TestAnalyzer_ResolveVarIdent_SimpleIdentifier(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	decl := floatVarDecl("x")
	require.NoError(t, a.Table.Insert("x", decl))

	dt, err := a.ResolveVarIdent(&ast.VarIdent{Ident: "x"})
	require.NoError(t, err)
	assert.True(t, dt.Equals(denoter.Scalar(denoter.Float)))
}

func TestAnalyzer_ResolveVarIdent_UndefinedFails(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	_, err := a.ResolveVarIdent(&ast.VarIdent{Ident: "nope"})
	assert.Error(t, err)
}

func TestAnalyzer_ResolveVarIdent_StructMember(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	s := &ast.StructDecl{
		Name: "Light",
		Members: []*ast.VarDeclStmnt{
			{Decls: []*ast.VarDecl{{Name: "color", Type: &ast.VarType{Resolved: denoter.Vector(denoter.Float, 3)}}}},
		},
	}
	decl := &ast.VarDecl{Name: "light", Type: &ast.VarType{Resolved: s.AsDenoter()}}
	require.NoError(t, a.Table.Insert("light", decl))

	v := &ast.VarIdent{Ident: "light", Next: &ast.VarIdent{Ident: "color"}}
	dt, err := a.ResolveVarIdent(v)
	require.NoError(t, err)
	assert.True(t, dt.Equals(denoter.Vector(denoter.Float, 3)))
}

func makeFunc(name string, params ...*ast.VarDecl) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)},
		Body:       &ast.CodeBlockStmnt{},
	}
}

func TestAnalyzer_RegisterFunction_DefinesForwardDeclaration(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	proto := &ast.FunctionDecl{Name: "f", Params: []*ast.VarDecl{floatVarDecl("a")}, ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}}
	require.NoError(t, a.RegisterFunction(proto))
	assert.True(t, proto.IsForwardDecl())

	def := makeFunc("f", floatVarDecl("a"))
	require.NoError(t, a.RegisterFunction(def))
	assert.False(t, proto.IsForwardDecl(), "defining a forward declaration must replace it in place")
}

func TestAnalyzer_RegisterFunction_RejectsDuplicateForwardDecl(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	proto1 := &ast.FunctionDecl{Name: "f", Params: []*ast.VarDecl{floatVarDecl("a")}, ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}}
	proto2 := &ast.FunctionDecl{Name: "f", Params: []*ast.VarDecl{floatVarDecl("b")}, ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}}
	require.NoError(t, a.RegisterFunction(proto1))
	assert.Error(t, a.RegisterFunction(proto2))
}

func TestAnalyzer_RegisterFunction_RejectsRedefinition(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	require.NoError(t, a.RegisterFunction(makeFunc("f", floatVarDecl("a"))))
	assert.Error(t, a.RegisterFunction(makeFunc("f", floatVarDecl("b"))))
}

func TestAnalyzer_ResolveOverload_PicksExactOverImplicit(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	exact := makeFunc("f", floatVarDecl("a"))
	widening := &ast.FunctionDecl{
		Name:       "f",
		Params:     []*ast.VarDecl{{Name: "a", Type: &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}}},
		ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)},
		Body:       &ast.CodeBlockStmnt{},
	}
	require.NoError(t, a.RegisterFunction(exact))
	require.NoError(t, a.RegisterFunction(widening))

	decl, err := a.ResolveOverload("f", []denoter.Denoter{denoter.Scalar(denoter.Float)}, ast.Pos{})
	require.NoError(t, err)
	assert.Same(t, exact, decl)
}

func TestAnalyzer_ResolveOverload_AmbiguousWhenScoresTie(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	f1 := &ast.FunctionDecl{
		Name:       "f",
		Params:     []*ast.VarDecl{{Name: "a", Type: &ast.VarType{Resolved: denoter.Vector(denoter.Float, 3)}}},
		ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)},
		Body:       &ast.CodeBlockStmnt{},
	}
	f2 := &ast.FunctionDecl{
		Name:       "f",
		Params:     []*ast.VarDecl{{Name: "a", Type: &ast.VarType{Resolved: denoter.Vector(denoter.Float, 4)}}},
		ReturnType: &ast.VarType{Resolved: denoter.Scalar(denoter.Float)},
		Body:       &ast.CodeBlockStmnt{},
	}
	require.NoError(t, a.RegisterFunction(f1))
	require.NoError(t, a.RegisterFunction(f2))

	_, err := a.ResolveOverload("f", []denoter.Denoter{denoter.Scalar(denoter.Float)}, ast.Pos{})
	assert.Error(t, err)
}

func TestAnalyzer_ResolveOverload_NoMatchingArity(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	require.NoError(t, a.RegisterFunction(makeFunc("f", floatVarDecl("a"))))
	_, err := a.ResolveOverload("f", []denoter.Denoter{denoter.Scalar(denoter.Float), denoter.Scalar(denoter.Float)}, ast.Pos{})
	assert.Error(t, err)
}

func TestAnalyzer_ResolveCall_Constructor(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	call := &ast.FunctionCallExpr{Name: "float4", IsCtor: true, CtorType: denoter.Vector(denoter.Float, 4)}
	dt, err := a.ResolveCall(call)
	require.NoError(t, err)
	assert.True(t, dt.Equals(denoter.Vector(denoter.Float, 4)))
}

func TestAnalyzer_ResolveCall_UserFunction(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	f := makeFunc("square", floatVarDecl("x"))
	require.NoError(t, a.RegisterFunction(f))

	lit := &ast.LiteralExpr{DataType: denoter.Float, Value: "2.0"}
	call := &ast.FunctionCallExpr{Name: "square", Args: []ast.Expr{lit}}
	dt, err := a.ResolveCall(call)
	require.NoError(t, err)
	assert.True(t, dt.Equals(denoter.Scalar(denoter.Float)))
	assert.Same(t, f, call.DeclRef)
}

func TestAnalyzer_ResolveCall_Intrinsic(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	arg := &ast.LiteralExpr{DataType: denoter.Float, Value: "1.0"}
	call := &ast.FunctionCallExpr{Name: "rcp", Args: []ast.Expr{arg}}

	dt, err := a.ResolveCall(call)
	require.NoError(t, err)
	assert.True(t, dt.Equals(denoter.Scalar(denoter.Float)), "rcp's Derive is firstArgType")
}

func TestAnalyzer_ResolveCall_UndefinedFunction(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	call := &ast.FunctionCallExpr{Name: "doesNotExist", Args: nil}
	_, err := a.ResolveCall(call)
	assert.Error(t, err)
}
