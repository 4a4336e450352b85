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

// helper() declares two locals, "used" and "dead", but only reads
// "used" back out through its return statement.
func unusedLocalsFixture() *ast.Program {
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	usedDecl := &ast.VarDecl{Name: "used", Type: floatType, Initializer: floatLit("1.0")}
	deadDecl := &ast.VarDecl{Name: "dead", Type: floatType, Initializer: floatLit("2.0")}
	usedStmnt := &ast.VarDeclStmnt{Type: floatType, Decls: []*ast.VarDecl{usedDecl}}
	deadStmnt := &ast.VarDeclStmnt{Type: floatType, Decls: []*ast.VarDecl{deadDecl}}
	ret := &ast.ReturnStmnt{Value: &ast.VarAccessExpr{Ident: &ast.VarIdent{Ident: "used"}}}
	fn := &ast.FunctionDecl{
		Name:       "helper",
		ReturnType: floatType,
		Body:       &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{usedStmnt, deadStmnt, ret}},
	}
	return &ast.Program{GlobalStmnts: []ast.Stmnt{fn}}
}

func TestUnusedLocals_FindsDeclarationNeverRead(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	prog := unusedLocalsFixture()
	require.NoError(t, ResolveProgram(prog, a))

	unused := UnusedLocals(prog)
	require.Len(t, unused, 1)
	assert.Equal(t, "dead", unused[0].Name)
}

func TestUnusedLocals_IgnoresParametersAndGlobals(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	param := &ast.VarDecl{Name: "unreadParam", Type: floatType}
	global := &ast.VarDeclStmnt{Type: floatType, Decls: []*ast.VarDecl{{Name: "unreadGlobal", Type: floatType}}}
	fn := &ast.FunctionDecl{
		Name:       "helper",
		Params:     []*ast.VarDecl{param},
		ReturnType: floatType,
		Body:       &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{&ast.ReturnStmnt{Value: floatLit("0.0")}}},
	}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{global, fn}}
	require.NoError(t, ResolveProgram(prog, a))

	assert.Empty(t, UnusedLocals(prog), "unused parameters and globals are not local-variable defects")
}

func TestUnusedLocals_WalksNestedBlocks(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	floatType := &ast.VarType{Resolved: denoter.Scalar(denoter.Float)}
	deadDecl := &ast.VarDecl{Name: "dead", Type: floatType, Initializer: floatLit("3.0")}
	deadStmnt := &ast.VarDeclStmnt{Type: floatType, Decls: []*ast.VarDecl{deadDecl}}
	ifStmnt := &ast.IfStmnt{
		Cond: &ast.LiteralExpr{DataType: denoter.Bool, Value: "true"},
		Then: &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{deadStmnt}},
	}
	fn := &ast.FunctionDecl{
		Name: "helper",
		Body: &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{ifStmnt}},
	}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{fn}}
	require.NoError(t, ResolveProgram(prog, a))

	unused := UnusedLocals(prog)
	require.Len(t, unused, 1)
	assert.Equal(t, "dead", unused[0].Name)
}
