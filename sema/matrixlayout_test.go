// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/version"
)

func TestResolveMatrixLayout_GlobalVarDeclStmnt(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	rowMajor := &ast.VarDeclStmnt{Modifiers: ast.ModifierRowMajor}
	columnMajor := &ast.VarDeclStmnt{Modifiers: ast.ModifierColumnMajor}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{rowMajor, columnMajor}}

	ResolveMatrixLayout(prog, a)

	assert.True(t, rowMajor.RequiresTranspose)
	assert.False(t, columnMajor.RequiresTranspose)
}

func TestResolveMatrixLayout_UniformBufferMembers(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	member := &ast.VarDeclStmnt{Modifiers: ast.ModifierNone}
	buf := &ast.UniformBufferDecl{Name: "Constants", Members: []*ast.VarDeclStmnt{member}}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{buf}}

	ResolveMatrixLayout(prog, a)

	assert.False(t, member.RequiresTranspose, "HLSL's own default matrix packing is column_major, which already matches GLSL and needs no transpose")
}

func TestResolveMatrixLayout_RecursesIntoFunctionBody(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	local := &ast.VarDeclStmnt{Modifiers: ast.ModifierColumnMajor}
	fn := &ast.FunctionDecl{
		Name: "f",
		Body: &ast.CodeBlockStmnt{Stmnts: []ast.Stmnt{local}},
	}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{fn}}

	ResolveMatrixLayout(prog, a)

	assert.False(t, local.RequiresTranspose)
}

func TestResolveMatrixLayout_ForwardDeclHasNoBody(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	fn := &ast.FunctionDecl{Name: "f", Body: nil}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{fn}}

	assert.NotPanics(t, func() { ResolveMatrixLayout(prog, a) })
}

func TestResolveMatrixLayout_ForStmntWithNilInitAndIter(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	body := &ast.VarDeclStmnt{Modifiers: ast.ModifierRowMajor}
	forStmnt := &ast.ForStmnt{Init: nil, Iter: nil, Body: body}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{forStmnt}}

	assert.NotPanics(t, func() { ResolveMatrixLayout(prog, a) })
	assert.True(t, body.RequiresTranspose)
}

func TestResolveMatrixLayout_WhileAndDoWhile(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	whileBody := &ast.VarDeclStmnt{Modifiers: ast.ModifierColumnMajor}
	doBody := &ast.VarDeclStmnt{Modifiers: ast.ModifierRowMajor}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{
		&ast.WhileStmnt{Body: whileBody},
		&ast.DoWhileStmnt{Body: doBody},
	}}

	ResolveMatrixLayout(prog, a)

	assert.False(t, whileBody.RequiresTranspose)
	assert.True(t, doBody.RequiresTranspose)
}

func TestResolveMatrixLayout_IfWithAndWithoutElse(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	thenBody := &ast.VarDeclStmnt{Modifiers: ast.ModifierColumnMajor}
	elseBody := &ast.VarDeclStmnt{Modifiers: ast.ModifierRowMajor}
	withElse := &ast.IfStmnt{Then: thenBody, Else: elseBody}

	bareThen := &ast.VarDeclStmnt{Modifiers: ast.ModifierColumnMajor}
	withoutElse := &ast.IfStmnt{Then: bareThen, Else: nil}

	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{withElse, withoutElse}}

	assert.NotPanics(t, func() { ResolveMatrixLayout(prog, a) })
	assert.False(t, thenBody.RequiresTranspose)
	assert.True(t, elseBody.RequiresTranspose)
	assert.False(t, bareThen.RequiresTranspose)
}

func TestResolveMatrixLayout_SwitchCases(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	caseBody := &ast.VarDeclStmnt{Modifiers: ast.ModifierRowMajor}
	sw := &ast.SwitchStmnt{Cases: []*ast.SwitchCase{
		{Stmnts: []ast.Stmnt{caseBody}},
	}}
	prog := &ast.Program{GlobalStmnts: []ast.Stmnt{sw}}

	ResolveMatrixLayout(prog, a)

	assert.True(t, caseBody.RequiresTranspose)
}
