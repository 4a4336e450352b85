// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/version"
)

func vsOutStruct() *ast.StructDecl {
	return &ast.StructDecl{
		Name: "VSOut",
		Members: []*ast.VarDeclStmnt{
			{Decls: []*ast.VarDecl{{Name: "position", Semantic: ast.ParseSemantic("SV_Position")}}},
			{Decls: []*ast.VarDecl{{Name: "uv", Semantic: ast.ParseSemantic("TEXCOORD0")}}},
		},
	}
}

func TestDecideMustResolve_NotEntryPointNeverResolves(t *testing.T) {
	a := New(version.GLSL330)
	s := vsOutStruct()
	a.DecideMustResolve(s, false)
	assert.False(t, s.MustResolve)
}

func TestDecideMustResolve_TargetWithoutInterfaceBlocksAlwaysResolves(t *testing.T) {
	a := New(version.GLSL110) // below GLSL150, no interface block support
	s := &ast.StructDecl{Members: []*ast.VarDeclStmnt{
		{Decls: []*ast.VarDecl{{Name: "uv", Semantic: ast.ParseSemantic("TEXCOORD0")}}},
	}}
	a.DecideMustResolve(s, true)
	assert.True(t, s.MustResolve)
}

func TestDecideMustResolve_MixedMembershipForcesFlattening(t *testing.T) {
	a := New(version.GLSL450) // supports interface blocks
	s := vsOutStruct()        // mixes SV_Position and a user-defined TEXCOORD
	a.DecideMustResolve(s, true)
	assert.True(t, s.MustResolve, "mixing system-value and user-defined members forces flattening even when interface blocks are supported")
}

func TestDecideMustResolve_UniformMembershipCanStayAsBlock(t *testing.T) {
	a := New(version.GLSL450)
	s := &ast.StructDecl{Members: []*ast.VarDeclStmnt{
		{Decls: []*ast.VarDecl{{Name: "uv", Semantic: ast.ParseSemantic("TEXCOORD0")}}},
		{Decls: []*ast.VarDecl{{Name: "color", Semantic: ast.ParseSemantic("COLOR")}}},
	}}
	a.DecideMustResolve(s, true)
	assert.False(t, s.MustResolve)
}

func TestPlanFlatten_OrdersLocationsAmongUserDefinedOnly(t *testing.T) {
	s := vsOutStruct()
	plan := PlanFlatten(s, "xsc_out")
	require.Len(t, plan.Members, 2)

	assert.Equal(t, "position", plan.Members[0].Member.Name)
	assert.Equal(t, ast.SVPosition, plan.Members[0].SystemValue)

	assert.Equal(t, "uv", plan.Members[1].Member.Name)
	assert.Equal(t, ast.SVNone, plan.Members[1].SystemValue)
	assert.Equal(t, 0, plan.Members[1].Location, "the first non-system-value member gets location 0")
	assert.Equal(t, "xsc_out_uv", plan.Members[1].LocalName)
}

func TestPlanFlatten_WalksBaseMembersFirst(t *testing.T) {
	base := &ast.StructDecl{
		Name:    "VSIn",
		Members: []*ast.VarDeclStmnt{{Decls: []*ast.VarDecl{{Name: "position"}}}},
	}
	derived := &ast.StructDecl{
		Name:          "VSOut",
		BaseStructRef: base,
		Members:       []*ast.VarDeclStmnt{{Decls: []*ast.VarDecl{{Name: "uv"}}}},
	}
	plan := PlanFlatten(derived, "p")
	require.Len(t, plan.Members, 2)
	assert.Equal(t, "position", plan.Members[0].Member.Name)
	assert.Equal(t, "uv", plan.Members[1].Member.Name)
}

func TestAnalyzer_RequiresTranspose(t *testing.T) {
	a := New(version.OutputAutoGLSL)
	assert.False(t, a.RequiresTranspose(ast.ModifierNone), "HLSL's own default matrix packing is column_major, matching GLSL's mat layout already")
	assert.False(t, a.RequiresTranspose(ast.ModifierColumnMajor))
	assert.True(t, a.RequiresTranspose(ast.ModifierRowMajor))
}
