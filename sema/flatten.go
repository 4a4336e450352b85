// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"fmt"

	"github.com/gogpu/xsc/ast"
)

// DecideMustResolve implements spec.md §4.6's flattening test: a struct
// used as an entry-point parameter or return type must resolve to
// individual in/out declarations, rather than a single interface block,
// when either the target lacks interface-block support or the struct
// mixes system-value and user-defined members in a way that would
// require splitting a single block anyway.
func (a *Analyzer) DecideMustResolve(s *ast.StructDecl, isEntryPoint bool) {
	if !isEntryPoint {
		s.MustResolve = false
		return
	}
	if !a.Registry.SupportsInterfaceBlocks(a.Target) {
		s.MustResolve = true
		return
	}
	s.MustResolve = hasMixedMembership(s)
}

// hasMixedMembership reports whether s (including inherited members)
// contains both system-value and user-defined members, base-first per
// §4.2.
func hasMixedMembership(s *ast.StructDecl) bool {
	hasSV, hasUser := false, false
	walkMembersBaseFirst(s, func(m *ast.VarDecl) {
		if m.Semantic.IsSystemValue() {
			hasSV = true
		} else {
			hasUser = true
		}
	})
	return hasSV && hasUser
}

func walkMembersBaseFirst(s *ast.StructDecl, visit func(*ast.VarDecl)) {
	if base, ok := s.Base(); ok {
		if baseDecl, ok := base.(*ast.StructDecl); ok {
			walkMembersBaseFirst(baseDecl, visit)
		}
	}
	for i := 0; i < s.NumMembers(); i++ {
		visit(s.MemberDecl(i))
	}
}

// FlattenedMember is one member's disposition once its owning struct is
// flattened at an entry point (spec.md §4.6).
type FlattenedMember struct {
	Member      *ast.VarDecl
	SystemValue ast.SystemValue
	LocalName   string // namePrefix + "_" + the member's name, e.g. "xsc_out_uv"
	Location    int    // declaration-order index among the non-system-value members
}

// FlattenPlan is the full flattening result for one MustResolve struct.
type FlattenPlan struct {
	Struct  *ast.StructDecl
	Members []FlattenedMember
}

// PlanFlatten computes the per-member disposition for s. It does not
// read s.MustResolve; glslgen calls it for every struct-typed entry-point
// parameter and return value. namePrefix is the mangling prefix spec.md §4.6
// requires ("a synthesized temporary prefixed by nameManglingPrefix_").
func PlanFlatten(s *ast.StructDecl, namePrefix string) FlattenPlan {
	plan := FlattenPlan{Struct: s}
	location := 0
	walkMembersBaseFirst(s, func(m *ast.VarDecl) {
		fm := FlattenedMember{
			Member:      m,
			SystemValue: m.Semantic.SystemValue,
			LocalName:   fmt.Sprintf("%s_%s", namePrefix, m.Name),
		}
		if !m.Semantic.IsSystemValue() {
			fm.Location = location
			location++
		}
		plan.Members = append(plan.Members, fm)
	})
	return plan
}

// RequiresTranspose implements the matrix-majorness open question
// resolved at analyzer time (SPEC_FULL.md §13): HLSL's own default
// matrix packing order is column_major (row_major must be requested
// explicitly), which already matches GLSL's always-column_major `mat`
// layout and needs no transpose. A transpose is only required when the
// source explicitly opted into `row_major` storage. Called only from
// ResolveMatrixLayout, which stamps the result onto each declaration
// once; the emitter reads that stamped flag and never calls this itself.
func (a *Analyzer) RequiresTranspose(modifiers ast.TypeModifier) bool {
	return modifiers.Has(ast.ModifierRowMajor)
}
