// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"strings"

	"github.com/gogpu/xsc/denoter"
)

// VarIdent is a linked identifier segment: `a.b[0].c` parses to a chain
// of three VarIdents joined by Next (spec.md §3). ArrayIndices holds the
// expressions between the segment's own brackets, e.g. the `[0]` after
// `b`. SymbolRef is populated by the resolver and is a non-owning
// back-reference.
type VarIdent struct {
	base
	Typed

	Ident        string
	ArrayIndices []Expr
	Next         *VarIdent // owned follow-up segment
	SymbolRef    Symbol    // non-owning; set by the resolver
}

// ToString dot-joins the segment idents in declaration order (spec.md §8
// invariant 3).
func (v *VarIdent) ToString() string {
	var sb strings.Builder
	for cur := v; cur != nil; cur = cur.Next {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(cur.Ident)
	}
	return sb.String()
}

// LastVarIdent walks to the tail of the chain.
func (v *VarIdent) LastVarIdent() *VarIdent {
	cur := v
	for cur.Next != nil {
		cur = cur.Next
	}
	return cur
}

// PopFront replaces this segment with its Next segment in place, used by
// the flattener to absorb a resolved struct-parameter prefix (spec.md
// §4.6: "input.foo → foo_local"). If there is no Next, PopFront is a
// no-op. Callers must ResetBufferedTypeDenoter on any node that cached a
// type derived through this segment, since the identity it denotes has
// changed.
func (v *VarIdent) PopFront() {
	if v.Next == nil {
		return
	}
	*v = *v.Next
}

// DeriveTypeDenoter implements §4.3's VarAccessExpr/VarIdent rule:
// "varIdent.GetTypeDenoter()" resolves through the symbol table.
func (v *VarIdent) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return ctx.ResolveVarIdent(v)
}

// GetTypeDenoter drives DeriveTypeDenoter through the memoization slot,
// matching every other typed node's entry point.
func (v *VarIdent) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	if dt := v.Buffered(); dt != nil {
		return dt, nil
	}
	dt, err := v.DeriveTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	v.Slot().fill(dt)
	return dt, nil
}

// SwitchCase is one `case expr: stmnts` (or `default:`) arm of a
// SwitchStmnt. CaseExpr is nil for the default arm.
type SwitchCase struct {
	base
	CaseExpr Expr
	Stmnts   []Stmnt
}

// Register is an HLSL `register(bN[, spaceM])` binding annotation.
type Register struct {
	base
	Slot  string // e.g. "b0", "t3", "u1"
	Space int
}

// PackOffset is an HLSL `packoffset(cN[.component])` annotation.
type PackOffset struct {
	base
	Register  int
	Component string // "", "x", "y", "z", or "w"
}

// VarType is the syntactic type specifier attached to a declaration,
// before or in place of the resolved denoter. TypeName is set directly
// by the parser for a base/buffer/sampler type name; Resolved is filled
// in later by the resolver once the named declaration (struct or alias)
// is found, or directly if the frontend already knows the denoter.
type VarType struct {
	base
	Typed

	TypeName string // as written in source, for structs/aliases
	Resolved denoter.Denoter
}

// DeriveTypeDenoter returns the type this VarType names. Unlike most
// Expr nodes, a VarType's denoter is set directly by the resolver rather
// than derived structurally, since a bare type name carries no
// sub-expressions to recurse into.
func (t *VarType) DeriveTypeDenoter(TypeContext) (denoter.Denoter, error) {
	return t.Resolved, nil
}

func (t *VarType) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	if dt := t.Buffered(); dt != nil {
		return dt, nil
	}
	dt, err := t.DeriveTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	t.Slot().fill(dt)
	return dt, nil
}
