// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"strconv"
	"strings"

	"github.com/gogpu/xsc/denoter"
)

// Decl is implemented by every declaration node.
type Decl interface {
	Node
	declNode()
}

// StructDecl owns its member VarDeclStmnt list and may hold a
// non-owning reference to a single base struct (spec.md §3: "may hold a
// non-owning base-struct reference (single inheritance only)").
type StructDecl struct {
	base

	Name          string
	BaseName      string          // as written in source, e.g. `struct VSOut : VSIn`; "" if none
	Members       []*VarDeclStmnt // owned
	BaseStructRef *StructDecl     // non-owning; set by the resolver
	MustResolve   bool            // set by sema's flattening decision (§4.6)
}

func (*StructDecl) declNode()  {}
func (*StructDecl) stmntNode() {} // a struct definition is also a top-level Program statement

// StructName implements denoter.StructInfo.
func (s *StructDecl) StructName() string { return s.Name }

// Base implements denoter.StructInfo.
func (s *StructDecl) Base() (denoter.StructInfo, bool) {
	if s.BaseStructRef == nil {
		return nil, false
	}
	return s.BaseStructRef, true
}

// flatMembers lazily expands Members (a list of VarDeclStmnt, each of
// which can declare several VarDecls sharing one VarType, e.g.
// `float a, b;`) into one entry per individual VarDecl.
func (s *StructDecl) flatMembers() []*VarDecl {
	var out []*VarDecl
	for _, stmnt := range s.Members {
		out = append(out, stmnt.Decls...)
	}
	return out
}

// NumMembers implements denoter.StructInfo: the count of this struct's
// own (non-inherited) members.
func (s *StructDecl) NumMembers() int { return len(s.flatMembers()) }

// MemberAt implements denoter.StructInfo. The member's denoter is derived
// on first use; it is nil only while the member's VarType is unresolved.
func (s *StructDecl) MemberAt(i int) (string, denoter.Denoter) {
	m := s.flatMembers()[i]
	if m.Type == nil || m.Type.Resolved == nil {
		return m.Name, m.BufferedTypeDenoter()
	}
	dt, _ := m.GetTypeDenoter(nil)
	return m.Name, dt
}

// MemberDecl returns the underlying VarDecl for the i'th own member,
// giving sema/glslgen access to the Semantic/PackOffset information
// denoter.StructInfo intentionally doesn't expose.
func (s *StructDecl) MemberDecl(i int) *VarDecl { return s.flatMembers()[i] }

// AsDenoter returns this struct's Struct denoter.
func (s *StructDecl) AsDenoter() denoter.Struct { return denoter.Struct{Decl: s} }

// AliasDecl is an HLSL `typedef`. Underlying is populated by the
// resolver once the aliased type name resolves.
type AliasDecl struct {
	base

	Name       string
	Underlying_ denoter.Denoter
}

func (*AliasDecl) declNode()  {}
func (*AliasDecl) stmntNode() {}

// AliasName implements denoter.AliasInfo.
func (a *AliasDecl) AliasName() string { return a.Name }

// Underlying implements denoter.AliasInfo.
func (a *AliasDecl) Underlying() denoter.Denoter { return a.Underlying_ }

// VarDecl owns its array-dimension expression list and optional
// initializer; carries a Semantic and optional PackOffset (spec.md §3).
type VarDecl struct {
	base
	Typed

	Name         string
	Type         *VarType
	ArrayDims    []Expr // owned; each may be nil for an unsized dimension
	Initializer  Expr   // owned; nil if none
	Semantic     Semantic
	PackOffsetRef *PackOffset

	DeclStmntRef *VarDeclStmnt // non-owning; set by the resolver

	// Used records whether the resolver has ever resolved a VarIdent
	// chain to this declaration. Feeds the unused-variable warning
	// (spec.md §6 `warnings` option); a function parameter is exempt,
	// since HLSL entry-point and helper signatures are fixed by the
	// caller and an unused parameter is not a defect the way an unused
	// local is.
	Used bool
}

func (*VarDecl) declNode() {}

// SymbolName implements ast.Symbol.
func (v *VarDecl) SymbolName() string { return v.Name }

// MarkUsed records a reference to this declaration. Called by the
// symbol table whenever a VarIdent resolves to it.
func (v *VarDecl) MarkUsed() { v.Used = true }

// DeriveTypeDenoter combines the declared VarType with any array
// dimensions this specific VarDecl adds (HLSL allows `float3 a[4], b;`
// where only `a` is an array despite sharing `float3` with `b`).
func (v *VarDecl) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	base, err := v.Type.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	if len(v.ArrayDims) == 0 {
		return base, nil
	}
	dims := make([]denoter.ArrayDim, len(v.ArrayDims))
	for i, dim := range v.ArrayDims {
		dims[i] = foldArrayDim(dim)
	}
	return base.AsArray(dims), nil
}

// foldArrayDim constant-folds a dimension expression into a fixed-size
// denoter.ArrayDim when it is an integer literal, e.g. `float a[4]`; any
// other shape (nil, non-literal, non-integral) stays unsized, matching
// HLSL's own unsized-array-dimension rule for anything not resolvable at
// this point in translation.
func foldArrayDim(dim Expr) denoter.ArrayDim {
	lit, ok := dim.(*LiteralExpr)
	if !ok {
		return denoter.UnsizedDim()
	}
	switch lit.DataType {
	case denoter.Int, denoter.UInt:
	default:
		return denoter.UnsizedDim()
	}
	n, err := strconv.Atoi(strings.TrimRight(lit.Value, "uU"))
	if err != nil || n < 0 {
		return denoter.UnsizedDim()
	}
	return denoter.SizedDim(n)
}

func (v *VarDecl) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
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

// VarDeclStmnt owns a list of VarDecls plus a VarType and a set of type
// modifiers and storage classes (spec.md §3). It is both a Decl (at
// global/struct-member scope) and a Stmnt (inside a function body),
// matching HLSL grammar where a variable declaration is syntactically a
// statement.
type VarDeclStmnt struct {
	base

	Type      *VarType
	Modifiers TypeModifier
	Storage   StorageClass
	Decls     []*VarDecl // owned

	// RequiresTranspose is set once by sema.ResolveMatrixLayout for a
	// matrix-typed declaration; the emitter only reads it, never decides
	// row/column-majorness itself.
	RequiresTranspose bool
}

func (*VarDeclStmnt) declNode()  {}
func (*VarDeclStmnt) stmntNode() {}

// UniformBufferDecl models an HLSL cbuffer/tbuffer: owns a list of
// VarDeclStmnts and an optional register binding (spec.md §3).
type UniformBufferDecl struct {
	base

	Name        string
	IsTextureBuffer bool // true for tbuffer, false for cbuffer
	Members     []*VarDeclStmnt // owned
	RegisterRef *Register
}

func (*UniformBufferDecl) declNode()  {}
func (*UniformBufferDecl) stmntNode() {}

// FunctionDecl owns parameters and an optional code block; forward
// declarations have no block (spec.md §3).
type FunctionDecl struct {
	base

	Name       string
	ReturnType *VarType
	Params     []*VarDecl // owned
	Body       *CodeBlockStmnt // owned; nil for a forward declaration
	Semantic   Semantic        // return-value semantic, e.g. entry point's SV_Target

	// EqualsSignature-relevant: NumMinArgs/NumMaxArgs are derived from
	// how many trailing Params have initializers (default arguments).
}

func (*FunctionDecl) declNode()  {}
func (*FunctionDecl) stmntNode() {}

// SymbolName implements ast.Symbol.
func (f *FunctionDecl) SymbolName() string { return f.Name }

// IsForwardDecl reports whether this is a prototype without a body.
func (f *FunctionDecl) IsForwardDecl() bool { return f.Body == nil }

// NumMinArgs is the fewest arguments a call can supply: parameters
// before the first one with a default initializer.
func (f *FunctionDecl) NumMinArgs() int {
	for i, p := range f.Params {
		if p.Initializer != nil {
			return i
		}
	}
	return len(f.Params)
}

// NumMaxArgs is len(Params): every parameter, defaulted or not.
func (f *FunctionDecl) NumMaxArgs() int { return len(f.Params) }

// ParameterSemantics partitions this function's parameters (spec.md §3).
func (f *FunctionDecl) ParameterSemantics() ParameterSemantics { return Classify(f.Params) }

// EqualsSignature reports parameter-type equality with other, ignoring
// return type and parameter names, used to detect a forward
// declaration's matching definition vs. an outright redefinition
// (spec.md §4.4).
func (f *FunctionDecl) EqualsSignature(other *FunctionDecl) bool {
	if f.Name != other.Name || len(f.Params) != len(other.Params) {
		return false
	}
	for i := range f.Params {
		a := f.Params[i].BufferedTypeDenoter()
		b := other.Params[i].BufferedTypeDenoter()
		if a == nil || b == nil || !a.Equals(b) {
			return false
		}
	}
	return true
}
