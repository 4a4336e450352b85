// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/gogpu/xsc/denoter"

// TypeContext is the seam between the AST's per-node DeriveTypeDenoter
// methods and the semantic analyzer that actually knows how to resolve
// identifiers, dispatch intrinsics, and score overloads. ast never
// imports sema/symtab (sema and symtab both import ast); every node's
// DeriveTypeDenoter takes a TypeContext instead, and sema.Analyzer
// implements it.
type TypeContext interface {
	// ResolveVarIdent resolves a VarIdent chain to its denoter, using
	// SymbolRef if already populated by the resolver, or resolving it
	// on demand otherwise.
	ResolveVarIdent(v *VarIdent) (denoter.Denoter, error)

	// ResolveCall derives a FunctionCallExpr's result type: the callee's
	// return type for a resolved function, the constructed type for a
	// type-constructor call, or the intrinsic dispatcher's result for a
	// recognized intrinsic name (spec.md §4.3, §4.5).
	ResolveCall(call *FunctionCallExpr) (denoter.Denoter, error)

	// Cast validates that value can implicitly convert to target and
	// returns target, or an error carrying both sides' pretty-printed
	// denoters (spec.md §7's TypeMismatch shape) tagged with pos, the
	// position of the expression the cast belongs to.
	Cast(value, target denoter.Denoter, pos Pos, context string) (denoter.Denoter, error)

	// MutuallyCastable reports whether a and b can convert to each
	// other in either direction, used by BinaryExpr/TernaryExpr/
	// InitializerExpr element checks (spec.md §4.3).
	MutuallyCastable(a, b denoter.Denoter) bool

	// BoolType returns the canonical Bool base denoter, used by
	// TernaryExpr's condition check and logical operators.
	BoolType() denoter.Denoter

	// IntType returns the canonical Int base denoter, used by NullExpr
	// (spec.md §4.3: "dynamic array dims are integral") and
	// ArrayLength-style results.
	IntType() denoter.Denoter
}
