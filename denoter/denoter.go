// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package denoter implements the type-denoter lattice described in
// spec.md §3/§4.1: the closed family of semantic types a typed AST node
// can carry, together with the structural-equality, implicit-conversion,
// and array/member-projection operations every denoter variant supports.
//
// Following the teacher's ir package, the family is a tagged-variant sum
// type: one Go type per variant, each implementing the unexported
// denoterKind marker method so the compiler enforces exhaustiveness at
// the call sites that type-switch over Denoter.
package denoter

import "fmt"

// Denoter is the semantic type carried by every typed AST node.
type Denoter interface {
	fmt.Stringer

	// Equals reports structural, alias-transparent equality with other.
	Equals(other Denoter) bool

	// IsCastableTo reports whether a value of this type can be implicitly
	// converted to target under HLSL's conversion rules (§4.1).
	IsCastableTo(target Denoter) bool

	// AsArray wraps this denoter in one array dimension per entry of dims,
	// preserving left-to-right declarator order (outermost dimension
	// first, matching HLSL's `T a[2][3]` declaring a 2-array of 3-arrays).
	AsArray(dims []ArrayDim) Denoter

	denoterKind()
}

// ArrayDim is one dimension of an array type. Size is nil for an unsized
// (dynamic) dimension, e.g. the trailing dimension of a runtime array or
// an as-yet-unresolved dimension expression.
type ArrayDim struct {
	Size *int
}

// SizedDim returns a fixed-size dimension.
func SizedDim(n int) ArrayDim { return ArrayDim{Size: &n} }

// UnsizedDim returns an unsized (dynamic) dimension.
func UnsizedDim() ArrayDim { return ArrayDim{} }

// Equal reports whether two dimensions match: two fixed dimensions match
// iff their sizes are equal; an unsized dimension matches anything
// (spec.md §4.1: "matching (or unspecified) dimensions").
func (d ArrayDim) Equal(other ArrayDim) bool {
	if d.Size == nil || other.Size == nil {
		return true
	}
	return *d.Size == *other.Size
}

func (d ArrayDim) String() string {
	if d.Size == nil {
		return "[]"
	}
	return fmt.Sprintf("[%d]", *d.Size)
}

// resolveAlias follows a chain of Alias denoters to its fixed point,
// per §4.1 "Equals is structural and alias-transparent: following
// aliases to fixed points". A cycle (which would only arise from a
// broken invariant elsewhere) is broken after aliasChainLimit hops by
// returning the last denoter seen, rather than looping forever.
const aliasChainLimit = 64

func resolveAlias(d Denoter) Denoter {
	for i := 0; i < aliasChainLimit; i++ {
		a, ok := d.(Alias)
		if !ok {
			return d
		}
		next := a.Decl.Underlying()
		if next == nil {
			return d
		}
		d = next
	}
	return d
}
