// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package denoter

import (
	"fmt"
	"strings"
)

// Array denotes an HLSL array type: an element denoter plus one or more
// dimensions in left-to-right declarator order (spec.md §3 invariant).
type Array struct {
	Elem Denoter
	Dims []ArrayDim
}

// newArray wraps elem in dims, flattening nested Array wrapping so that
// Array{Array{T, [2]}, [3]}.AsArray([2]) never happens: AsArray always
// appends dims to any existing Array's dimension list, matching "AsArray
// wraps the current denoter in one or more array dimensions" without
// creating spurious Array-of-Array denoters that GetFromArray would then
// have to peel through two representations of the same thing.
func newArray(base Denoter, dims []ArrayDim) Denoter {
	if len(dims) == 0 {
		return base
	}
	if arr, ok := base.(Array); ok {
		merged := make([]ArrayDim, 0, len(arr.Dims)+len(dims))
		merged = append(merged, arr.Dims...)
		merged = append(merged, dims...)
		return Array{Elem: arr.Elem, Dims: merged}
	}
	return Array{Elem: base, Dims: append([]ArrayDim(nil), dims...)}
}

func (Array) denoterKind() {}

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.Elem.String())
	for _, d := range a.Dims {
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Equals implements "Array→Array: component-wise castability and
// matching (or unspecified) dimensions" for equality specifically:
// dimension counts must match exactly and each dimension pair must
// Equal (fixed sizes equal, or either side unspecified), and element
// types must be Equals (not merely castable).
func (a Array) Equals(other Denoter) bool {
	o, ok := resolveAlias(other).(Array)
	if !ok || len(a.Dims) != len(o.Dims) {
		return false
	}
	for i := range a.Dims {
		if !a.Dims[i].Equal(o.Dims[i]) {
			return false
		}
	}
	return a.Elem.Equals(o.Elem)
}

// IsCastableTo implements the Array→Array rule: component-wise
// castability of the element type plus matching (or unspecified)
// dimensions.
func (a Array) IsCastableTo(target Denoter) bool {
	o, ok := resolveAlias(target).(Array)
	if !ok || len(a.Dims) != len(o.Dims) {
		return false
	}
	for i := range a.Dims {
		if !a.Dims[i].Equal(o.Dims[i]) {
			return false
		}
	}
	return a.Elem.IsCastableTo(o.Elem)
}

func (a Array) AsArray(dims []ArrayDim) Denoter { return newArray(a, dims) }

// GetFromArray peels n array dimensions and, if nextMember is non-empty,
// follows a trailing member access into the resulting element type.
// Fails if n exceeds the declared dimensionality, or if nextMember names
// a member the peeled type doesn't have.
func (a Array) GetFromArray(n int, nextMember string) (Denoter, error) {
	if n > len(a.Dims) {
		return nil, fmt.Errorf("array access has %d indices but %s has only %d dimensions", n, a, len(a.Dims))
	}
	var result Denoter = a.Elem
	if n < len(a.Dims) {
		result = Array{Elem: a.Elem, Dims: a.Dims[n:]}
	}
	if nextMember == "" {
		return result, nil
	}
	return Get(result, []Selector{{Kind: SelMember, Name: nextMember}})
}

// NumElements returns the total flattened element count across all fixed
// dimensions, used by InitializerExpr's arity check (§4.3). Returns
// (0, false) if any dimension is unsized.
func (a Array) NumElements() (int, bool) {
	total := 1
	for _, d := range a.Dims {
		if d.Size == nil {
			return 0, false
		}
		total *= *d.Size
	}
	return total, true
}
