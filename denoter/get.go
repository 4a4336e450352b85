// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package denoter

import "fmt"

// SelectorKind distinguishes the three suffix-chain steps §4.1's Get
// resolves: a named member access, a computed array index, and a
// vector swizzle.
type SelectorKind uint8

const (
	SelMember SelectorKind = iota
	SelIndex
	SelSwizzle
)

// Selector is one link of a suffix chain, e.g. the `.foo`, `[i]`, or
// `.xyz` in `a.foo[i].xyz`. sema builds a []Selector from an
// ast.VarIdent's ident/arrayIndices/next chain (denoter does not import
// ast, so it never sees VarIdent directly — see StructInfo's doc comment
// for why).
type Selector struct {
	Kind    SelectorKind
	Name    string // member name (SelMember) or swizzle pattern (SelSwizzle)
	Indices int    // number of array indices consumed (SelIndex)
}

// Get resolves a suffix chain of member/array/swizzle accesses against
// d, per §4.1's "Get(varIdent?) → denoter: resolves a suffix chain of
// member/array accesses against the denoter."
func Get(d Denoter, chain []Selector) (Denoter, error) {
	cur := d
	for _, sel := range chain {
		var err error
		cur, err = getOne(cur, sel)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func getOne(d Denoter, sel Selector) (Denoter, error) {
	switch sel.Kind {
	case SelIndex:
		arr, ok := resolveAlias(d).(Array)
		if !ok {
			return nil, fmt.Errorf("array access on non-array type %s", d)
		}
		return arr.GetFromArray(sel.Indices, "")
	case SelMember:
		return getMember(d, sel.Name)
	case SelSwizzle:
		return getSwizzle(d, sel.Name)
	default:
		return nil, fmt.Errorf("unknown selector kind %d", sel.Kind)
	}
}

func getMember(d Denoter, name string) (Denoter, error) {
	switch t := resolveAlias(d).(type) {
	case Struct:
		dt, ok := t.Member(name)
		if !ok {
			return nil, fmt.Errorf("type %s has no member %q", t, name)
		}
		return dt, nil
	case Base:
		return getSwizzle(t, name)
	default:
		return nil, fmt.Errorf("member access %q on non-struct, non-vector type %s", name, d)
	}
}

// swizzleIndex maps a component letter to its 0-based index; HLSL
// supports both the xyzw and rgba naming conventions.
func swizzleIndex(c byte) (int, bool) {
	switch c {
	case 'x', 'r':
		return 0, true
	case 'y', 'g':
		return 1, true
	case 'z', 'b':
		return 2, true
	case 'w', 'a':
		return 3, true
	default:
		return 0, false
	}
}

// getSwizzle resolves a vector swizzle suffix such as ".xyz" or ".rg".
// The result is a scalar for a single-component swizzle or a vector
// sized to the pattern length otherwise; a pattern longer than 4 or
// indexing past the source vector's component count is an error.
func getSwizzle(d Denoter, pattern string) (Denoter, error) {
	b, ok := resolveAlias(d).(Base)
	if !ok || b.IsMatrix() {
		return nil, fmt.Errorf("swizzle %q on non-vector type %s", pattern, d)
	}
	if len(pattern) == 0 || len(pattern) > 4 {
		return nil, fmt.Errorf("invalid swizzle pattern %q", pattern)
	}
	width := b.Cols
	for i := 0; i < len(pattern); i++ {
		idx, ok := swizzleIndex(pattern[i])
		if !ok {
			return nil, fmt.Errorf("invalid swizzle component %q in %q", pattern[i], pattern)
		}
		if idx >= width {
			return nil, fmt.Errorf("swizzle component %q out of range for %s", pattern[i], d)
		}
	}
	if len(pattern) == 1 {
		return Scalar(b.Kind), nil
	}
	return Vector(b.Kind, len(pattern)), nil
}
