// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package denoter

import "fmt"

// Component is the scalar component kind underlying a Base denoter.
type Component uint8

const (
	// Void is only valid as a function return type (§3 invariant); any
	// other use is an error the analyzer must raise.
	Void Component = iota
	Bool
	Int
	UInt
	Half
	Float
	Double
	// String is HLSL's compile-time-only string literal type.
	String
)

func (c Component) String() string {
	switch c {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Half:
		return "half"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// isNumeric reports whether c participates in numeric widening/narrowing
// and int<->float conversions.
func (c Component) isNumeric() bool {
	switch c {
	case Int, UInt, Half, Float, Double:
		return true
	default:
		return false
	}
}

// Base is a scalar, vector, or matrix built from a single Component.
// Rows == 1 && Cols == 1 is a scalar; Rows == 1 && Cols > 1 is a vector
// of Cols components (HLSL's floatN); Rows > 1 is an RxC matrix
// (HLSL's floatRxC).
type Base struct {
	Kind Component
	Rows int
	Cols int
}

// Scalar constructs a scalar Base denoter.
func Scalar(kind Component) Base { return Base{Kind: kind, Rows: 1, Cols: 1} }

// Vector constructs an N-component vector Base denoter.
func Vector(kind Component, n int) Base { return Base{Kind: kind, Rows: 1, Cols: n} }

// Matrix constructs an RxC matrix Base denoter.
func Matrix(kind Component, rows, cols int) Base { return Base{Kind: kind, Rows: rows, Cols: cols} }

// IsScalar reports whether b denotes a scalar.
func (b Base) IsScalar() bool { return b.Rows == 1 && b.Cols == 1 }

// IsVector reports whether b denotes a vector (not a scalar or matrix).
func (b Base) IsVector() bool { return b.Rows == 1 && b.Cols > 1 }

// IsMatrix reports whether b denotes a matrix.
func (b Base) IsMatrix() bool { return b.Rows > 1 }

func (b Base) String() string {
	switch {
	case b.IsScalar():
		return b.Kind.String()
	case b.IsVector():
		return fmt.Sprintf("%s%d", b.Kind, b.Cols)
	default:
		return fmt.Sprintf("%s%dx%d", b.Kind, b.Rows, b.Cols)
	}
}

func (Base) denoterKind() {}

// Equals is structural: same component kind and same shape.
func (b Base) Equals(other Denoter) bool {
	o, ok := resolveAlias(other).(Base)
	if !ok {
		return false
	}
	return b.Kind == o.Kind && b.Rows == o.Rows && b.Cols == o.Cols
}

// IsCastableTo implements the Base→Base rules of §4.1:
//
//   - any two numeric kinds convert (width narrowing is allowed; it is a
//     warning the caller attaches to its own diagnostic context, not a
//     rejection here);
//   - bool<->numeric is allowed both ways;
//   - Void never converts to or from anything;
//   - shape (vector/matrix) must broadcast-compatible: scalar->anything,
//     size-N vector -> size-N vector, and size-N -> size-M only when
//     N == 1 or M == 1.
func (b Base) IsCastableTo(target Denoter) bool {
	o, ok := resolveAlias(target).(Base)
	if !ok {
		return false
	}
	if b.Kind == Void || o.Kind == Void {
		return b.Kind == o.Kind
	}
	if b.Kind != Bool && !b.Kind.isNumeric() {
		return false // String, or any future non-numeric non-bool kind
	}
	if o.Kind != Bool && !o.Kind.isNumeric() {
		return false
	}
	if b.IsScalar() {
		return true
	}
	if b.IsMatrix() != o.IsMatrix() {
		return false
	}
	if b.IsMatrix() {
		return b.Rows == o.Rows && b.Cols == o.Cols
	}
	// Scalar/vector shape broadcast: source or target width 1 always
	// works; otherwise widths must match.
	return b.Cols == o.Cols || b.Cols == 1 || o.Cols == 1
}

// AsArray wraps b in the given dimensions.
func (b Base) AsArray(dims []ArrayDim) Denoter {
	return newArray(b, dims)
}
