// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/xsc/denoter"
)

// VariantKind tags Variant's active field.
type VariantKind uint8

const (
	VariantBool VariantKind = iota
	VariantInt
	VariantReal
	VariantString
)

// Variant is the tagged scalar a LiteralExpr's textual value re-parses
// through when converting between data types (spec.md §4.3:
// "LiteralExpr.ConvertDataType(T) re-parses value through a Variant").
type Variant struct {
	Kind VariantKind
	B    bool
	I    int64
	R    float64
	S    string
}

// ParseVariant parses raw HLSL literal text of the given component kind
// into a Variant.
func ParseVariant(kind denoter.Component, raw string) (Variant, error) {
	switch kind {
	case denoter.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Variant{}, fmt.Errorf("invalid bool literal %q: %w", raw, err)
		}
		return Variant{Kind: VariantBool, B: b}, nil
	case denoter.Int, denoter.UInt:
		text := strings.TrimSuffix(strings.TrimSuffix(raw, "u"), "U")
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return Variant{}, fmt.Errorf("invalid integer literal %q: %w", raw, err)
		}
		return Variant{Kind: VariantInt, I: n}, nil
	case denoter.Half, denoter.Float, denoter.Double:
		text := strings.TrimSuffix(strings.TrimSuffix(raw, "f"), "F")
		r, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Variant{}, fmt.Errorf("invalid floating-point literal %q: %w", raw, err)
		}
		return Variant{Kind: VariantReal, R: r}, nil
	case denoter.String:
		return Variant{Kind: VariantString, S: raw}, nil
	default:
		return Variant{}, fmt.Errorf("literal has no textual form for component kind %v", kind)
	}
}

// ConvertTo re-serializes v as HLSL source text for the target component
// kind, performing the underlying numeric/bool conversion in the
// process. Round-trips integers in range and is bit-exact for IEEE-754
// doubles (spec.md §4.3, §8 invariant 5), appending the `u` suffix when
// the target is UInt.
func (v Variant) ConvertTo(target denoter.Component) (string, error) {
	switch target {
	case denoter.Bool:
		return strconv.FormatBool(v.asBool()), nil
	case denoter.Int:
		return strconv.FormatInt(v.asInt(), 10), nil
	case denoter.UInt:
		n := v.asInt()
		if n < 0 {
			n = 0
		}
		return strconv.FormatUint(uint64(n), 10) + "u", nil
	case denoter.Half, denoter.Float:
		return formatFloat(v.asReal(), 32), nil
	case denoter.Double:
		return formatFloat(v.asReal(), 64), nil
	case denoter.String:
		return v.S, nil
	default:
		return "", fmt.Errorf("cannot convert literal to component kind %v", target)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (v Variant) asBool() bool {
	switch v.Kind {
	case VariantBool:
		return v.B
	case VariantInt:
		return v.I != 0
	case VariantReal:
		return v.R != 0
	default:
		return v.S != ""
	}
}

func (v Variant) asInt() int64 {
	switch v.Kind {
	case VariantBool:
		if v.B {
			return 1
		}
		return 0
	case VariantInt:
		return v.I
	case VariantReal:
		return int64(v.R)
	default:
		n, _ := strconv.ParseInt(v.S, 0, 64)
		return n
	}
}

func (v Variant) asReal() float64 {
	switch v.Kind {
	case VariantBool:
		if v.B {
			return 1
		}
		return 0
	case VariantInt:
		return float64(v.I)
	case VariantReal:
		return v.R
	default:
		r, _ := strconv.ParseFloat(v.S, 64)
		return r
	}
}
