// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package intrinsic implements the static HLSL intrinsic dispatch table
// (spec.md §4.5): for each recognized intrinsic name it records arity
// bounds, a type-derivation rule consulted by the semantic analyzer, and
// an emission shape consulted by the GLSL emitter. The emission-shape
// switch below is grounded on the teacher's glsl/expressions.go
// writeMath, which performs the identical HLSL/WGSL-math-name to
// GLSL-builtin-name translation, one case per function.
package intrinsic

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/denoter"
)

// DeriveFunc computes an intrinsic call's result type from its already
// type-checked argument denoters.
type DeriveFunc func(args []denoter.Denoter) (denoter.Denoter, error)

// EmitFunc renders an intrinsic call given its already-emitted GLSL
// argument source text.
type EmitFunc func(args []string) string

// Spec is one intrinsic's dispatch-table entry.
type Spec struct {
	MinArgs int
	MaxArgs int
	Derive  DeriveFunc
	Emit    EmitFunc
}

// Lookup returns the Spec registered for name, if any.
func Lookup(name string) (Spec, bool) {
	s, ok := table[name]
	return s, ok
}

// CheckArity validates got against spec's [MinArgs, MaxArgs] bound,
// producing the exact diagnostic text spec.md §4.5 mandates.
func CheckArity(name string, spec Spec, got int) error {
	if got < spec.MinArgs || got > spec.MaxArgs {
		return errors.Errorf("intrinsic %s expects between %d and %d arguments, got %d", name, spec.MinArgs, spec.MaxArgs, got)
	}
	return nil
}

func firstArgType(args []denoter.Denoter) (denoter.Denoter, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("intrinsic called with no arguments")
	}
	return args[0], nil
}

func scalarOf(d denoter.Denoter) denoter.Component {
	if b, ok := d.(denoter.Base); ok {
		return b.Kind
	}
	return denoter.Float
}

func boolLike(d denoter.Denoter) denoter.Denoter {
	if b, ok := d.(denoter.Base); ok {
		return denoter.Vector(denoter.Bool, b.Cols)
	}
	return denoter.Scalar(denoter.Bool)
}

func unary(name string) Spec {
	return Spec{
		MinArgs: 1, MaxArgs: 1,
		Derive: firstArgType,
		Emit:   func(args []string) string { return fmt.Sprintf("%s(%s)", name, args[0]) },
	}
}

func nAry(name string, n int) Spec {
	return Spec{
		MinArgs: n, MaxArgs: n,
		Derive: firstArgType,
		Emit:   func(args []string) string { return fmt.Sprintf("%s(%s)", name, joinArgs(args)) },
	}
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += ", " + a
	}
	return out
}

// mulDerive implements §4.5's example rule: "mul(A,B) → element type of A
// if matrix×vector or scalar broadcast." HLSL's mul(a,b) computes a·b in
// row-vector convention; the result shape is B's column count with A's
// row count, but since our denoter.Base doesn't need a full linear-algebra
// model here, the rule is: matrix*vector => vector of the matrix's
// scalar kind sized to its row count; vector*matrix => vector of the
// matrix's scalar kind sized to its column count; matrix*matrix => A's
// kind with A's rows and B's columns; anything else => A's type.
func mulDerive(args []denoter.Denoter) (denoter.Denoter, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("mul expects exactly 2 arguments")
	}
	a, aok := args[0].(denoter.Base)
	b, bok := args[1].(denoter.Base)
	if !aok || !bok {
		return args[0], nil
	}
	switch {
	case a.IsMatrix() && b.IsVector():
		return denoter.Vector(a.Kind, a.Rows), nil
	case a.IsVector() && b.IsMatrix():
		return denoter.Vector(b.Kind, b.Cols), nil
	case a.IsMatrix() && b.IsMatrix():
		return denoter.Matrix(a.Kind, a.Rows, b.Cols), nil
	default:
		return a, nil
	}
}

var table = map[string]Spec{
	// Trigonometric
	"sin": unary("sin"), "cos": unary("cos"), "tan": unary("tan"),
	"asin": unary("asin"), "acos": unary("acos"), "atan": unary("atan"),
	"atan2":  nAry("atan", 2),
	"sinh":   unary("sinh"), "cosh": unary("cosh"), "tanh": unary("tanh"),
	"radians": unary("radians"), "degrees": unary("degrees"),

	// Exponential
	"exp": unary("exp"), "exp2": unary("exp2"),
	"log": unary("log"), "log2": unary("log2"),
	"log10": {
		MinArgs: 1, MaxArgs: 1, Derive: firstArgType,
		Emit: func(args []string) string { return fmt.Sprintf("(log2(%s) * 0.30102999566)", args[0]) },
	},
	"pow":         nAry("pow", 2),
	"sqrt":        unary("sqrt"),
	"rsqrt":       unary("inversesqrt"),

	// Common
	"abs": unary("abs"), "sign": unary("sign"),
	"floor": unary("floor"), "ceil": unary("ceil"), "trunc": unary("trunc"),
	"round": unary("round"), "frac": unary("fract"),
	"min": nAry("min", 2), "max": nAry("max", 2),
	"clamp": nAry("clamp", 3),
	"saturate": {
		MinArgs: 1, MaxArgs: 1, Derive: firstArgType,
		Emit: func(args []string) string { return fmt.Sprintf("clamp(%s, 0.0, 1.0)", args[0]) },
	},
	"lerp": nAry("mix", 3),
	"step": nAry("step", 2), "smoothstep": nAry("smoothstep", 3),
	"fmod": {
		MinArgs: 2, MaxArgs: 2,
		Derive: firstArgType,
		Emit:   func(args []string) string { return fmt.Sprintf("mod(%s, %s)", args[0], args[1]) },
	},
	"rcp": {
		MinArgs: 1, MaxArgs: 1, Derive: firstArgType,
		Emit: func(args []string) string { return fmt.Sprintf("(1.0 / %s)", args[0]) },
	},
	"mad": nAry("fma", 3),

	// Geometric
	"length": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func(args []denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(scalarOf(args[0])), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("length(%s)", args[0]) },
	},
	"distance": {
		MinArgs: 2, MaxArgs: 2,
		Derive: func(args []denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(scalarOf(args[0])), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("distance(%s, %s)", args[0], args[1]) },
	},
	"dot": {
		MinArgs: 2, MaxArgs: 2,
		Derive: func(args []denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(scalarOf(args[0])), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("dot(%s, %s)", args[0], args[1]) },
	},
	"cross":       nAry("cross", 2),
	"normalize":   unary("normalize"),
	"reflect":     nAry("reflect", 2),
	"refract":     nAry("refract", 3),
	"faceforward": nAry("faceforward", 3),

	// Matrix
	"transpose":   unary("transpose"),
	"determinant": unary("determinant"),
	"mul": {
		MinArgs: 2, MaxArgs: 2,
		Derive: mulDerive,
		// A pure textual rewrite preserving argument order as given: any
		// row-major/column-major layout correction happens upstream, via
		// the analyzer's RequiresTranspose decision and the transpose()
		// the emitter wraps around the operand, not here.
		Emit: func(args []string) string { return fmt.Sprintf("(%s * %s)", args[0], args[1]) },
	},

	// Relational
	"any": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Bool), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("any(%s)", args[0]) },
	},
	"all": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Bool), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("all(%s)", args[0]) },
	},
	"isnan": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func(args []denoter.Denoter) (denoter.Denoter, error) { return boolLike(args[0]), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("isnan(%s)", args[0]) },
	},
	"isinf": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func(args []denoter.Denoter) (denoter.Denoter, error) { return boolLike(args[0]), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("isinf(%s)", args[0]) },
	},

	// Derivatives
	"ddx": unary("dFdx"), "ddy": unary("dFdy"),
	"ddx_coarse": unary("dFdxCoarse"), "ddy_coarse": unary("dFdyCoarse"),
	"ddx_fine": unary("dFdxFine"), "ddy_fine": unary("dFdyFine"),
	"fwidth": unary("fwidth"),

	// Flow control
	// clip's Emit is never invoked: glslgen special-cases the call so it
	// can route through the synthesized xsc_clip helper instead (spec.md
	// §8 S5). Kept here so Lookup/CheckArity still validate its arity.
	"clip": {
		MinArgs: 1, MaxArgs: 1,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("if (any(lessThan(%s, vec4(0.0)))) discard", args[0]) },
	},

	// Atomics (require GLSL 4.30, tracked by version.Registry.SupportsAtomics)
	"InterlockedAdd": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicAdd(%s, %s)", args[0], args[1]) },
	},
	"InterlockedMin": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicMin(%s, %s)", args[0], args[1]) },
	},
	"InterlockedMax": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicMax(%s, %s)", args[0], args[1]) },
	},
	"InterlockedAnd": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicAnd(%s, %s)", args[0], args[1]) },
	},
	"InterlockedOr": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicOr(%s, %s)", args[0], args[1]) },
	},
	"InterlockedXor": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicXor(%s, %s)", args[0], args[1]) },
	},
	"InterlockedExchange": {
		MinArgs: 2, MaxArgs: 3,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func(args []string) string { return fmt.Sprintf("atomicExchange(%s, %s)", args[0], args[1]) },
	},

	// Barriers
	"GroupMemoryBarrierWithGroupSync": {
		MinArgs: 0, MaxArgs: 0,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func([]string) string { return "groupMemoryBarrier(); barrier()" },
	},
	"AllMemoryBarrierWithGroupSync": {
		MinArgs: 0, MaxArgs: 0,
		Derive: func([]denoter.Denoter) (denoter.Denoter, error) { return denoter.Scalar(denoter.Void), nil },
		Emit:   func([]string) string { return "memoryBarrier(); barrier()" },
	},
}
