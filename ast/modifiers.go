// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// TypeModifier is a bitmask of HLSL type modifiers attached to a
// VarDeclStmnt (spec.md §3: "a set of type modifiers (const, uniform,
// row/column major, precise, …)").
type TypeModifier uint16

const ModifierNone TypeModifier = 0

const (
	ModifierConst TypeModifier = 1 << iota
	ModifierRowMajor
	ModifierColumnMajor
	ModifierPrecise
	ModifierVolatile
	ModifierLinear
	ModifierCentroid
	ModifierNoInterpolation
	ModifierNoPerspective
	ModifierSample
)

// Has reports whether all bits of other are set in m.
func (m TypeModifier) Has(other TypeModifier) bool { return m&other == other }

// StorageClass is a bitmask of HLSL storage-class specifiers (spec.md
// §3: "storage classes (in, out, inout, uniform, static, shared,
// groupshared)").
type StorageClass uint16

const StorageNone StorageClass = 0

const (
	StorageIn StorageClass = 1 << iota
	StorageOut
	StorageInOut
	StorageUniform
	StorageStatic
	StorageShared
	StorageGroupShared
	StorageExtern
)

// Has reports whether all bits of other are set in s.
func (s StorageClass) Has(other StorageClass) bool { return s&other == other }
