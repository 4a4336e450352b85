// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ast defines the typed abstract syntax tree the semantic
// analyzer, symbol resolver, and GLSL emitter all operate on (spec.md
// §3). Nodes are created by an external HLSL parser (out of scope here,
// per spec.md §1) and mutated in place by the resolver and flattener.
//
// Every Expr and VarIdent is a "typed AST node": it carries a
// write-once-until-reset TypeDenoterSlot, populated the first time its
// DeriveTypeDenoter is driven through GetTypeDenoter. Following the
// teacher's ir package, node kinds are a tagged-variant sum type: one Go
// type per variant with a private marker method enforcing exhaustive
// type switches at every call site.
package ast

import "github.com/gogpu/xsc/denoter"

// Pos is a source location, attached to every node for diagnostics
// (spec.md §7: "all diagnostics carry a source location derived from the
// nearest AST node").
type Pos struct {
	Line   int
	Column int
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Pos
}

// base is embedded by every concrete node to provide Pos() and to keep
// source-location plumbing in one place.
type base struct {
	Loc Pos
}

func (b base) Pos() Pos { return b.Loc }

// TypeDenoterSlot is the memoized, write-once-until-reset cell backing
// every typed node's derived type. Design Notes §9: "Memoized lazy type
// denoter slot — express as a write-once cell; provide explicit
// invalidation that must cascade up when the AST is rewritten."
type TypeDenoterSlot struct {
	cached denoter.Denoter
}

// Buffered returns the memoized denoter, or nil if none has been
// derived yet (or the slot was reset).
func (s *TypeDenoterSlot) Buffered() denoter.Denoter { return s.cached }

// Reset invalidates the memoized denoter. Callers that rewrite a
// VarIdent chain must call Reset on every ancestor that transitively
// caches a derived type (spec.md §5).
func (s *TypeDenoterSlot) Reset() { s.cached = nil }

func (s *TypeDenoterSlot) fill(dt denoter.Denoter) { s.cached = dt }

// Typed is implemented by every typed AST node (Expr and VarIdent).
type Typed struct {
	TypeDenoterSlot
}

// Slot returns the node's memoized-type cell.
func (t *Typed) Slot() *TypeDenoterSlot { return &t.TypeDenoterSlot }

// BufferedTypeDenoter returns the node's memoized denoter without
// triggering derivation (nil if not yet derived).
func (t *Typed) BufferedTypeDenoter() denoter.Denoter { return t.Buffered() }

// ResetBufferedTypeDenoter invalidates the node's memoized denoter.
func (t *Typed) ResetBufferedTypeDenoter() { t.Reset() }

// Program is the root of the AST: the top-level list of statements
// (spec.md §3: "Program owns the top-level list of statements").
type Program struct {
	base
	GlobalStmnts []Stmnt
}

// Symbol is implemented by any declaration a VarIdent can resolve to:
// currently VarDecl and FunctionDecl.
type Symbol interface {
	Node
	SymbolName() string
}
