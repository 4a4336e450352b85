// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"

	"github.com/gogpu/xsc/denoter"
)

// Expr is implemented by every expression node. Every Expr is a typed
// AST node: GetTypeDenoter is idempotent and memoized until
// ResetBufferedTypeDenoter is called (spec.md §8 invariant 1).
type Expr interface {
	Node
	Slot() *TypeDenoterSlot
	BufferedTypeDenoter() denoter.Denoter
	ResetBufferedTypeDenoter()
	DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error)
	GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error)
	exprNode()
}

// derivable is the minimal shape getTypeDenoter needs; every concrete
// Expr type satisfies it via the embedded Typed struct plus its own
// DeriveTypeDenoter method.
type derivable interface {
	Slot() *TypeDenoterSlot
	DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error)
}

// getTypeDenoter is the single memoization driver shared by every Expr
// variant's GetTypeDenoter method (spec.md §5: "lazy fields are
// write-once within a translation").
func getTypeDenoter(node derivable, ctx TypeContext) (denoter.Denoter, error) {
	slot := node.Slot()
	if dt := slot.Buffered(); dt != nil {
		return dt, nil
	}
	dt, err := node.DeriveTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	slot.fill(dt)
	return dt, nil
}

// NullExpr is HLSL's implicit "no expression" placeholder, e.g. an
// unsized array dimension. Its type is Int (spec.md §4.3: "dynamic array
// dims are integral").
type NullExpr struct {
	base
	Typed
}

func (*NullExpr) exprNode() {}
func (n *NullExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) { return ctx.IntType(), nil }
func (n *NullExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error)    { return getTypeDenoter(n, ctx) }

// ListExpr is the comma operator: `a, b, c`.
type ListExpr struct {
	base
	Typed
	Exprs []Expr
}

func (*ListExpr) exprNode() {}
func (l *ListExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	if len(l.Exprs) == 0 {
		return nil, fmt.Errorf("empty comma expression")
	}
	return l.Exprs[0].GetTypeDenoter(ctx)
}
func (l *ListExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) { return getTypeDenoter(l, ctx) }

// LiteralExpr is a literal constant: bool, int, uint, half, float,
// double, or string (spec.md §3).
type LiteralExpr struct {
	base
	Typed
	DataType denoter.Component
	Value    string // source text, e.g. "1.5f", "3u", "true"
}

func (*LiteralExpr) exprNode() {}
func (l *LiteralExpr) DeriveTypeDenoter(TypeContext) (denoter.Denoter, error) {
	return denoter.Scalar(l.DataType), nil
}
func (l *LiteralExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(l, ctx)
}

// ConvertDataType re-parses Value through a Variant and re-serializes it
// for target, mutating DataType and Value in place and resetting the
// memoized denoter (spec.md §4.3, §8 invariant 5).
func (l *LiteralExpr) ConvertDataType(target denoter.Component) error {
	v, err := ParseVariant(l.DataType, l.Value)
	if err != nil {
		return err
	}
	text, err := v.ConvertTo(target)
	if err != nil {
		return err
	}
	l.DataType = target
	l.Value = text
	l.ResetBufferedTypeDenoter()
	return nil
}

// TypeNameExpr names a type directly, e.g. the `float4` in a
// constructor-style call parsed as a bare type reference, or the target
// of a functional cast. Its type denoter is exactly the stated type
// (spec.md §4.3).
type TypeNameExpr struct {
	base
	Typed
	Type denoter.Denoter
}

func (*TypeNameExpr) exprNode() {}
func (t *TypeNameExpr) DeriveTypeDenoter(TypeContext) (denoter.Denoter, error) { return t.Type, nil }
func (t *TypeNameExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(t, ctx)
}

// TernaryExpr is `cond ? then : else_`.
type TernaryExpr struct {
	base
	Typed
	Cond, Then, Else Expr
}

func (*TernaryExpr) exprNode() {}
func (e *TernaryExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	condType, err := e.Cond.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Cast(condType, ctx.BoolType(), e.Cond.Pos(), "ternary condition"); err != nil {
		return nil, err
	}
	thenType, err := e.Then.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	elseType, err := e.Else.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Cast(elseType, thenType, e.Pos(), "ternary expression"); err != nil {
		return nil, err
	}
	return thenType, nil
}
func (e *TernaryExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// BinaryOp enumerates HLSL's binary operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
)

// IsLogicalOrComparison reports whether op yields Bool (spec.md §4.3:
// "Bool if op ∈ {logical/comparison}").
func (op BinaryOp) IsLogicalOrComparison() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpLogicalAnd, OpLogicalOr:
		return true
	default:
		return false
	}
}

// IsAssignment reports whether op is a compound or plain assignment.
func (op BinaryOp) IsAssignment() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign:
		return true
	default:
		return false
	}
}

// BinaryExpr is a binary operator expression.
type BinaryExpr struct {
	base
	Typed
	Op       BinaryOp
	Lhs, Rhs Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	lhs, err := e.Lhs.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Rhs.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	if !ctx.MutuallyCastable(lhs, rhs) {
		return nil, fmt.Errorf("can not cast %q to %q in binary expression %q", lhs, rhs, binaryOpText(e.Op))
	}
	if e.Op.IsLogicalOrComparison() {
		return ctx.BoolType(), nil
	}
	return lhs, nil
}
func (e *BinaryExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

func binaryOpText(op BinaryOp) string {
	names := map[BinaryOp]string{
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
		OpEqual: "==", OpNotEqual: "!=", OpLess: "<", OpLessEqual: "<=",
		OpGreater: ">", OpGreaterEqual: ">=", OpLogicalAnd: "&&", OpLogicalOr: "||",
		OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShiftLeft: "<<", OpShiftRight: ">>",
		OpAssign: "=", OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=", OpDivAssign: "/=",
	}
	if s, ok := names[op]; ok {
		return s
	}
	return "?"
}

// UnaryOp enumerates HLSL's prefix unary operators.
type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
	OpLogicalNot
	OpBitNot
	OpPreIncrement
	OpPreDecrement
)

// UnaryExpr is a prefix unary expression.
type UnaryExpr struct {
	base
	Typed
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}
func (e *UnaryExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	operandType, err := e.Operand.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	if e.Op == OpLogicalNot {
		return ctx.BoolType(), nil
	}
	return operandType, nil
}
func (e *UnaryExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// PostUnaryOp enumerates HLSL's postfix unary operators.
type PostUnaryOp uint8

const (
	OpPostIncrement PostUnaryOp = iota
	OpPostDecrement
)

// PostUnaryExpr is a postfix `x++`/`x--` expression: its type is the
// operand type (spec.md §4.3).
type PostUnaryExpr struct {
	base
	Typed
	Op      PostUnaryOp
	Operand Expr
}

func (*PostUnaryExpr) exprNode() {}
func (e *PostUnaryExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return e.Operand.GetTypeDenoter(ctx)
}
func (e *PostUnaryExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// FunctionCallExpr is a call `name(args...)`, possibly qualified by a
// preceding VarIdent (e.g. a method-style call on a buffer object).
// DeclRef is populated by the resolver once overload resolution (spec.md
// §4.4) or intrinsic lookup (§4.5) succeeds.
type FunctionCallExpr struct {
	base
	Typed
	Name     string
	Ident    *VarIdent // non-nil for `obj.Method(...)`; nil for a bare call
	Args     []Expr
	DeclRef  *FunctionDecl // non-owning; nil if this resolved to an intrinsic or constructor
	IsCtor   bool          // true if this is a type-constructor call, e.g. float4(...)
	CtorType denoter.Denoter
}

func (*FunctionCallExpr) exprNode() {}
func (e *FunctionCallExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return ctx.ResolveCall(e)
}
func (e *FunctionCallExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// BracketExpr is a parenthesized sub-expression: `(inner)`.
type BracketExpr struct {
	base
	Typed
	Inner Expr
}

func (*BracketExpr) exprNode() {}
func (e *BracketExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return e.Inner.GetTypeDenoter(ctx)
}
func (e *BracketExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// SuffixExpr appends a member/swizzle chain to an arbitrary expression,
// e.g. `GetColor().rgb` (spec.md §4.7's WriteSuffixVarIdentBegin/End
// applies to this node).
type SuffixExpr struct {
	base
	Typed
	Inner  Expr
	Suffix *VarIdent
}

func (*SuffixExpr) exprNode() {}
func (e *SuffixExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	innerType, err := e.Inner.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	return Get(innerType, e.Suffix)
}
func (e *SuffixExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// ArrayAccessExpr is `inner[i0][i1]...`.
type ArrayAccessExpr struct {
	base
	Typed
	Inner   Expr
	Indices []Expr
}

func (*ArrayAccessExpr) exprNode() {}
func (e *ArrayAccessExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	innerType, err := e.Inner.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	arr, ok := innerType.(denoter.Array)
	if !ok {
		return nil, fmt.Errorf("array access on non-array type %q", innerType)
	}
	return arr.GetFromArray(len(e.Indices), "")
}
func (e *ArrayAccessExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// CastExpr is a C-style functional cast `(T)value`.
type CastExpr struct {
	base
	Typed
	TargetType denoter.Denoter
	Value      Expr
}

func (*CastExpr) exprNode() {}
func (e *CastExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	valueType, err := e.Value.GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	return ctx.Cast(valueType, e.TargetType, e.Pos(), "cast expression")
}
func (e *CastExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// VarAccessExpr wraps a VarIdent used as an expression (spec.md §4.3:
// "varIdent.GetTypeDenoter()").
type VarAccessExpr struct {
	base
	Typed
	Ident *VarIdent
	Assign *BinaryExpr // non-nil if this access is the LHS of an assignment; used by glslgen, not by type derivation
}

func (*VarAccessExpr) exprNode() {}
func (e *VarAccessExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return e.Ident.GetTypeDenoter(ctx)
}
func (e *VarAccessExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// InitializerExpr is a brace initializer list `{ e0, e1, ... }`.
type InitializerExpr struct {
	base
	Typed
	Elements []Expr
}

func (*InitializerExpr) exprNode() {}

// DeriveTypeDenoter implements §4.3: "Array(firstElementType, [null]);
// element types must be mutually castable."
func (e *InitializerExpr) DeriveTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	if len(e.Elements) == 0 {
		return nil, fmt.Errorf("empty initializer expression")
	}
	first, err := e.Elements[0].GetTypeDenoter(ctx)
	if err != nil {
		return nil, err
	}
	for _, el := range e.Elements[1:] {
		t, err := el.GetTypeDenoter(ctx)
		if err != nil {
			return nil, err
		}
		if !ctx.MutuallyCastable(first, t) {
			return nil, fmt.Errorf("can not cast %q to %q in initializer expression", t, first)
		}
	}
	return first.AsArray([]denoter.ArrayDim{denoter.UnsizedDim()}), nil
}
func (e *InitializerExpr) GetTypeDenoter(ctx TypeContext) (denoter.Denoter, error) {
	return getTypeDenoter(e, ctx)
}

// NumElements returns the total flattened element count, recursively
// counting nested InitializerExprs (spec.md §4.3: "total flattened
// arity = NumElements() computed recursively").
func (e *InitializerExpr) NumElements() int {
	n := 0
	for _, el := range e.Elements {
		if nested, ok := el.(*InitializerExpr); ok {
			n += nested.NumElements()
			continue
		}
		n++
	}
	return n
}

// Get resolves a single VarIdent chain (member/array/swizzle segments)
// against a denoter, translating the ast-level chain into
// denoter.Selectors. This is the seam DESIGN.md's denoter grounding
// entry describes: ast owns VarIdent, denoter owns Get/Selector, and
// this function is where the two meet.
func Get(d denoter.Denoter, v *VarIdent) (denoter.Denoter, error) {
	cur := d
	for seg := v; seg != nil; seg = seg.Next {
		if seg.Ident != "" {
			var err error
			cur, err = denoter.Get(cur, []denoter.Selector{memberOrSwizzleSelector(cur, seg.Ident)})
			if err != nil {
				return nil, err
			}
		}
		if len(seg.ArrayIndices) > 0 {
			var err error
			cur, err = denoter.Get(cur, []denoter.Selector{{Kind: denoter.SelIndex, Indices: len(seg.ArrayIndices)}})
			if err != nil {
				return nil, err
			}
		}
	}
	return cur, nil
}

func memberOrSwizzleSelector(cur denoter.Denoter, ident string) denoter.Selector {
	if _, ok := cur.(denoter.Base); ok {
		return denoter.Selector{Kind: denoter.SelSwizzle, Name: ident}
	}
	return denoter.Selector{Kind: denoter.SelMember, Name: ident}
}
