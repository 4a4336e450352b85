// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/intrinsic"
	"github.com/gogpu/xsc/version"
)

// writeExpr renders e as a single GLSL expression fragment, mirroring
// the teacher's writeExpr's type-switch shape but over this domain's
// Expr variants. It never emits a trailing semicolon or newline; callers
// embed the returned text in the surrounding statement.
func (w *Writer) writeExpr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.NullExpr:
		return "", nil
	case *ast.ListExpr:
		return w.writeListExpr(n)
	case *ast.LiteralExpr:
		return w.writeLiteralExpr(n)
	case *ast.TypeNameExpr:
		return w.baseTypeName(n.Type), nil
	case *ast.TernaryExpr:
		return w.writeTernaryExpr(n)
	case *ast.BinaryExpr:
		return w.writeBinaryExpr(n)
	case *ast.UnaryExpr:
		return w.writeUnaryExpr(n)
	case *ast.PostUnaryExpr:
		return w.writePostUnaryExpr(n)
	case *ast.FunctionCallExpr:
		return w.writeFunctionCallExpr(n)
	case *ast.BracketExpr:
		inner, err := w.writeExpr(n.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.SuffixExpr:
		return w.writeSuffixExpr(n)
	case *ast.ArrayAccessExpr:
		return w.writeArrayAccessExpr(n)
	case *ast.CastExpr:
		return w.writeCastExpr(n)
	case *ast.VarAccessExpr:
		return w.writeVarAccessExpr(n)
	case *ast.InitializerExpr:
		return w.writeInitializerExpr(n)
	default:
		return "", errors.Errorf("unsupported expression %T", e)
	}
}

func (w *Writer) writeListExpr(n *ast.ListExpr) (string, error) {
	parts := make([]string, len(n.Exprs))
	for i, sub := range n.Exprs {
		s, err := w.writeExpr(sub)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func (w *Writer) writeLiteralExpr(n *ast.LiteralExpr) (string, error) {
	switch n.DataType {
	case denoter.Bool, denoter.Int, denoter.Double:
		return n.Value, nil
	case denoter.UInt:
		return strings.TrimSuffix(strings.TrimSuffix(n.Value, "U"), "u") + "u", nil
	case denoter.Half, denoter.Float:
		v := strings.TrimSuffix(strings.TrimSuffix(n.Value, "f"), "F")
		if !strings.ContainsAny(v, ".eE") {
			v += ".0"
		}
		return v, nil
	default:
		return n.Value, nil
	}
}

func (w *Writer) writeTernaryExpr(n *ast.TernaryExpr) (string, error) {
	cond, err := w.writeExpr(n.Cond)
	if err != nil {
		return "", err
	}
	then, err := w.writeExpr(n.Then)
	if err != nil {
		return "", err
	}
	els, err := w.writeExpr(n.Else)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s ? %s : %s)", cond, then, els), nil
}

func (w *Writer) writeBinaryExpr(n *ast.BinaryExpr) (string, error) {
	lhs, err := w.writeExpr(n.Lhs)
	if err != nil {
		return "", err
	}
	rhs, err := w.writeExpr(n.Rhs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", lhs, binaryOpSymbol(n.Op), rhs), nil
}

func binaryOpSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpEqual:
		return "=="
	case ast.OpNotEqual:
		return "!="
	case ast.OpLess:
		return "<"
	case ast.OpLessEqual:
		return "<="
	case ast.OpGreater:
		return ">"
	case ast.OpGreaterEqual:
		return ">="
	case ast.OpLogicalAnd:
		return "&&"
	case ast.OpLogicalOr:
		return "||"
	case ast.OpBitAnd:
		return "&"
	case ast.OpBitOr:
		return "|"
	case ast.OpBitXor:
		return "^"
	case ast.OpShiftLeft:
		return "<<"
	case ast.OpShiftRight:
		return ">>"
	case ast.OpAssign:
		return "="
	case ast.OpAddAssign:
		return "+="
	case ast.OpSubAssign:
		return "-="
	case ast.OpMulAssign:
		return "*="
	case ast.OpDivAssign:
		return "/="
	default:
		return "?"
	}
}

func (w *Writer) writeUnaryExpr(n *ast.UnaryExpr) (string, error) {
	operand, err := w.writeExpr(n.Operand)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ast.OpNegate:
		return "-" + operand, nil
	case ast.OpLogicalNot:
		return "!" + operand, nil
	case ast.OpBitNot:
		return "~" + operand, nil
	case ast.OpPreIncrement:
		return "++" + operand, nil
	case ast.OpPreDecrement:
		return "--" + operand, nil
	default:
		return "", errors.Errorf("unsupported unary operator %v", n.Op)
	}
}

func (w *Writer) writePostUnaryExpr(n *ast.PostUnaryExpr) (string, error) {
	operand, err := w.writeExpr(n.Operand)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case ast.OpPostIncrement:
		return operand + "++", nil
	case ast.OpPostDecrement:
		return operand + "--", nil
	default:
		return "", errors.Errorf("unsupported postfix operator %v", n.Op)
	}
}

func (w *Writer) writeFunctionCallExpr(n *ast.FunctionCallExpr) (string, error) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		s, err := w.writeExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	if n.IsCtor {
		return fmt.Sprintf("%s(%s)", w.baseTypeName(n.CtorType), strings.Join(args, ", ")), nil
	}

	if n.DeclRef != nil {
		name := w.mangledName(n.DeclRef, n.DeclRef.Name)
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), nil
	}

	spec, ok := intrinsic.Lookup(n.Name)
	if !ok {
		err := errors.Errorf("call to unresolved function %q", n.Name)
		return "", diag.WithPos(diag.KindUndefinedSymbol, n.Pos(), err)
	}
	if err := intrinsic.CheckArity(n.Name, spec, len(n.Args)); err != nil {
		return "", diag.WithPos(diag.KindIntrinsicMisuse, n.Pos(), err)
	}
	if n.Name == "clip" {
		w.needsClipHelper = true
		return fmt.Sprintf("%s(%s)", w.clipHelperName(), args[0]), nil
	}
	if isAtomicIntrinsic(n.Name) {
		if err := w.raiseAtomicsVersion(n.Pos()); err != nil {
			return "", err
		}
		if len(args) == 3 {
			// spec.md §4.7: the 3-arg form's trailing out-parameter
			// receives the atomic op's original value; Spec.Emit only
			// ever formats dest/val, so the assignment into orig is
			// wrapped around it here, where the caller's arg list (and
			// so the assignment target) is visible.
			return fmt.Sprintf("%s = %s", args[2], spec.Emit(args[:2])), nil
		}
	}
	return spec.Emit(args), nil
}

func isAtomicIntrinsic(name string) bool {
	return strings.HasPrefix(name, "Interlocked")
}

// raiseAtomicsVersion enforces version.Registry.SupportsAtomics at the use
// site of an Interlocked* intrinsic: an Auto target raises to the minimum
// version with atomics, a fixed target lacking atomics is an
// UnsupportedFeature diagnostic instead of silently emitting an
// unavailable builtin.
func (w *Writer) raiseAtomicsVersion(pos ast.Pos) error {
	if w.options.Target.IsAuto() {
		w.raiseVersion(version.ShaderVersion{Major: 4, Minor: 30})
		return nil
	}
	if w.analyzer.Registry.SupportsAtomics(w.requiredVersion) {
		return nil
	}
	err := errors.Errorf("atomic memory intrinsics are not supported by %s", w.requiredVersion)
	return diag.WithPos(diag.KindUnsupportedFeature, pos, err)
}

func (w *Writer) writeSuffixExpr(n *ast.SuffixExpr) (string, error) {
	inner, err := w.writeExpr(n.Inner)
	if err != nil {
		return "", err
	}
	return inner + "." + n.Suffix.ToString(), nil
}

func (w *Writer) writeArrayAccessExpr(n *ast.ArrayAccessExpr) (string, error) {
	inner, err := w.writeExpr(n.Inner)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(inner)
	for _, idx := range n.Indices {
		s, err := w.writeExpr(idx)
		if err != nil {
			return "", err
		}
		sb.WriteString("[")
		sb.WriteString(s)
		sb.WriteString("]")
	}
	return sb.String(), nil
}

func (w *Writer) writeCastExpr(n *ast.CastExpr) (string, error) {
	value, err := w.writeExpr(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", w.baseTypeName(n.TargetType), value), nil
}

func (w *Writer) writeVarAccessExpr(n *ast.VarAccessExpr) (string, error) {
	text, err := w.writeVarIdent(n.Ident)
	if err != nil {
		return "", err
	}
	if n.Assign != nil {
		rhs, err := w.writeExpr(n.Assign.Rhs)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", text, binaryOpSymbol(n.Assign.Op), rhs), nil
	}
	return text, nil
}

// writeVarIdent renders a VarIdent chain, applying the flattened-name
// substitution and matrix-transpose wrapping decided in sema (§4.6, §13).
func (w *Writer) writeVarIdent(v *ast.VarIdent) (string, error) {
	var sb strings.Builder
	if decl, ok := v.SymbolRef.(*ast.VarDecl); ok {
		name := w.mangledName(decl, v.Ident)
		if w.needsTranspose(decl) {
			sb.WriteString("transpose(")
			sb.WriteString(name)
			for seg := v.Next; seg != nil; seg = seg.Next {
				w.writeVarIdentSegment(&sb, seg)
			}
			sb.WriteString(")")
			return sb.String(), nil
		}
		sb.WriteString(name)
	} else if fn, ok := v.SymbolRef.(*ast.FunctionDecl); ok {
		sb.WriteString(w.mangledName(fn, v.Ident))
	} else {
		sb.WriteString(escapeKeyword(v.Ident))
	}
	for seg := v.Next; seg != nil; seg = seg.Next {
		w.writeVarIdentSegment(&sb, seg)
	}
	return sb.String(), nil
}

func (w *Writer) writeVarIdentSegment(sb *strings.Builder, seg *ast.VarIdent) {
	sb.WriteString(".")
	sb.WriteString(escapeKeyword(seg.Ident))
	for range seg.ArrayIndices {
		// index expressions themselves are written by ArrayAccessExpr;
		// a bare VarIdent chain segment only carries their count here.
	}
}

// needsTranspose reports whether decl is an explicitly row_major matrix
// variable, which GLSL's always-column-major matrices require
// transposing on every read (§13's Open Question decision; HLSL's own
// default packing is column_major, which already matches GLSL and needs
// no transpose).
func (w *Writer) needsTranspose(decl *ast.VarDecl) bool {
	t := decl.BufferedTypeDenoter()
	b, ok := t.(denoter.Base)
	if !ok || !b.IsMatrix() {
		return false
	}
	if decl.DeclStmntRef == nil {
		return false
	}
	return decl.DeclStmntRef.RequiresTranspose
}

func (w *Writer) writeInitializerExpr(n *ast.InitializerExpr) (string, error) {
	t, err := n.GetTypeDenoter(w.analyzer)
	if err != nil {
		return "", err
	}
	base := w.baseTypeName(t)
	elems := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		s, err := w.writeExpr(el)
		if err != nil {
			return "", err
		}
		elems[i] = s
	}
	return fmt.Sprintf("%s[](%s)", base, strings.Join(elems, ", ")), nil
}
