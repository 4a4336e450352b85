// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/diag"
)

// TypeCheckProgram walks every statement in prog once ResolveProgram has
// wired identifiers, deriving each top-level expression's type denoter
// through the expression's own GetTypeDenoter(a). A single call is enough to validate an
// entire expression subtree: every DeriveTypeDenoter implementation
// already calls GetTypeDenoter on its own children (BinaryExpr on
// Lhs/Rhs, CastExpr on Value, FunctionCallExpr's ResolveCall on each
// arg, and so on), so this walk only needs to find each statement's
// root expression, not re-descend into it. This is where an illegal
// cast (spec.md §7's TypeMismatch, e.g. §8 S6's `(int3)struct_instance`)
// or a malformed initializer/overload call surfaces as a diagnosable
// error instead of reaching the emitter unchecked, mirroring the
// structure of resolve.go's own statement walk.
func TypeCheckProgram(prog *ast.Program, a *Analyzer) error {
	for _, stmnt := range prog.GlobalStmnts {
		if err := typeCheckGlobalStmnt(stmnt, a); err != nil {
			return err
		}
	}
	return nil
}

func typeCheckGlobalStmnt(stmnt ast.Stmnt, a *Analyzer) error {
	switch n := stmnt.(type) {
	case *ast.StructDecl:
		for _, m := range n.Members {
			if err := typeCheckVarDeclStmnt(m, a); err != nil {
				return errors.Wrapf(err, "struct %s", n.Name)
			}
		}
		return nil
	case *ast.AliasDecl:
		return nil
	case *ast.UniformBufferDecl:
		for _, m := range n.Members {
			if err := typeCheckVarDeclStmnt(m, a); err != nil {
				return errors.Wrapf(err, "uniform buffer %s", n.Name)
			}
		}
		return nil
	case *ast.VarDeclStmnt:
		return typeCheckVarDeclStmnt(n, a)
	case *ast.FunctionDecl:
		return typeCheckFunctionDecl(n, a)
	default:
		err := errors.Errorf("untypecheckable top-level statement %T", stmnt)
		return diag.WithPos(diag.KindInternal, stmnt.Pos(), err)
	}
}

func typeCheckVarDeclStmnt(s *ast.VarDeclStmnt, a *Analyzer) error {
	for _, decl := range s.Decls {
		for _, dim := range decl.ArrayDims {
			if dim == nil {
				continue
			}
			if _, err := dim.GetTypeDenoter(a); err != nil {
				return errors.Wrapf(err, "%s array dimension", decl.Name)
			}
		}
		if decl.Initializer != nil {
			if _, err := decl.Initializer.GetTypeDenoter(a); err != nil {
				return errors.Wrapf(err, "%s initializer", decl.Name)
			}
		}
	}
	return nil
}

func typeCheckFunctionDecl(f *ast.FunctionDecl, a *Analyzer) error {
	if f.Body == nil {
		return nil
	}
	return typeCheckStmnt(f.Body, a)
}

func typeCheckStmnt(stmnt ast.Stmnt, a *Analyzer) error {
	switch n := stmnt.(type) {
	case nil:
		return nil
	case *ast.CodeBlockStmnt:
		for _, s := range n.Stmnts {
			if err := typeCheckStmnt(s, a); err != nil {
				return err
			}
		}
		return nil
	case *ast.VarDeclStmnt:
		return typeCheckVarDeclStmnt(n, a)
	case *ast.ForStmnt:
		if err := typeCheckStmnt(n.Init, a); err != nil {
			return err
		}
		if n.Cond != nil {
			if _, err := n.Cond.GetTypeDenoter(a); err != nil {
				return err
			}
		}
		if err := typeCheckStmnt(n.Iter, a); err != nil {
			return err
		}
		return typeCheckStmnt(n.Body, a)
	case *ast.WhileStmnt:
		if _, err := n.Cond.GetTypeDenoter(a); err != nil {
			return err
		}
		return typeCheckStmnt(n.Body, a)
	case *ast.DoWhileStmnt:
		if err := typeCheckStmnt(n.Body, a); err != nil {
			return err
		}
		_, err := n.Cond.GetTypeDenoter(a)
		return err
	case *ast.IfStmnt:
		if _, err := n.Cond.GetTypeDenoter(a); err != nil {
			return err
		}
		if err := typeCheckStmnt(n.Then, a); err != nil {
			return err
		}
		return typeCheckStmnt(n.Else, a)
	case *ast.SwitchStmnt:
		if _, err := n.Selector.GetTypeDenoter(a); err != nil {
			return err
		}
		for _, c := range n.Cases {
			if c.CaseExpr != nil {
				if _, err := c.CaseExpr.GetTypeDenoter(a); err != nil {
					return err
				}
			}
			for _, s := range c.Stmnts {
				if err := typeCheckStmnt(s, a); err != nil {
					return err
				}
			}
		}
		return nil
	case *ast.ExprStmnt:
		_, err := n.Expr.GetTypeDenoter(a)
		return err
	case *ast.ReturnStmnt:
		if n.Value == nil {
			return nil
		}
		_, err := n.Value.GetTypeDenoter(a)
		return err
	case *ast.CtrlTransferStmnt, *ast.NullStmnt:
		return nil
	default:
		err := errors.Errorf("untypecheckable statement %T", stmnt)
		return diag.WithPos(diag.KindInternal, stmnt.Pos(), err)
	}
}
