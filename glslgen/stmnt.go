// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
)

// writeStmnt dispatches one statement node, mirroring the teacher's
// writeStmnt switch shape but over this domain's Stmnt variants.
func (w *Writer) writeStmnt(s ast.Stmnt) error {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ast.CodeBlockStmnt:
		return w.writeCodeBlock(n)
	case *ast.VarDeclStmnt:
		return w.writeLocalVarDeclStmnt(n)
	case *ast.ForStmnt:
		return w.writeForStmnt(n)
	case *ast.WhileStmnt:
		return w.writeWhileStmnt(n)
	case *ast.DoWhileStmnt:
		return w.writeDoWhileStmnt(n)
	case *ast.IfStmnt:
		return w.writeIfStmnt(n)
	case *ast.SwitchStmnt:
		return w.writeSwitchStmnt(n)
	case *ast.ExprStmnt:
		return w.writeExprStmnt(n)
	case *ast.ReturnStmnt:
		return w.writeReturnStmnt(n)
	case *ast.CtrlTransferStmnt:
		return w.writeCtrlTransferStmnt(n)
	case *ast.NullStmnt:
		return nil
	default:
		return errors.Errorf("unsupported statement %T", s)
	}
}

func (w *Writer) writeCodeBlock(b *ast.CodeBlockStmnt) error {
	for _, s := range b.Stmnts {
		w.writeLineMark(s.Pos())
		if err := w.writeStmnt(s); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeLocalVarDeclStmnt(s *ast.VarDeclStmnt) error {
	for _, decl := range s.Decls {
		t, err := decl.GetTypeDenoter(w.analyzer)
		if err != nil {
			return errors.Wrapf(err, "local variable %s", decl.Name)
		}
		base, suffix, err := w.declTypeFor(t, decl.Pos())
		if err != nil {
			return err
		}
		name := w.mangledName(decl, decl.Name)
		if decl.Initializer != nil {
			value, err := w.writeExpr(decl.Initializer)
			if err != nil {
				return err
			}
			w.writeLine("%s %s%s = %s;", base, name, suffix, value)
		} else {
			w.writeLine("%s %s%s;", base, name, suffix)
		}
	}
	return nil
}

func (w *Writer) writeForStmnt(f *ast.ForStmnt) error {
	init, err := w.stmntAsExprText(f.Init)
	if err != nil {
		return err
	}
	cond := ""
	if f.Cond != nil {
		cond, err = w.writeExpr(f.Cond)
		if err != nil {
			return err
		}
	}
	iter, err := w.stmntAsExprText(f.Iter)
	if err != nil {
		return err
	}
	w.writeLine("for (%s; %s; %s) {", init, cond, iter)
	w.pushIndent()
	if err := w.writeStmnt(f.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

// stmntAsExprText renders a ForStmnt's Init/Iter clause, which the
// grammar allows to be either an expression statement or a variable
// declaration, as bare inline text without a trailing semicolon or
// indentation.
func (w *Writer) stmntAsExprText(s ast.Stmnt) (string, error) {
	switch n := s.(type) {
	case nil:
		return "", nil
	case *ast.ExprStmnt:
		return w.writeExpr(n.Expr)
	case *ast.VarDeclStmnt:
		if len(n.Decls) != 1 {
			return "", errors.New("for-loop init/iter clause must declare exactly one variable")
		}
		decl := n.Decls[0]
		t, err := decl.GetTypeDenoter(w.analyzer)
		if err != nil {
			return "", err
		}
		base, suffix, err := w.declTypeFor(t, decl.Pos())
		if err != nil {
			return "", err
		}
		name := w.mangledName(decl, decl.Name)
		if decl.Initializer == nil {
			return base + " " + name + suffix, nil
		}
		value, err := w.writeExpr(decl.Initializer)
		if err != nil {
			return "", err
		}
		return base + " " + name + suffix + " = " + value, nil
	default:
		return "", errors.Errorf("unsupported for-loop clause %T", s)
	}
}

func (w *Writer) writeWhileStmnt(n *ast.WhileStmnt) error {
	cond, err := w.writeExpr(n.Cond)
	if err != nil {
		return err
	}
	w.writeLine("while (%s) {", cond)
	w.pushIndent()
	if err := w.writeStmnt(n.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func (w *Writer) writeDoWhileStmnt(n *ast.DoWhileStmnt) error {
	w.writeLine("do {")
	w.pushIndent()
	if err := w.writeStmnt(n.Body); err != nil {
		return err
	}
	w.popIndent()
	cond, err := w.writeExpr(n.Cond)
	if err != nil {
		return err
	}
	w.writeLine("} while (%s);", cond)
	return nil
}

func (w *Writer) writeIfStmnt(n *ast.IfStmnt) error {
	cond, err := w.writeExpr(n.Cond)
	if err != nil {
		return err
	}
	w.writeLine("if (%s) {", cond)
	w.pushIndent()
	if err := w.writeStmnt(n.Then); err != nil {
		return err
	}
	w.popIndent()
	if n.Else != nil {
		w.writeLine("} else {")
		w.pushIndent()
		if err := w.writeStmnt(n.Else); err != nil {
			return err
		}
		w.popIndent()
	}
	w.writeLine("}")
	return nil
}

func (w *Writer) writeSwitchStmnt(n *ast.SwitchStmnt) error {
	sel, err := w.writeExpr(n.Selector)
	if err != nil {
		return err
	}
	w.writeLine("switch (%s) {", sel)
	w.pushIndent()
	for _, c := range n.Cases {
		if c.CaseExpr == nil {
			w.writeLine("default:")
		} else {
			caseVal, err := w.writeExpr(c.CaseExpr)
			if err != nil {
				return err
			}
			w.writeLine("case %s:", caseVal)
		}
		w.pushIndent()
		for _, s := range c.Stmnts {
			if err := w.writeStmnt(s); err != nil {
				return err
			}
		}
		w.popIndent()
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func (w *Writer) writeExprStmnt(n *ast.ExprStmnt) error {
	value, err := w.writeExpr(n.Expr)
	if err != nil {
		return err
	}
	w.writeLine("%s;", value)
	return nil
}

func (w *Writer) writeReturnStmnt(n *ast.ReturnStmnt) error {
	if w.entryReturn != nil {
		return w.writeEntryReturnStmnt(n)
	}
	if n.Value == nil {
		w.writeLine("return;")
		return nil
	}
	value, err := w.writeExpr(n.Value)
	if err != nil {
		return err
	}
	w.writeLine("return %s;", value)
	return nil
}

func (w *Writer) writeCtrlTransferStmnt(n *ast.CtrlTransferStmnt) error {
	switch n.Kind {
	case ast.CtrlBreak:
		w.writeLine("break;")
	case ast.CtrlContinue:
		w.writeLine("continue;")
	case ast.CtrlDiscard:
		w.writeLine("discard;")
	default:
		return errors.Errorf("unsupported control transfer kind %v", n.Kind)
	}
	return nil
}
