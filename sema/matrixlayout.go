// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import "github.com/gogpu/xsc/ast"

// ResolveMatrixLayout walks prog once, marking every global and
// function-local VarDeclStmnt and every uniform-buffer member, whatever
// its type, with its row/column-major transposition requirement
// (SPEC_FULL.md §13's Open Question decision: the analyzer is the single
// canonical layer for this decision). glslgen's needsTranspose reads the
// resulting flag directly off the declaration; it never recomputes it.
func ResolveMatrixLayout(prog *ast.Program, a *Analyzer) {
	for _, stmnt := range prog.GlobalStmnts {
		resolveMatrixLayoutInStmnt(stmnt, a)
	}
}

func resolveMatrixLayoutInStmnt(stmnt ast.Stmnt, a *Analyzer) {
	switch n := stmnt.(type) {
	case *ast.VarDeclStmnt:
		n.RequiresTranspose = a.RequiresTranspose(n.Modifiers)
	case *ast.UniformBufferDecl:
		for _, m := range n.Members {
			m.RequiresTranspose = a.RequiresTranspose(m.Modifiers)
		}
	case *ast.FunctionDecl:
		if n.Body != nil {
			resolveMatrixLayoutInStmnt(n.Body, a)
		}
	case *ast.CodeBlockStmnt:
		for _, s := range n.Stmnts {
			resolveMatrixLayoutInStmnt(s, a)
		}
	case *ast.ForStmnt:
		resolveMatrixLayoutInStmnt(n.Init, a)
		resolveMatrixLayoutInStmnt(n.Iter, a)
		resolveMatrixLayoutInStmnt(n.Body, a)
	case *ast.WhileStmnt:
		resolveMatrixLayoutInStmnt(n.Body, a)
	case *ast.DoWhileStmnt:
		resolveMatrixLayoutInStmnt(n.Body, a)
	case *ast.IfStmnt:
		resolveMatrixLayoutInStmnt(n.Then, a)
		resolveMatrixLayoutInStmnt(n.Else, a)
	case *ast.SwitchStmnt:
		for _, c := range n.Cases {
			for _, s := range c.Stmnts {
				resolveMatrixLayoutInStmnt(s, a)
			}
		}
	}
}
