// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import "github.com/gogpu/xsc/ast"

// UnusedLocals returns every local variable declaration in prog that
// ResolveProgram never resolved a VarIdent chain to (Options.WarnUnusedVariable,
// SPEC_FULL.md §12). Only function-body locals are considered; a global's
// declaration is often intentionally unreferenced by the entry point being
// translated (e.g. a cbuffer member some other entry point in the same
// source uses), and a function parameter's signature is fixed by the
// caller, not a defect of the body.
func UnusedLocals(prog *ast.Program) []*ast.VarDecl {
	var out []*ast.VarDecl
	for _, stmnt := range prog.GlobalStmnts {
		f, ok := stmnt.(*ast.FunctionDecl)
		if !ok || f.Body == nil {
			continue
		}
		collectUnusedLocals(f.Body, &out)
	}
	return out
}

func collectUnusedLocals(stmnt ast.Stmnt, out *[]*ast.VarDecl) {
	switch n := stmnt.(type) {
	case nil:
	case *ast.CodeBlockStmnt:
		for _, s := range n.Stmnts {
			collectUnusedLocals(s, out)
		}
	case *ast.VarDeclStmnt:
		for _, decl := range n.Decls {
			if !decl.Used {
				*out = append(*out, decl)
			}
		}
	case *ast.ForStmnt:
		collectUnusedLocals(n.Init, out)
		collectUnusedLocals(n.Iter, out)
		collectUnusedLocals(n.Body, out)
	case *ast.WhileStmnt:
		collectUnusedLocals(n.Body, out)
	case *ast.DoWhileStmnt:
		collectUnusedLocals(n.Body, out)
	case *ast.IfStmnt:
		collectUnusedLocals(n.Then, out)
		collectUnusedLocals(n.Else, out)
	case *ast.SwitchStmnt:
		for _, c := range n.Cases {
			for _, s := range c.Stmnts {
				collectUnusedLocals(s, out)
			}
		}
	}
}
