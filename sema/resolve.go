// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/symtab"
)

// declTables collects every struct/alias declared anywhere in the
// program by name, so a VarType's TypeName can be resolved regardless of
// declaration order (HLSL, unlike C, allows forward reference within a
// translation unit).
type declTables struct {
	structs map[string]*ast.StructDecl
	aliases map[string]*ast.AliasDecl
}

// ResolveProgram is the "resolve" stage of the translation pipeline
// (SPEC_FULL.md §6): it wires every VarType's TypeName to its
// declaration, every struct's base-class reference, and every
// identifier's symbol reference, using symtab.Table as the scoped name
// resolver (spec.md §4.2). It must run before the analyzer's type
// derivation (§4.3) can succeed, since GetTypeDenoter assumes
// SymbolRef/Resolved are already populated.
func ResolveProgram(prog *ast.Program, a *Analyzer) error {
	tabs := &declTables{structs: map[string]*ast.StructDecl{}, aliases: map[string]*ast.AliasDecl{}}
	for _, stmnt := range prog.GlobalStmnts {
		switch n := stmnt.(type) {
		case *ast.StructDecl:
			tabs.structs[n.Name] = n
		case *ast.AliasDecl:
			tabs.aliases[n.Name] = n
		}
	}

	for _, stmnt := range prog.GlobalStmnts {
		sd, ok := stmnt.(*ast.StructDecl)
		if !ok || sd.BaseName == "" {
			continue
		}
		if err := symtab.ResolveBase(tabs.structs, sd, sd.BaseName); err != nil {
			return err
		}
	}

	for _, stmnt := range prog.GlobalStmnts {
		if err := resolveGlobalStmnt(stmnt, a, tabs); err != nil {
			return err
		}
	}
	return nil
}

func resolveGlobalStmnt(stmnt ast.Stmnt, a *Analyzer, tabs *declTables) error {
	switch n := stmnt.(type) {
	case *ast.StructDecl:
		for _, m := range n.Members {
			if err := resolveVarDeclStmnt(m, a, tabs, false); err != nil {
				return errors.Wrapf(err, "struct %s", n.Name)
			}
		}
		return nil
	case *ast.AliasDecl:
		return nil
	case *ast.UniformBufferDecl:
		for _, m := range n.Members {
			if err := resolveVarDeclStmnt(m, a, tabs, true); err != nil {
				return errors.Wrapf(err, "uniform buffer %s", n.Name)
			}
		}
		return nil
	case *ast.VarDeclStmnt:
		return resolveVarDeclStmnt(n, a, tabs, true)
	case *ast.FunctionDecl:
		return resolveFunctionDecl(n, a, tabs)
	default:
		err := errors.Errorf("unresolvable top-level statement %T", stmnt)
		return diag.WithPos(diag.KindInternal, stmnt.Pos(), err)
	}
}

// resolveVarDeclStmnt resolves the shared VarType and each individual
// VarDecl's own type/initializer, optionally inserting each declared
// name into a.Table (global and local declarations do; struct members do
// not, since they are only reachable through a struct instance).
func resolveVarDeclStmnt(s *ast.VarDeclStmnt, a *Analyzer, tabs *declTables, insertIntoScope bool) error {
	if err := resolveVarType(s.Type, tabs); err != nil {
		return err
	}
	for _, decl := range s.Decls {
		if decl.Type != s.Type {
			if err := resolveVarType(decl.Type, tabs); err != nil {
				return err
			}
		}
		for _, dim := range decl.ArrayDims {
			if dim != nil {
				if err := resolveExpr(dim, a, tabs); err != nil {
					return err
				}
			}
		}
		if decl.Initializer != nil {
			if err := resolveExpr(decl.Initializer, a, tabs); err != nil {
				return err
			}
		}
		if insertIntoScope {
			if err := a.Table.InsertVarDecl(decl, s); err != nil {
				return err
			}
		} else {
			decl.DeclStmntRef = s
		}
	}
	return nil
}

func resolveVarType(t *ast.VarType, tabs *declTables) error {
	if t == nil || t.TypeName == "" || t.Resolved != nil {
		return nil
	}
	if s, ok := tabs.structs[t.TypeName]; ok {
		t.Resolved = s.AsDenoter()
		return nil
	}
	if al, ok := tabs.aliases[t.TypeName]; ok {
		t.Resolved = denoter.Alias{Decl: al}
		return nil
	}
	err := errors.Errorf("undefined type %q", t.TypeName)
	return diag.WithPos(diag.KindUndefinedSymbol, t.Pos(), err)
}

func resolveFunctionDecl(f *ast.FunctionDecl, a *Analyzer, tabs *declTables) error {
	if err := resolveVarType(f.ReturnType, tabs); err != nil {
		return errors.Wrapf(err, "function %s return type", f.Name)
	}
	for _, p := range f.Params {
		if err := resolveVarType(p.Type, tabs); err != nil {
			return errors.Wrapf(err, "function %s parameter %s", f.Name, p.Name)
		}
	}
	if err := a.RegisterFunction(f); err != nil {
		return err
	}
	if f.Body == nil {
		return nil
	}

	a.Table.PushScope()
	defer a.Table.PopScope()
	for _, p := range f.Params {
		if err := a.Table.Insert(p.Name, p); err != nil {
			return err
		}
	}
	return resolveStmnt(f.Body, a, tabs)
}

func resolveStmnt(stmnt ast.Stmnt, a *Analyzer, tabs *declTables) error {
	switch n := stmnt.(type) {
	case nil:
		return nil
	case *ast.CodeBlockStmnt:
		a.Table.PushScope()
		defer a.Table.PopScope()
		for _, s := range n.Stmnts {
			if err := resolveStmnt(s, a, tabs); err != nil {
				return err
			}
		}
		return nil
	case *ast.VarDeclStmnt:
		return resolveVarDeclStmnt(n, a, tabs, true)
	case *ast.ForStmnt:
		a.Table.PushScope()
		defer a.Table.PopScope()
		if err := resolveStmnt(n.Init, a, tabs); err != nil {
			return err
		}
		if n.Cond != nil {
			if err := resolveExpr(n.Cond, a, tabs); err != nil {
				return err
			}
		}
		if err := resolveStmnt(n.Iter, a, tabs); err != nil {
			return err
		}
		return resolveStmnt(n.Body, a, tabs)
	case *ast.WhileStmnt:
		if err := resolveExpr(n.Cond, a, tabs); err != nil {
			return err
		}
		return resolveStmnt(n.Body, a, tabs)
	case *ast.DoWhileStmnt:
		if err := resolveStmnt(n.Body, a, tabs); err != nil {
			return err
		}
		return resolveExpr(n.Cond, a, tabs)
	case *ast.IfStmnt:
		if err := resolveExpr(n.Cond, a, tabs); err != nil {
			return err
		}
		if err := resolveStmnt(n.Then, a, tabs); err != nil {
			return err
		}
		return resolveStmnt(n.Else, a, tabs)
	case *ast.SwitchStmnt:
		if err := resolveExpr(n.Selector, a, tabs); err != nil {
			return err
		}
		for _, c := range n.Cases {
			if c.CaseExpr != nil {
				if err := resolveExpr(c.CaseExpr, a, tabs); err != nil {
					return err
				}
			}
			for _, s := range c.Stmnts {
				if err := resolveStmnt(s, a, tabs); err != nil {
					return err
				}
			}
		}
		return nil
	case *ast.ExprStmnt:
		return resolveExpr(n.Expr, a, tabs)
	case *ast.ReturnStmnt:
		if n.Value == nil {
			return nil
		}
		return resolveExpr(n.Value, a, tabs)
	case *ast.CtrlTransferStmnt, *ast.NullStmnt:
		return nil
	default:
		err := errors.Errorf("unresolvable statement %T", stmnt)
		return diag.WithPos(diag.KindInternal, stmnt.Pos(), err)
	}
}

func resolveExpr(expr ast.Expr, a *Analyzer, tabs *declTables) error {
	switch n := expr.(type) {
	case nil, *ast.NullExpr, *ast.LiteralExpr:
		return nil
	case *ast.ListExpr:
		return resolveEach(n.Exprs, a, tabs)
	case *ast.TypeNameExpr:
		return nil
	case *ast.TernaryExpr:
		return resolveEach([]ast.Expr{n.Cond, n.Then, n.Else}, a, tabs)
	case *ast.BinaryExpr:
		return resolveEach([]ast.Expr{n.Lhs, n.Rhs}, a, tabs)
	case *ast.UnaryExpr:
		return resolveExpr(n.Operand, a, tabs)
	case *ast.PostUnaryExpr:
		return resolveExpr(n.Operand, a, tabs)
	case *ast.FunctionCallExpr:
		if n.Ident != nil {
			if err := resolveVarIdentChain(n.Ident, a, tabs); err != nil {
				return err
			}
		}
		return resolveEach(n.Args, a, tabs)
	case *ast.BracketExpr:
		return resolveExpr(n.Inner, a, tabs)
	case *ast.SuffixExpr:
		return resolveExpr(n.Inner, a, tabs)
	case *ast.ArrayAccessExpr:
		if err := resolveExpr(n.Inner, a, tabs); err != nil {
			return err
		}
		return resolveEach(n.Indices, a, tabs)
	case *ast.CastExpr:
		return resolveExpr(n.Value, a, tabs)
	case *ast.VarAccessExpr:
		return resolveVarIdentChain(n.Ident, a, tabs)
	case *ast.InitializerExpr:
		return resolveEach(n.Elements, a, tabs)
	default:
		err := errors.Errorf("unresolvable expression %T", expr)
		return diag.WithPos(diag.KindInternal, expr.Pos(), err)
	}
}

func resolveEach(exprs []ast.Expr, a *Analyzer, tabs *declTables) error {
	for _, e := range exprs {
		if err := resolveExpr(e, a, tabs); err != nil {
			return err
		}
	}
	return nil
}

// resolveVarIdentChain resolves the chain's head against the scoped
// symbol table (subsequent segments are resolved structurally through
// denoter.Get during type derivation, not through the symbol table) and
// recurses into every segment's array-index expressions.
func resolveVarIdentChain(v *ast.VarIdent, a *Analyzer, tabs *declTables) error {
	if _, err := a.Table.Resolve(v); err != nil {
		return err
	}
	for cur := v; cur != nil; cur = cur.Next {
		if err := resolveEach(cur.ArrayIndices, a, tabs); err != nil {
			return err
		}
	}
	return nil
}
