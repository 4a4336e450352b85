// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package symtab implements the scoped symbol table and reference
// analyzer (spec.md §4.2): a block-stack of lexical scopes that
// resolves identifier uses against declarations, attaching symbolRef on
// VarIdent and declStmntRef on VarDecl as it goes, plus base-first
// struct member lookup for inherited HLSL structs.
package symtab

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/diag"
)

// Table is a scoped block-stack symbol table. The outermost scope
// (index 0) holds global declarations; PushScope/PopScope bracket
// function bodies and nested blocks the way the teacher's ir resolver
// brackets expression handles within a single Function.
type Table struct {
	scopes []map[string]ast.Symbol
}

// New returns a Table with a single, already-open global scope.
func New() *Table {
	t := &Table{}
	t.PushScope()
	return t
}

// PushScope opens a new innermost scope, e.g. entering a CodeBlockStmnt.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, make(map[string]ast.Symbol))
}

// PopScope closes the innermost scope. It is a no-op if only the global
// scope remains, matching the teacher's defensive bounds style in
// ir/resolve.go rather than panicking on caller mismatch.
func (t *Table) PopScope() {
	if len(t.scopes) <= 1 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports how many scopes are currently open, 1 meaning only the
// global scope.
func (t *Table) Depth() int { return len(t.scopes) }

// Insert declares sym in the innermost open scope. Redeclaring a name
// already present in that same scope is an error; shadowing a name from
// an outer scope is allowed (HLSL block scoping).
func (t *Table) Insert(name string, sym ast.Symbol) error {
	innermost := t.scopes[len(t.scopes)-1]
	if existing, ok := innermost[name]; ok {
		err := errors.Errorf("%q is already declared in this scope (previous declaration at %v)", name, existing.Pos())
		return diag.WithPos(diag.KindRedefinedSymbol, sym.Pos(), err)
	}
	innermost[name] = sym
	return nil
}

// InsertVarDecl declares decl in the innermost scope and attaches
// DeclStmntRef, the non-owning back-reference to its owning
// VarDeclStmnt (spec.md §4.2: "on VarDecl insertion, the resolver
// attaches declStmntRef").
func (t *Table) InsertVarDecl(decl *ast.VarDecl, owner *ast.VarDeclStmnt) error {
	decl.DeclStmntRef = owner
	return t.Insert(decl.Name, decl)
}

// Lookup searches from the innermost scope outward and returns the
// first match, or false if name is undefined in any open scope.
func (t *Table) Lookup(name string) (ast.Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Resolve looks up ident, attaches the result to v.SymbolRef, and
// returns it. Failing to find ident in any open scope is the "undefined
// identifier" failure condition of spec.md §4.2.
func (t *Table) Resolve(v *ast.VarIdent) (ast.Symbol, error) {
	sym, ok := t.Lookup(v.Ident)
	if !ok {
		err := errors.Errorf("undefined identifier %q", v.Ident)
		return nil, diag.WithPos(diag.KindUndefinedSymbol, v.Pos(), err)
	}
	v.SymbolRef = sym
	if decl, ok := sym.(interface{ MarkUsed() }); ok {
		decl.MarkUsed()
	}
	return sym, nil
}

// Fetch searches decl's base struct first, then decl's own members
// first-declared-first, and returns the first VarDecl that declares
// name: an inherited member wins over an identically named member
// declared in decl itself. denoter.Struct.Member uses the same order.
func Fetch(decl *ast.StructDecl, name string) (*ast.VarDecl, error) {
	if base, ok := decl.Base(); ok {
		if baseDecl, ok := base.(*ast.StructDecl); ok {
			if found, err := Fetch(baseDecl, name); err == nil {
				return found, nil
			}
		}
	}
	member, ownErr := ownMember(decl, name)
	if ownErr == nil {
		return member, nil
	}
	err := errors.Errorf("no member named %q in struct %q or its base", name, decl.StructName())
	return nil, diag.WithPos(diag.KindUndefinedSymbol, decl.Pos(), err)
}

func ownMember(decl *ast.StructDecl, name string) (*ast.VarDecl, error) {
	for i := 0; i < decl.NumMembers(); i++ {
		m := decl.MemberDecl(i)
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no own member named %q", name)
}

// ResolveBase wires s.BaseStructRef to the struct named baseName found
// in byName, the map an enclosing pass (sema, or an external parser
// binding phase) builds from every StructDecl in the translation unit.
// A missing base name is the "undefined identifier" failure condition
// applied to a base-struct reference.
func ResolveBase(byName map[string]*ast.StructDecl, s *ast.StructDecl, baseName string) error {
	base, ok := byName[baseName]
	if !ok {
		err := errors.Errorf("struct %q inherits from undefined struct %q", s.StructName(), baseName)
		return diag.WithPos(diag.KindUndefinedSymbol, s.Pos(), err)
	}
	s.BaseStructRef = base
	return nil
}
