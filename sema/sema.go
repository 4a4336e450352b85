// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package sema implements the semantic analyzer (spec.md §4.3, §4.4,
// §4.6): it satisfies ast.TypeContext so every AST node's
// GetTypeDenoter can resolve identifiers and calls, performs HLSL
// overload resolution, and decides structure-flattening and
// matrix-majorness policy ahead of GLSL emission.
package sema

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/diag"
	"github.com/gogpu/xsc/intrinsic"
	"github.com/gogpu/xsc/symtab"
	"github.com/gogpu/xsc/version"
)

// Analyzer is the semantic analysis pass. It embeds a symtab.Table for
// identifier scoping and accumulates function overload sets as
// declarations are registered.
type Analyzer struct {
	Table     *symtab.Table
	Target    version.OutputVersion
	Registry  version.Registry
	overloads map[string][]*ast.FunctionDecl
}

// New returns an Analyzer targeting the given output version.
func New(target version.OutputVersion) *Analyzer {
	return &Analyzer{
		Table:     symtab.New(),
		Target:    target,
		Registry:  version.NewRegistry(),
		overloads: make(map[string][]*ast.FunctionDecl),
	}
}

// BoolType implements ast.TypeContext.
func (a *Analyzer) BoolType() denoter.Denoter { return denoter.Scalar(denoter.Bool) }

// IntType implements ast.TypeContext.
func (a *Analyzer) IntType() denoter.Denoter { return denoter.Scalar(denoter.Int) }

// ResolveVarIdent implements ast.TypeContext: it takes the leading
// identifier's symbol from the SymbolRef ResolveProgram attached (or
// resolves it through the symbol table when none is attached yet) then
// walks any suffix chain (member/array/swizzle) via ast.Get.
func (a *Analyzer) ResolveVarIdent(v *ast.VarIdent) (denoter.Denoter, error) {
	sym := v.SymbolRef
	if sym == nil {
		resolved, err := a.Table.Resolve(v)
		if err != nil {
			return nil, err
		}
		sym = resolved
	}
	symTyped, ok := sym.(interface {
		GetTypeDenoter(ast.TypeContext) (denoter.Denoter, error)
	})
	if !ok {
		err := errors.Errorf("symbol %q is not a typed declaration", v.Ident)
		return nil, diag.WithPos(diag.KindInternal, v.Pos(), err)
	}
	base, err := symTyped.GetTypeDenoter(a)
	if err != nil {
		return nil, err
	}
	if len(v.ArrayIndices) > 0 {
		arr, ok := base.(denoter.Array)
		if !ok {
			err := errors.Errorf("array access on non-array identifier %q", v.Ident)
			return nil, diag.WithPos(diag.KindTypeMismatch, v.Pos(), err)
		}
		base, err = arr.GetFromArray(len(v.ArrayIndices), "")
		if err != nil {
			return nil, err
		}
	}
	if v.Next != nil {
		return ast.Get(base, v.Next)
	}
	return base, nil
}

// Cast implements ast.TypeContext: it succeeds iff value.IsCastableTo(target)
// (spec.md §4.1), returning target as the resulting denoter.
func (a *Analyzer) Cast(value, target denoter.Denoter, pos ast.Pos, context string) (denoter.Denoter, error) {
	if value == nil || target == nil {
		err := errors.Errorf("%s: missing operand type", context)
		return nil, diag.WithPos(diag.KindTypeMismatch, pos, err)
	}
	if !value.IsCastableTo(target) {
		err := errors.Errorf("%s: can not cast %q to %q", context, value, target)
		return nil, diag.WithPos(diag.KindTypeMismatch, pos, err)
	}
	return target, nil
}

// MutuallyCastable implements ast.TypeContext: a and b are mutually
// castable iff each casts to the other (spec.md §4.3's BinaryExpr rule).
func (a *Analyzer) MutuallyCastable(x, y denoter.Denoter) bool {
	if x == nil || y == nil {
		return false
	}
	return x.IsCastableTo(y) && y.IsCastableTo(x)
}

// RegisterFunction adds decl to its name's overload set, enforcing
// spec.md §4.4's forward-declaration rule: a second declaration with an
// identical signature is only legal as the definition of a previously
// forward-declared prototype, never a second forward declaration or an
// outright redefinition.
func (a *Analyzer) RegisterFunction(decl *ast.FunctionDecl) error {
	prior := a.overloads[decl.Name]
	for _, existing := range prior {
		if !existing.EqualsSignature(decl) {
			continue
		}
		switch {
		case existing.IsForwardDecl() && !decl.IsForwardDecl():
			*existing = *decl // the definition replaces the prototype in place
			return nil
		case existing.IsForwardDecl() && decl.IsForwardDecl():
			err := errors.Errorf("redundant forward declaration of %q", decl.Name)
			return diag.WithPos(diag.KindRedefinedSymbol, decl.Pos(), err)
		default:
			err := errors.Errorf("redefinition of %q with identical signature", decl.Name)
			return diag.WithPos(diag.KindRedefinedSymbol, decl.Pos(), err)
		}
	}
	// Table.Insert only runs for the name's first overload: it exists to
	// catch a variable declared with the same name as a function, not to
	// track every individual overload (which ResolveOverload dispatches
	// through a.overloads directly, never through the symbol table).
	if len(prior) == 0 {
		if err := a.Table.Insert(decl.Name, decl); err != nil {
			return err
		}
	}
	a.overloads[decl.Name] = append(prior, decl)
	return nil
}

// candidateScore counts the arguments that match their parameter only
// through an implicit conversion (0 when every argument matches exactly),
// or rejects the candidate (score < 0) if any argument does neither.
func candidateScore(ctx ast.TypeContext, params []*ast.VarDecl, args []denoter.Denoter) (int, error) {
	score := 0
	for i, arg := range args {
		var paramType denoter.Denoter
		if i < len(params) {
			pt, err := params[i].GetTypeDenoter(ctx)
			if err != nil {
				return -1, err
			}
			paramType = pt
		} else {
			paramType = params[len(params)-1].BufferedTypeDenoter()
		}
		switch {
		case paramType != nil && arg.Equals(paramType):
			// exact match, +0
		case paramType != nil && arg.IsCastableTo(paramType):
			score++
		default:
			return -1, nil
		}
	}
	return score, nil
}

// ResolveOverload implements spec.md §4.4's candidate scoring: the
// candidate set is every function named ident whose arity brackets N,
// the winner is the lowest-scoring candidate, and a tie is an ambiguity
// error.
func (a *Analyzer) ResolveOverload(ident string, args []denoter.Denoter, pos ast.Pos) (*ast.FunctionDecl, error) {
	candidates := a.overloads[ident]
	if len(candidates) == 0 {
		err := errors.Errorf("no function named %q", ident)
		return nil, diag.WithPos(diag.KindUndefinedSymbol, pos, err)
	}

	type scored struct {
		decl  *ast.FunctionDecl
		score int
	}
	var viable []scored
	for _, c := range candidates {
		n := len(args)
		if n < c.NumMinArgs() || n > c.NumMaxArgs() {
			continue
		}
		score, err := candidateScore(a, c.Params, args)
		if err != nil {
			return nil, err
		}
		if score < 0 {
			continue
		}
		viable = append(viable, scored{c, score})
	}
	if len(viable) == 0 {
		err := errors.Errorf("no overload of %q accepts the given argument types", ident)
		return nil, diag.WithPos(diag.KindTypeMismatch, pos, err)
	}
	sort.SliceStable(viable, func(i, j int) bool { return viable[i].score < viable[j].score })
	if len(viable) > 1 && viable[0].score == viable[1].score {
		err := errors.Errorf("ambiguous call to %q: multiple overloads score %d", ident, viable[0].score)
		return nil, diag.WithPos(diag.KindAmbiguousOverload, pos, err)
	}
	return viable[0].decl, nil
}

// ResolveCall implements ast.TypeContext, dispatching a call in the
// order spec.md §4.3 lists: user function, type constructor, intrinsic.
func (a *Analyzer) ResolveCall(call *ast.FunctionCallExpr) (denoter.Denoter, error) {
	if call.IsCtor {
		return call.CtorType, nil
	}

	args := make([]denoter.Denoter, len(call.Args))
	for i, arg := range call.Args {
		t, err := arg.GetTypeDenoter(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	if _, ok := a.overloads[call.Name]; ok {
		decl, err := a.ResolveOverload(call.Name, args, call.Pos())
		if err != nil {
			return nil, err
		}
		call.DeclRef = decl
		if decl.ReturnType == nil {
			err := fmt.Errorf("function %q has no return type", decl.Name)
			return nil, diag.WithPos(diag.KindInternal, call.Pos(), err)
		}
		return decl.ReturnType.GetTypeDenoter(a)
	}

	spec, ok := intrinsic.Lookup(call.Name)
	if !ok {
		err := errors.Errorf("undefined function %q", call.Name)
		return nil, diag.WithPos(diag.KindUndefinedSymbol, call.Pos(), err)
	}
	if err := intrinsic.CheckArity(call.Name, spec, len(args)); err != nil {
		return nil, diag.WithPos(diag.KindIntrinsicMisuse, call.Pos(), err)
	}
	return spec.Derive(args)
}
