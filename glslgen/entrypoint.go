// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
	"github.com/gogpu/xsc/sema"
)

// entryReturnTarget tells writeEntryReturnStmnt what a `return expr;`
// inside an inlined entry-point body should turn into.
type entryReturnTarget struct {
	isVoid     bool
	scalarDest string
	structDecl *ast.StructDecl
	structPlan sema.FlattenPlan
	structDest []string
}

// writeEntryPoint renders f as GLSL's implicit `void main()`. HLSL lets
// the entry point be an ordinarily-callable function; GLSL has exactly
// one main() and no way to call it, so its body is inlined directly
// rather than wrapped in a call to a separately-emitted function (there
// is nothing to call it: main is the only function GLSL runs). Structure
// and naming are grounded on the teacher's writeEntryPoint /
// writeVertexIO / writeFragmentIO split. A scalar (non-struct) result
// assigns directly into its destination with no intermediate local,
// matching spec.md §8 S1's `gl_Position = pos;`; a struct result still
// needs one temporary to hold the return expression before its fields
// are copied out individually.
func (w *Writer) writeEntryPoint(f *ast.FunctionDecl) error {
	locals := make(map[*ast.VarDecl]string, len(f.Params))
	for _, p := range f.Params {
		if err := w.writeEntryInput(p, locals); err != nil {
			return errors.Wrapf(err, "entry point %s parameter %s", f.Name, p.Name)
		}
	}
	for p, name := range locals {
		w.names[p] = name
	}

	var returnType denoter.Denoter
	if f.ReturnType != nil {
		t, err := f.ReturnType.GetTypeDenoter(w.analyzer)
		if err != nil {
			return err
		}
		returnType = t
	}
	isVoid := returnType == nil
	if b, ok := returnType.(denoter.Base); ok && b.Kind == denoter.Void {
		isVoid = true
	}

	target := &entryReturnTarget{isVoid: isVoid}
	if !isVoid {
		if s, ok := returnType.(denoter.Struct); ok {
			decl, ok := s.Decl.(*ast.StructDecl)
			if !ok {
				return errors.New("struct denoter without an *ast.StructDecl backing")
			}
			target.structDecl = decl
			target.structPlan = sema.PlanFlatten(decl, w.options.NameManglingPrefix+"_out")
			target.structDest = make([]string, len(target.structPlan.Members))
			for i, m := range target.structPlan.Members {
				target.structDest[i] = w.declareFlattenedVar("out", m, true)
			}
		} else {
			target.scalarDest = w.declareInterfaceVar("out", "result", f.Semantic, returnType, true, true)
		}
	}

	w.writeLine("void main() {")
	w.pushIndent()

	w.entryReturn = target
	err := w.writeStmnt(f.Body)
	w.entryReturn = nil
	if err != nil {
		return err
	}

	w.popIndent()
	w.writeLine("}")
	w.writeLine("")
	return nil
}

// writeEntryReturnStmnt rewrites a `return expr;` found while inlining an
// entry point's body into the assignment(s) its return target calls for.
func (w *Writer) writeEntryReturnStmnt(n *ast.ReturnStmnt) error {
	target := w.entryReturn
	if target.isVoid || n.Value == nil {
		w.writeLine("return;")
		return nil
	}
	value, err := w.writeExpr(n.Value)
	if err != nil {
		return err
	}
	if target.structDecl != nil {
		resultLocal := w.options.NameManglingPrefix + "_result"
		w.writeLine("%s %s = %s;", w.structName(target.structDecl.Name), resultLocal, value)
		for i, m := range target.structPlan.Members {
			w.writeLine("%s = %s.%s;", target.structDest[i], resultLocal, escapeKeyword(m.Member.Name))
		}
		return nil
	}
	w.writeLine("%s = %s;", target.scalarDest, value)
	return nil
}

// writeEntryInput declares the shader-stage input(s) feeding parameter p
// and records the local expression the inlined body should see wherever
// it references p.
func (w *Writer) writeEntryInput(p *ast.VarDecl, locals map[*ast.VarDecl]string) error {
	t, err := p.GetTypeDenoter(w.analyzer)
	if err != nil {
		return err
	}
	if s, ok := t.(denoter.Struct); ok {
		decl, ok := s.Decl.(*ast.StructDecl)
		if !ok {
			return errors.New("struct denoter without an *ast.StructDecl backing")
		}
		plan := sema.PlanFlatten(decl, w.options.NameManglingPrefix+"_"+p.Name)
		localName := w.mangledName(p, p.Name)
		w.writeStructReassembly(decl, plan, localName)
		locals[p] = localName
		return nil
	}
	name := w.declareInterfaceVar("in", p.Name, p.Semantic, t, false, false)
	locals[p] = name
	return nil
}

// writeStructReassembly declares one in variable per flattened member
// (or references its gl_* built-in) and then reconstructs a
// struct-typed local so the inlined body can keep referencing its
// original struct-typed parameter.
func (w *Writer) writeStructReassembly(decl *ast.StructDecl, plan sema.FlattenPlan, localName string) {
	w.writeLine("%s %s;", w.structName(decl.Name), localName)
	for _, m := range plan.Members {
		varName := w.declareFlattenedVar("in", m, false)
		w.writeLine("%s.%s = %s;", localName, escapeKeyword(m.Member.Name), varName)
	}
}

// declareFlattenedVar declares the interface variable for one flattened
// struct member, or resolves it to a gl_* built-in. Interface names are
// the member's own name deduplicated through mangledName rather than
// PlanFlatten's synthesized LocalName, so an unambiguous case like
// spec.md §8 S2's `in vec3 p; in vec2 uv;` keeps the source names
// verbatim; a genuine collision (an output member sharing a name with an
// input) is resolved by mangledName's numeric-suffix fallback.
func (w *Writer) declareFlattenedVar(direction string, m sema.FlattenedMember, isOutput bool) string {
	t := m.Member.BufferedTypeDenoter()
	if bn, ok := w.systemValueRef(m.Member.Semantic, t, isOutput); ok {
		return bn
	}
	// declTypeFor's double-precision gate is skipped here: an
	// entry-point interface variable's type comes from an HLSL system
	// value or user semantic, and no HLSL system value is ever double.
	base, suffix := w.baseTypeName(t), w.arraySuffix(t)
	varName := w.mangledName(m.Member, m.Member.Name)
	w.writeLine("%s %s %s%s;", direction, base, varName, suffix)
	return varName
}

// declareInterfaceVar emits a top-level `in`/`out` declaration for a
// bare (non-flattened) parameter or return value and returns the
// identifier subsequent code should reference. For a recognized system
// value it resolves directly to the gl_* built-in without declaring
// anything. mangle controls whether name is run through the configured
// mangling prefix: a real source parameter name is kept verbatim
// (spec.md §8 S1 expects `in vec4 pos;`, not a prefixed rename), while a
// synthesized name with no source counterpart (an anonymous scalar
// return value) is mangled to avoid colliding with a real identifier.
func (w *Writer) declareInterfaceVar(direction string, name string, sem ast.Semantic, t denoter.Denoter, isOutput bool, mangle bool) string {
	if bn, ok := w.systemValueRef(sem, t, isOutput); ok {
		return bn
	}
	base, suffix := w.baseTypeName(t), w.arraySuffix(t)
	varName := escapeKeyword(name)
	if mangle {
		varName = w.localName(name)
	}
	w.writeLine("%s %s %s%s;", direction, base, varName, suffix)
	return varName
}

// systemValueRef resolves sem to its gl_* built-in, or (for SV_Target)
// declares the explicit fragColor output variable, returning ok=false
// for a user-defined semantic so the caller falls back to a plain
// in/out declaration.
func (w *Writer) systemValueRef(sem ast.Semantic, t denoter.Denoter, isOutput bool) (string, bool) {
	if !sem.IsSystemValue() {
		return "", false
	}
	if bn, ok := builtinName(sem.SystemValue, isOutput); ok {
		return bn, true
	}
	if sem.SystemValue == ast.SVTarget {
		out := w.localName("fragColor")
		w.writeLine("out %s %s;", w.baseTypeName(t), out)
		return out, true
	}
	return "", false
}
