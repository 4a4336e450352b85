// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/xsc/ast"
	"github.com/gogpu/xsc/denoter"
)

// writeGlobalStmnt dispatches one top-level Program statement, mirroring
// the teacher's writeModule's ordered section-by-section walk but driven
// by the AST's declaration order rather than an IR module's separated
// type/constant/global/function slices.
func (w *Writer) writeGlobalStmnt(stmnt ast.Stmnt) error {
	switch n := stmnt.(type) {
	case *ast.StructDecl:
		return w.writeStructDecl(n)
	case *ast.AliasDecl:
		return nil // aliases are transparent in GLSL; nothing to emit
	case *ast.UniformBufferDecl:
		return w.writeUniformBufferDecl(n)
	case *ast.VarDeclStmnt:
		return w.writeGlobalVarDeclStmnt(n)
	case *ast.FunctionDecl:
		return w.writeFunctionDecl(n)
	default:
		return errors.Errorf("unsupported top-level statement %T", stmnt)
	}
}

func (w *Writer) writeStructDecl(s *ast.StructDecl) error {
	name := w.structName(s.Name)
	w.writeLine("struct %s {", name)
	w.pushIndent()
	for i := 0; i < s.NumMembers(); i++ {
		m := s.MemberDecl(i)
		t, err := m.GetTypeDenoter(w.analyzer)
		if err != nil {
			return errors.Wrapf(err, "struct %s member %s", s.Name, m.Name)
		}
		base, suffix, err := w.declTypeFor(t, m.Pos())
		if err != nil {
			return err
		}
		w.writeLine("%s %s%s;", base, escapeKeyword(m.Name), suffix)
	}
	w.popIndent()
	w.writeLine("};")
	w.writeLine("")
	return nil
}

// writeUniformBufferDecl emits a cbuffer as a GLSL uniform block. An
// explicit `layout(binding=N)` is only emitted when both the caller opted
// in via Options.ExplicitBinding and the target version can express it
// (natively, or via an extension the caller also allowed with
// AllowExtensions); otherwise it falls back to a plain unbound block.
func (w *Writer) writeUniformBufferDecl(u *ast.UniformBufferDecl) error {
	blockName := escapeKeyword(u.Name)
	wantsBinding := u.RegisterRef != nil && w.options.ExplicitBinding
	switch {
	case wantsBinding && w.analyzer.Registry.SupportsExplicitBinding(w.requiredVersion):
		w.writeLine("layout(binding = %d) uniform %s {", w.options.UniformBindingBase, blockName)
	case wantsBinding && w.options.AllowExtensions && w.analyzer.Registry.RequiresExplicitBindingExtension(w.requiredVersion):
		w.requireExtension("GL_ARB_shading_language_420pack")
		w.writeLine("layout(binding = %d) uniform %s {", w.options.UniformBindingBase, blockName)
	default:
		w.writeLine("uniform %s {", blockName)
	}
	w.pushIndent()
	for _, stmnt := range u.Members {
		for _, decl := range stmnt.Decls {
			t, err := decl.GetTypeDenoter(w.analyzer)
			if err != nil {
				return errors.Wrapf(err, "uniform buffer %s member %s", u.Name, decl.Name)
			}
			base, suffix, err := w.declTypeFor(t, decl.Pos())
			if err != nil {
				return err
			}
			w.writeLine("%s %s%s;", base, escapeKeyword(decl.Name), suffix)
		}
	}
	w.popIndent()
	w.writeLine("} %s;", blockName)
	w.writeLine("")
	return nil
}

func (w *Writer) writeGlobalVarDeclStmnt(s *ast.VarDeclStmnt) error {
	storage := storageKeyword(s.Storage)
	for _, decl := range s.Decls {
		t, err := decl.GetTypeDenoter(w.analyzer)
		if err != nil {
			return errors.Wrapf(err, "global variable %s", decl.Name)
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
			w.writeLine("%s%s %s%s = %s;", storage, base, name, suffix, value)
		} else {
			w.writeLine("%s%s %s%s;", storage, base, name, suffix)
		}
	}
	return nil
}

func storageKeyword(s ast.StorageClass) string {
	switch {
	case s.Has(ast.StorageUniform):
		return "uniform "
	case s.Has(ast.StorageStatic):
		return "" // GLSL globals are implicitly the shader-local equivalent of `static`
	case s.Has(ast.StorageShared) || s.Has(ast.StorageGroupShared):
		return "shared "
	default:
		return ""
	}
}

func (w *Writer) writeFunctionDecl(f *ast.FunctionDecl) error {
	if f.IsForwardDecl() {
		return nil // GLSL has no separate prototype/definition split we need to preserve
	}
	if w.options.EntryPoint != "" && f.Name == w.options.EntryPoint {
		return w.writeEntryPoint(f)
	}
	return w.writePlainFunction(f)
}

func (w *Writer) writePlainFunction(f *ast.FunctionDecl) error {
	retType := "void"
	if f.ReturnType != nil {
		t, err := f.ReturnType.GetTypeDenoter(w.analyzer)
		if err != nil {
			return errors.Wrapf(err, "function %s return type", f.Name)
		}
		if b, ok := t.(denoter.Base); !ok || b.Kind != denoter.Void {
			retType = w.baseTypeName(t)
		}
	}
	name := w.mangledName(f, f.Name)

	args := make([]string, len(f.Params))
	for i, p := range f.Params {
		t, err := p.GetTypeDenoter(w.analyzer)
		if err != nil {
			return errors.Wrapf(err, "function %s parameter %s", f.Name, p.Name)
		}
		base, suffix, err := w.declTypeFor(t, p.Pos())
		if err != nil {
			return err
		}
		args[i] = fmt.Sprintf("%s %s%s", base, w.mangledName(p, p.Name), suffix)
	}
	w.writeLine("%s %s(%s) {", retType, name, joinComma(args))
	w.pushIndent()
	if err := w.writeStmnt(f.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	w.writeLine("")
	return nil
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
