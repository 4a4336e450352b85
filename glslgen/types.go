// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import (
	"fmt"

	"github.com/gogpu/xsc/denoter"
)

// baseTypeName renders the GLSL spelling of d, unwrapping any Array
// dimensions (array size suffixes are rendered separately by
// arraySuffix, mirroring the teacher's getBaseTypeName/getArraySuffix
// split so declarations can interleave `type name[N];`).
func (w *Writer) baseTypeName(d denoter.Denoter) string {
	switch t := d.(type) {
	case denoter.Base:
		return baseKindName(t)
	case denoter.Array:
		return w.baseTypeName(t.Elem)
	case denoter.Struct:
		return w.structName(t.Decl.StructName())
	case denoter.Alias:
		if u := t.Decl.Underlying(); u != nil {
			return w.baseTypeName(u)
		}
		return t.Decl.AliasName()
	case denoter.BufferDenoter:
		return bufferTypeName(t)
	case denoter.SamplerDenoter:
		return samplerTypeName(t)
	default:
		return "void"
	}
}

// arraySuffix renders every array dimension of d as `[N]` or `[]` for
// unsized dimensions, innermost dimension last.
func (w *Writer) arraySuffix(d denoter.Denoter) string {
	arr, ok := d.(denoter.Array)
	if !ok {
		return ""
	}
	suffix := ""
	for _, dim := range arr.Dims {
		if dim.Size != nil {
			suffix += fmt.Sprintf("[%d]", *dim.Size)
		} else {
			suffix += "[]"
		}
	}
	return suffix + w.arraySuffix(arr.Elem)
}

// elemBase unwraps any Array dimensions to find the underlying scalar,
// vector, or matrix denoter.Base, e.g. for `double a[4]` or `double3x3`.
// ok is false for a Struct, Alias, buffer, or sampler denoter, none of
// which can carry a Double component.
func elemBase(d denoter.Denoter) (b denoter.Base, ok bool) {
	switch t := d.(type) {
	case denoter.Base:
		return t, true
	case denoter.Array:
		return elemBase(t.Elem)
	default:
		return denoter.Base{}, false
	}
}

func baseKindName(b denoter.Base) string {
	switch {
	case b.IsScalar():
		return scalarKindName(b.Kind)
	case b.IsVector():
		return vectorPrefix(b.Kind) + fmt.Sprintf("vec%d", b.Cols)
	default:
		return matrixKindName(b)
	}
}

func scalarKindName(k denoter.Component) string {
	switch k {
	case denoter.Void:
		return "void"
	case denoter.Bool:
		return "bool"
	case denoter.Int:
		return "int"
	case denoter.UInt:
		return "uint"
	case denoter.Half, denoter.Float:
		return "float"
	case denoter.Double:
		return "double"
	default:
		return "float"
	}
}

func vectorPrefix(k denoter.Component) string {
	switch k {
	case denoter.Bool:
		return "b"
	case denoter.Int:
		return "i"
	case denoter.UInt:
		return "u"
	case denoter.Double:
		return "d"
	default:
		return ""
	}
}

func matrixKindName(b denoter.Base) string {
	prefix := ""
	if b.Kind == denoter.Double {
		prefix = "d"
	}
	if b.Rows == b.Cols {
		return fmt.Sprintf("%smat%d", prefix, b.Rows)
	}
	return fmt.Sprintf("%smat%dx%d", prefix, b.Cols, b.Rows)
}

func bufferTypeName(b denoter.BufferDenoter) string {
	switch b.Kind {
	case denoter.Texture1D:
		return "sampler1D"
	case denoter.Texture2D:
		return "sampler2D"
	case denoter.Texture3D:
		return "sampler3D"
	case denoter.TextureCube:
		return "samplerCube"
	case denoter.Texture1DArray:
		return "sampler1DArray"
	case denoter.Texture2DArray:
		return "sampler2DArray"
	case denoter.TextureCubeArray:
		return "samplerCubeArray"
	case denoter.Texture2DMS:
		return "sampler2DMS"
	case denoter.Texture2DMSArray:
		return "sampler2DMSArray"
	case denoter.RWTexture1D, denoter.RWTexture2D, denoter.RWTexture3D:
		return "image2D"
	case denoter.StructuredBuffer, denoter.RWStructuredBuffer, denoter.AppendStructuredBuffer, denoter.ConsumeStructuredBuffer:
		return "buffer"
	case denoter.ByteAddressBuffer, denoter.RWByteAddressBuffer:
		return "buffer"
	default:
		return "sampler2D"
	}
}

func samplerTypeName(s denoter.SamplerDenoter) string {
	switch s.Kind {
	case denoter.Sampler1D:
		return "sampler1D"
	case denoter.Sampler2D:
		return "sampler2D"
	case denoter.Sampler3D:
		return "sampler3D"
	case denoter.SamplerCube:
		return "samplerCube"
	default:
		return "sampler2D"
	}
}
