// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

// reservedWords holds GLSL's keywords, built-in type/function names, and
// gl_-prefixed built-ins, adapted from the teacher's glsl/keywords.go
// table (unchanged content, since GLSL's reserved-word set doesn't
// depend on the source language being translated).
var reservedWords = map[string]struct{}{
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x3": {}, "mat2x4": {}, "mat3x2": {}, "mat3x4": {}, "mat4x2": {}, "mat4x3": {},
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler2DArray": {}, "samplerCubeArray": {},
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"buffer": {}, "shared": {}, "coherent": {}, "volatile": {}, "restrict": {}, "readonly": {}, "writeonly": {},
	"layout": {}, "centroid": {}, "flat": {}, "smooth": {}, "noperspective": {},
	"patch": {}, "sample": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {}, "switch": {}, "case": {}, "default": {},
	"if": {}, "else": {},
	"in": {}, "out": {}, "inout": {},
	"true": {}, "false": {},
	"invariant": {}, "precise": {},
	"discard": {}, "return": {},
	"struct":    {},
	"lowp":      {}, "mediump": {}, "highp": {}, "precision": {},
	"main":      {},
	"sin": {}, "cos": {}, "tan": {}, "pow": {}, "exp": {}, "log": {}, "sqrt": {},
	"abs": {}, "min": {}, "max": {}, "clamp": {}, "mix": {}, "step": {}, "smoothstep": {},
	"length": {}, "distance": {}, "dot": {}, "cross": {}, "normalize": {}, "reflect": {}, "refract": {},
	"transpose": {}, "determinant": {}, "inverse": {},
	"any": {}, "all": {}, "not": {},
	"texture": {}, "textureLod": {}, "texelFetch": {},
	"dFdx": {}, "dFdy": {}, "fwidth": {},
	"barrier": {}, "memoryBarrier": {}, "groupMemoryBarrier": {},
	"atomicAdd": {}, "atomicMin": {}, "atomicMax": {}, "atomicAnd": {}, "atomicOr": {}, "atomicXor": {}, "atomicExchange": {},
}

func isReserved(name string) bool {
	_, ok := reservedWords[name]
	return ok
}

// escapeKeyword prefixes name with an underscore if it collides with a
// GLSL reserved word or the gl_ built-in namespace.
func escapeKeyword(name string) string {
	if name == "" {
		return "_unnamed"
	}
	if isReserved(name) || (len(name) >= 3 && name[:3] == "gl_") {
		return "_" + name
	}
	return name
}
