// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslgen

import "github.com/gogpu/xsc/ast"

// builtinName maps a recognized HLSL system-value semantic to its GLSL
// built-in variable, exhaustive and version-aware per spec.md §4.6.
// isOutput distinguishes SV_Position's two GLSL faces: gl_Position when
// written by a vertex shader, gl_FragCoord when read by a fragment
// shader.
func builtinName(sv ast.SystemValue, isOutput bool) (name string, ok bool) {
	switch sv {
	case ast.SVPosition:
		if isOutput {
			return "gl_Position", true
		}
		return "gl_FragCoord", true
	case ast.SVTarget:
		return "", false // handled by an explicit fragColor out variable, not a built-in
	case ast.SVDepth:
		return "gl_FragDepth", true
	case ast.SVVertexID:
		return "gl_VertexID", true
	case ast.SVInstanceID:
		return "gl_InstanceID", true
	case ast.SVIsFrontFace:
		return "gl_FrontFacing", true
	case ast.SVPrimitiveID:
		return "gl_PrimitiveID", true
	case ast.SVDispatchThreadID:
		return "gl_GlobalInvocationID", true
	case ast.SVGroupID:
		return "gl_WorkGroupID", true
	case ast.SVGroupThreadID:
		return "gl_LocalInvocationID", true
	case ast.SVGroupIndex:
		return "gl_LocalInvocationIndex", true
	case ast.SVClipDistance:
		return "gl_ClipDistance", true
	case ast.SVCullDistance:
		return "gl_CullDistance", true
	case ast.SVSampleIndex:
		return "gl_SampleID", true
	case ast.SVTessFactor:
		return "gl_TessLevelOuter", true
	case ast.SVInsideTessFactor:
		return "gl_TessLevelInner", true
	case ast.SVDomainLocation:
		return "gl_TessCoord", true
	case ast.SVOutputControlPointID:
		return "gl_InvocationID", true
	default:
		return "", false
	}
}
