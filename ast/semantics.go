// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "strings"

// SystemValue enumerates HLSL's SV_* semantics that map to a GLSL
// built-in (spec.md Glossary: "System-value semantic").
type SystemValue uint8

const (
	SVNone SystemValue = iota
	SVPosition
	SVTarget
	SVDepth
	SVVertexID
	SVInstanceID
	SVIsFrontFace
	SVPrimitiveID
	SVDispatchThreadID
	SVGroupID
	SVGroupThreadID
	SVGroupIndex
	SVClipDistance
	SVCullDistance
	SVSampleIndex
	SVTessFactor
	SVInsideTessFactor
	SVDomainLocation
	SVOutputControlPointID
)

var systemValueNames = map[string]SystemValue{
	"SV_Position":         SVPosition,
	"SV_Target":           SVTarget,
	"SV_Depth":            SVDepth,
	"SV_VertexID":         SVVertexID,
	"SV_InstanceID":       SVInstanceID,
	"SV_IsFrontFace":      SVIsFrontFace,
	"SV_PrimitiveID":      SVPrimitiveID,
	"SV_DispatchThreadID": SVDispatchThreadID,
	"SV_GroupID":          SVGroupID,
	"SV_GroupThreadID":    SVGroupThreadID,
	"SV_GroupIndex":       SVGroupIndex,
	"SV_ClipDistance":     SVClipDistance,
	"SV_CullDistance":     SVCullDistance,
	"SV_SampleIndex":      SVSampleIndex,
	"SV_TessFactor":       SVTessFactor,
	"SV_InsideTessFactor": SVInsideTessFactor,
	"SV_DomainLocation":   SVDomainLocation,
	"SV_OutputControlPointID": SVOutputControlPointID,
}

// ParseSemantic classifies a raw HLSL semantic string, matching
// case-insensitively (HLSL semantics are case-insensitive) and stripping
// a trailing numeric index (e.g. "SV_Target0", "TEXCOORD3").
func ParseSemantic(raw string) Semantic {
	trimmed := strings.TrimRight(raw, "0123456789")
	index := 0
	if len(trimmed) < len(raw) {
		var n int
		for _, ch := range raw[len(trimmed):] {
			n = n*10 + int(ch-'0')
		}
		index = n
	}
	for name, sv := range systemValueNames {
		if strings.EqualFold(name, trimmed) {
			return Semantic{SystemValue: sv, Index: index, Raw: raw}
		}
	}
	return Semantic{SystemValue: SVNone, UserDefined: trimmed, Index: index, Raw: raw}
}

// Semantic is an HLSL semantic annotation on a VarDecl or function
// return type: either a recognized system value or a user-defined
// interpolant name (spec.md §3, §4.6).
type Semantic struct {
	SystemValue SystemValue
	UserDefined string
	Index       int
	Raw         string
}

// IsSystemValue reports whether this semantic names a system value
// rather than a user-defined interpolant.
func (s Semantic) IsSystemValue() bool { return s.SystemValue != SVNone }

// ParameterSemantics partitions a FunctionDecl's parameter VarDecls into
// system-value and user-defined groups (spec.md §3:
// "ParameterSemantics = partition of parameter VarDecls into
// system-value vs user-defined").
type ParameterSemantics struct {
	SystemValues []*VarDecl
	UserDefined  []*VarDecl
}

// Classify partitions params by their declared Semantic.
func Classify(params []*VarDecl) ParameterSemantics {
	var ps ParameterSemantics
	for _, p := range params {
		if p.Semantic.IsSystemValue() {
			ps.SystemValues = append(ps.SystemValues, p)
		} else {
			ps.UserDefined = append(ps.UserDefined, p)
		}
	}
	return ps
}
