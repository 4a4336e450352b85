// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package version enumerates the shader language versions the cross
// compiler understands on either side of translation: HLSL shader models
// on input, and the GLSL/ESSL/VKSL family on output. It also carries the
// totally-ordered (major, minor) pair used to gate feature availability
// during emission.
package version

import "fmt"

// InputVersion identifies an HLSL shader model accepted as translation
// input.
type InputVersion uint8

const (
	// InputUndefined is the zero value; never a valid translation input.
	InputUndefined InputVersion = iota

	// HLSL3 targets Shader Model 3.
	HLSL3
	// HLSL4 targets Shader Model 4.
	HLSL4
	// HLSL5 targets Shader Model 5.
	HLSL5

	// InputAuto lets the analyzer infer the minimum shader model the
	// source actually requires.
	InputAuto
)

// String returns a human-readable name for the input version.
func (v InputVersion) String() string {
	switch v {
	case HLSL3:
		return "HLSL3"
	case HLSL4:
		return "HLSL4"
	case HLSL5:
		return "HLSL5"
	case InputAuto:
		return "Auto"
	default:
		return "Undefined"
	}
}

// OutputVersion identifies a member of the GLSL/ESSL/VKSL family accepted
// as translation output. The numeric ranges below partition the enum by
// language family; IsLanguageGLSL/ESSL/VKSL below test against them.
type OutputVersion uint16

const (
	// OutputUndefined is the zero value; never a valid translation output.
	OutputUndefined OutputVersion = iota

	// GLSL desktop versions.
	GLSL110
	GLSL120
	GLSL130
	GLSL140
	GLSL150
	GLSL330
	GLSL400
	GLSL410
	GLSL420
	GLSL430
	GLSL440
	GLSL450
	GLSL460

	// ESSL (OpenGL ES Shading Language) versions.
	ESSL100
	ESSL300
	ESSL310
	ESSL320

	// VKSL: Vulkan-flavored GLSL (SPIR-V-compatible source profile).
	VKSL450

	// OutputAutoGLSL, OutputAutoESSL, OutputAutoVKSL are auto-detect
	// sentinels: the emitter raises the minimum version for the chosen
	// family monotonically as it encounters required features.
	OutputAutoGLSL
	OutputAutoESSL
	OutputAutoVKSL
)

// IsAuto reports whether v is one of the auto-detect sentinels.
func (v OutputVersion) IsAuto() bool {
	switch v {
	case OutputAutoGLSL, OutputAutoESSL, OutputAutoVKSL:
		return true
	default:
		return false
	}
}

// IsLanguageGLSL reports whether v names a desktop GLSL version (or its
// auto-detect sentinel).
func (v OutputVersion) IsLanguageGLSL() bool {
	return (v >= GLSL110 && v <= GLSL460) || v == OutputAutoGLSL
}

// IsLanguageESSL reports whether v names an OpenGL ES SL version (or its
// auto-detect sentinel).
func (v OutputVersion) IsLanguageESSL() bool {
	return (v >= ESSL100 && v <= ESSL320) || v == OutputAutoESSL
}

// IsLanguageVKSL reports whether v names a Vulkan GLSL version (or its
// auto-detect sentinel).
func (v OutputVersion) IsLanguageVKSL() bool {
	return v == VKSL450 || v == OutputAutoVKSL
}

// ShaderVersion returns the (major, minor) pair for a concrete (non-auto)
// output version. Calling it on an auto sentinel or OutputUndefined
// returns the zero ShaderVersion.
func (v OutputVersion) ShaderVersion() ShaderVersion {
	sv, ok := outputVersionTable[v]
	if !ok {
		return ShaderVersion{}
	}
	return sv
}

// Number returns the bare numeric version string GLSL uses in its
// `#version N` directive, e.g. "330" or "300" (the latter for ESSL 3.00).
func (v OutputVersion) Number() string {
	sv := v.ShaderVersion()
	return fmt.Sprintf("%d%02d", sv.Major, sv.Minor)
}

// Profile returns the profile suffix GLSL expects after the version
// number: "es" for ESSL; "core" for VKSL (VKSL 450 shares GLSL 450's
// core grammar) and for desktop GLSL >= 150. Desktop versions before 150
// have no profile token.
func (v OutputVersion) Profile() string {
	switch {
	case v.IsLanguageESSL():
		return "es"
	case v.IsLanguageVKSL():
		return "core"
	case v.ShaderVersion().AtLeast(ShaderVersion{Major: 1, Minor: 50}):
		return "core"
	default:
		return ""
	}
}

// String renders a human-readable version name, e.g. "GLSL 330" or
// "ESSL 300".
func (v OutputVersion) String() string {
	switch {
	case v == OutputAutoGLSL:
		return "GLSL (auto)"
	case v == OutputAutoESSL:
		return "ESSL (auto)"
	case v == OutputAutoVKSL:
		return "VKSL (auto)"
	case v.IsLanguageESSL():
		return "ESSL " + v.Number()
	case v.IsLanguageVKSL():
		return "VKSL " + v.Number()
	case v.IsLanguageGLSL():
		return "GLSL " + v.Number()
	default:
		return "Undefined"
	}
}

var outputVersionTable = map[OutputVersion]ShaderVersion{
	GLSL110: {1, 10},
	GLSL120: {1, 20},
	GLSL130: {1, 30},
	GLSL140: {1, 40},
	GLSL150: {1, 50},
	GLSL330: {3, 30},
	GLSL400: {4, 0},
	GLSL410: {4, 10},
	GLSL420: {4, 20},
	GLSL430: {4, 30},
	GLSL440: {4, 40},
	GLSL450: {4, 50},
	GLSL460: {4, 60},
	ESSL100: {1, 0},
	ESSL300: {3, 0},
	ESSL310: {3, 10},
	ESSL320: {3, 20},
	VKSL450: {4, 50},
}

// ShaderVersion is a totally ordered (major, minor) pair, used to gate
// feature availability throughout the emitter (§4.7 of the spec).
type ShaderVersion struct {
	Major uint8
	Minor uint8
}

// number returns Major*100+Minor for lexicographic-as-arithmetic
// comparison, matching the teacher's versionLessThan helper.
func (v ShaderVersion) number() int {
	return int(v.Major)*100 + int(v.Minor)
}

// Less reports whether v sorts before other.
func (v ShaderVersion) Less(other ShaderVersion) bool { return v.number() < other.number() }

// LessOrEqual reports whether v sorts before or equal to other.
func (v ShaderVersion) LessOrEqual(other ShaderVersion) bool { return v.number() <= other.number() }

// AtLeast reports whether v sorts at or after other (v >= other).
func (v ShaderVersion) AtLeast(other ShaderVersion) bool { return v.number() >= other.number() }

// Greater reports whether v sorts strictly after other.
func (v ShaderVersion) Greater(other ShaderVersion) bool { return v.number() > other.number() }

// Equal reports structural equality.
func (v ShaderVersion) Equal(other ShaderVersion) bool { return v == other }

// Max returns the greater of v and other, used by the emitter's
// monotonic version-raising rule (§4.7).
func (v ShaderVersion) Max(other ShaderVersion) ShaderVersion {
	if other.Greater(v) {
		return other
	}
	return v
}

// String renders "major.minor".
func (v ShaderVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
