// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package version

// Registry answers capability questions about a resolved (non-auto)
// OutputVersion. It is the single place feature-gating decisions live so
// glslgen and sema never hardcode a numeric threshold inline.
type Registry struct{}

// NewRegistry returns the (stateless) capability registry.
func NewRegistry() Registry { return Registry{} }

// SupportsCompute reports whether v's language/version combination has
// compute shaders.
func (Registry) SupportsCompute(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 10})
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 4, Minor: 30})
	default:
		return false
	}
}

// SupportsGeometry reports whether v supports geometry shaders without an
// extension.
func (Registry) SupportsGeometry(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 20})
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 1, Minor: 50})
	default:
		return false
	}
}

// SupportsTessellation reports whether v supports tessellation control
// and evaluation shaders without an extension.
func (Registry) SupportsTessellation(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 20})
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 4, Minor: 0})
	default:
		return false
	}
}

// SupportsExplicitBinding reports whether `layout(binding=N)` is legal
// without an extension. Below the threshold, GL_ARB_shading_language_420pack
// is required (desktop) or the feature is unavailable (ESSL, VKSL always
// supports it).
func (Registry) SupportsExplicitBinding(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 10})
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 4, Minor: 20})
	default:
		return false
	}
}

// RequiresExplicitBindingExtension reports whether emitting an explicit
// binding layout on v requires `#extension GL_ARB_shading_language_420pack`:
// true for desktop GLSL 4.00–4.10, where the feature exists only via the
// extension; false from GLSL 4.20 on, where it is native, and false for
// ESSL/VKSL, which never need this particular extension.
func (Registry) RequiresExplicitBindingExtension(v OutputVersion) bool {
	if !v.IsLanguageGLSL() {
		return false
	}
	sv := v.ShaderVersion()
	return sv.AtLeast(ShaderVersion{Major: 4, Minor: 0}) && sv.Less(ShaderVersion{Major: 4, Minor: 20})
}

// SupportsDoublePrecision reports whether v has a `double` scalar type.
func (Registry) SupportsDoublePrecision(v OutputVersion) bool {
	if v.IsLanguageESSL() {
		return false
	}
	sv := v.ShaderVersion()
	return sv.AtLeast(ShaderVersion{Major: 4, Minor: 0})
}

// SupportsAtomics reports whether v has atomic memory functions
// (`atomicAdd`, etc.) on shader storage buffers / images.
func (Registry) SupportsAtomics(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 10})
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 4, Minor: 30})
	default:
		return false
	}
}

// SupportsInterfaceBlocks reports whether v allows `in`/`out` interface
// blocks for shader stage I/O (as opposed to only individually declared
// top-level in/out variables). Used by sema's structure-flattening
// decision (§4.6): MustResolve is always true when this is false.
func (Registry) SupportsInterfaceBlocks(v OutputVersion) bool {
	sv := v.ShaderVersion()
	switch {
	case v.IsLanguageESSL():
		return sv.AtLeast(ShaderVersion{Major: 3, Minor: 0})
	case v.IsLanguageVKSL():
		return true
	case v.IsLanguageGLSL():
		return sv.AtLeast(ShaderVersion{Major: 1, Minor: 50})
	default:
		return false
	}
}

// MinimumFor returns the lowest ShaderVersion of family that satisfies
// need, used by the AUTO-version-raising rule in the emitter. family must
// be one of OutputAutoGLSL, OutputAutoESSL, OutputAutoVKSL.
func (Registry) MinimumFor(family OutputVersion, need ShaderVersion) OutputVersion {
	var candidates []OutputVersion
	switch family {
	case OutputAutoGLSL:
		candidates = []OutputVersion{GLSL110, GLSL120, GLSL130, GLSL140, GLSL150, GLSL330, GLSL400, GLSL410, GLSL420, GLSL430, GLSL440, GLSL450, GLSL460}
	case OutputAutoESSL:
		candidates = []OutputVersion{ESSL100, ESSL300, ESSL310, ESSL320}
	case OutputAutoVKSL:
		return VKSL450
	default:
		return family
	}
	for _, c := range candidates {
		if c.ShaderVersion().AtLeast(need) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
