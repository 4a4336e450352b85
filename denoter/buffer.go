// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package denoter

import "fmt"

// BufferType enumerates HLSL's buffer resource kinds.
type BufferType uint8

const (
	Texture1D BufferType = iota
	Texture1DArray
	Texture2D
	Texture2DArray
	Texture2DMS
	Texture2DMSArray
	Texture3D
	TextureCube
	TextureCubeArray
	Buffer
	StructuredBuffer
	RWBuffer
	RWStructuredBuffer
	RWTexture1D
	RWTexture1DArray
	RWTexture2D
	RWTexture2DArray
	RWTexture3D
	AppendStructuredBuffer
	ConsumeStructuredBuffer
	ByteAddressBuffer
	RWByteAddressBuffer
)

func (t BufferType) String() string {
	names := [...]string{
		"Texture1D", "Texture1DArray", "Texture2D", "Texture2DArray",
		"Texture2DMS", "Texture2DMSArray", "Texture3D", "TextureCube",
		"TextureCubeArray", "Buffer", "StructuredBuffer", "RWBuffer",
		"RWStructuredBuffer", "RWTexture1D", "RWTexture1DArray",
		"RWTexture2D", "RWTexture2DArray", "RWTexture3D",
		"AppendStructuredBuffer", "ConsumeStructuredBuffer",
		"ByteAddressBuffer", "RWByteAddressBuffer",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "UnknownBuffer"
}

// IsReadWrite reports whether the buffer kind supports writes (an RW*
// or Append/Consume buffer).
func (t BufferType) IsReadWrite() bool {
	switch t {
	case RWBuffer, RWStructuredBuffer, RWTexture1D, RWTexture1DArray,
		RWTexture2D, RWTexture2DArray, RWTexture3D,
		AppendStructuredBuffer, ConsumeStructuredBuffer, RWByteAddressBuffer:
		return true
	default:
		return false
	}
}

// BufferDenoter denotes an HLSL buffer/texture resource and its element
// type (the type of one texel/element the buffer stores).
type BufferDenoter struct {
	Kind BufferType
	Elem Denoter // nil for ByteAddressBuffer variants, which are untyped
}

func (BufferDenoter) denoterKind() {}

func (b BufferDenoter) String() string {
	if b.Elem == nil {
		return b.Kind.String()
	}
	return fmt.Sprintf("%s<%s>", b.Kind, b.Elem)
}

// Equals: buffers are invariant (§4.1 "Buffer/Sampler: invariant"), so
// equality requires the same kind and identical element type.
func (b BufferDenoter) Equals(other Denoter) bool {
	o, ok := resolveAlias(other).(BufferDenoter)
	if !ok || b.Kind != o.Kind {
		return false
	}
	if b.Elem == nil || o.Elem == nil {
		return b.Elem == nil && o.Elem == nil
	}
	return b.Elem.Equals(o.Elem)
}

// IsCastableTo: buffers never implicitly convert, not even to themselves
// under a different element type.
func (b BufferDenoter) IsCastableTo(target Denoter) bool {
	return b.Equals(target)
}

func (b BufferDenoter) AsArray(dims []ArrayDim) Denoter { return newArray(b, dims) }

// SamplerType enumerates HLSL's sampler-state kinds.
type SamplerType uint8

const (
	Sampler1D SamplerType = iota
	Sampler2D
	Sampler3D
	SamplerCube
	SamplerState
	SamplerComparisonState
)

func (t SamplerType) String() string {
	names := [...]string{"sampler1D", "sampler2D", "sampler3D", "samplerCube", "SamplerState", "SamplerComparisonState"}
	if int(t) < len(names) {
		return names[t]
	}
	return "UnknownSampler"
}

// SamplerDenoter denotes an HLSL sampler object.
type SamplerDenoter struct {
	Kind SamplerType
}

func (SamplerDenoter) denoterKind() {}
func (s SamplerDenoter) String() string { return s.Kind.String() }

func (s SamplerDenoter) Equals(other Denoter) bool {
	o, ok := resolveAlias(other).(SamplerDenoter)
	return ok && s.Kind == o.Kind
}

func (s SamplerDenoter) IsCastableTo(target Denoter) bool { return s.Equals(target) }

func (s SamplerDenoter) AsArray(dims []ArrayDim) Denoter { return newArray(s, dims) }
