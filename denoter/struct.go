// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package denoter

import "fmt"

// StructInfo is the minimal read-only view a Struct denoter needs of its
// referenced declaration, satisfied by ast.StructDecl. Denoter never
// imports ast (that would be a cycle, since ast's Expr nodes carry
// Denoter values); this interface is the seam instead, matching Design
// Note "non-owning back-reference... use indices or generational handles
// rather than raw pointers" by keeping the reference behind a narrow
// interface rather than a concrete cross-package pointer type.
type StructInfo interface {
	// StructName returns the declared struct name, used in diagnostics
	// and in String().
	StructName() string

	// Base returns the single base struct this one inherits from, if
	// any (HLSL single inheritance only, per spec.md §3).
	Base() (StructInfo, bool)

	// NumMembers returns the number of non-base members, not counting
	// inherited members (mirrors ast.StructDecl.NumMembers()).
	NumMembers() int

	// MemberAt returns the name and denoter of the i'th non-base member,
	// 0 <= i < NumMembers().
	MemberAt(i int) (name string, dt Denoter)
}

// Struct denotes a reference to a StructDecl. The reference is
// non-owning: the StructDecl outlives the denoter for the lifetime of a
// translation, per spec.md §3's invariant.
type Struct struct {
	Decl StructInfo
}

func (Struct) denoterKind() {}

func (s Struct) String() string { return s.Decl.StructName() }

// Equals is identity equality on the referenced declaration: two Struct
// denoters are equal iff they reference the same StructDecl. StructInfo
// values wrapping the same underlying *ast.StructDecl compare equal
// under Go's interface equality (same dynamic type, same pointer value).
func (s Struct) Equals(other Denoter) bool {
	o, ok := resolveAlias(other).(Struct)
	if !ok {
		return false
	}
	return sameDecl(s.Decl, o.Decl)
}

func sameDecl(a, b StructInfo) (eq bool) {
	defer func() {
		// Some StructInfo implementations (e.g. test doubles) may embed
		// a non-comparable field; fall back to name equality rather
		// than panicking on `==`.
		if recover() != nil {
			eq = a.StructName() == b.StructName()
		}
	}()
	return a == b
}

// IsCastableTo implements §4.1's "Struct→Struct: only when identical or
// when source inherits from target transitively."
func (s Struct) IsCastableTo(target Denoter) bool {
	o, ok := resolveAlias(target).(Struct)
	if !ok {
		return false
	}
	cur := s.Decl
	for {
		if sameDecl(cur, o.Decl) {
			return true
		}
		base, ok := cur.Base()
		if !ok {
			return false
		}
		cur = base
	}
}

func (s Struct) AsArray(dims []ArrayDim) Denoter { return newArray(s, dims) }

// NumMembers returns the number of members declared across the full
// inheritance chain (base-first), matching §4.2's invariant
// `S.NumMembers() == len(S.CollectMemberTypeDenoters())`.
func (s Struct) NumMembers() int {
	n := 0
	if base, ok := s.Decl.Base(); ok {
		n += Struct{Decl: base}.NumMembers()
	}
	return n + s.Decl.NumMembers()
}

// CollectMemberTypeDenoters returns every member's denoter, base struct
// members first (§4.2's base-first shadow order).
func (s Struct) CollectMemberTypeDenoters() []Denoter {
	var out []Denoter
	if base, ok := s.Decl.Base(); ok {
		out = append(out, Struct{Decl: base}.CollectMemberTypeDenoters()...)
	}
	for i := 0; i < s.Decl.NumMembers(); i++ {
		_, dt := s.Decl.MemberAt(i)
		out = append(out, dt)
	}
	return out
}

// Member looks up name in the base chain first, then in this struct's
// own members, and returns the first match: an inherited member wins
// over an identically named member declared in this struct (the same
// order as symtab.Fetch).
func (s Struct) Member(name string) (Denoter, bool) {
	if base, ok := s.Decl.Base(); ok {
		if dt, ok := (Struct{Decl: base}).Member(name); ok {
			return dt, true
		}
	}
	return s.ownMember(name)
}

func (s Struct) ownMember(name string) (Denoter, bool) {
	for i := 0; i < s.Decl.NumMembers(); i++ {
		n, dt := s.Decl.MemberAt(i)
		if n == name {
			return dt, true
		}
	}
	return nil, false
}

// HasNonSystemValueMembers reports whether any member (own or inherited)
// is not itself flagged system-value by the caller-supplied predicate.
// The predicate is injected because "system-value-ness" is a property of
// ast.VarDecl.Semantic, which denoter does not know about; sema calls
// this with a closure over its own semantic classification.
func (s Struct) HasNonSystemValueMembers(isSystemValue func(memberName string) bool) bool {
	if base, ok := s.Decl.Base(); ok {
		if (Struct{Decl: base}).HasNonSystemValueMembers(isSystemValue) {
			return true
		}
	}
	for i := 0; i < s.Decl.NumMembers(); i++ {
		name, _ := s.Decl.MemberAt(i)
		if !isSystemValue(name) {
			return true
		}
	}
	return false
}

// AliasInfo is the minimal view an Alias denoter needs of its referenced
// AliasDecl, satisfied by ast.AliasDecl.
type AliasInfo interface {
	// AliasName returns the declared alias name.
	AliasName() string

	// Underlying returns the denoter the alias stands for. Returns nil
	// only if called before the alias's own type has been resolved,
	// which resolveAlias treats as "stop following."
	Underlying() Denoter
}

// Alias denotes a `typedef`/`using`-style alias to another denoter.
type Alias struct {
	Decl AliasInfo
}

func (Alias) denoterKind() {}

func (a Alias) String() string {
	if u := a.Decl.Underlying(); u != nil {
		return fmt.Sprintf("%s (aka %s)", a.Decl.AliasName(), u)
	}
	return a.Decl.AliasName()
}

func (a Alias) Equals(other Denoter) bool {
	return resolveAlias(a).Equals(resolveAlias(other))
}

func (a Alias) IsCastableTo(target Denoter) bool {
	return resolveAlias(a).IsCastableTo(resolveAlias(target))
}

func (a Alias) AsArray(dims []ArrayDim) Denoter { return newArray(a, dims) }
