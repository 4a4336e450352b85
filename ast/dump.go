// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import "github.com/davecgh/go-spew/spew"

// dumpConfig follows pointers and renders unexported fields (pointer
// addresses themselves are omitted) so a dump shows a declaration's
// resolved SymbolRef/DeclRef links, not just its surface syntax.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// DumpProgram renders prog's full tree, including every resolver- and
// analyzer-populated field (SymbolRef, DeclRef, BufferedTypeDenoter, ...),
// for Options.DumpAST (SPEC_FULL.md §12).
func DumpProgram(prog *Program) string {
	return dumpConfig.Sdump(prog)
}
