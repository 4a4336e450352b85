// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/xsc/denoter"
)

func TestTypeDenoterSlot_MemoizesUntilReset(t *testing.T) {
	var slot TypeDenoterSlot
	assert.Nil(t, slot.Buffered())

	slot.fill(denoter.Scalar(denoter.Float))
	assert.True(t, slot.Buffered().Equals(denoter.Scalar(denoter.Float)))

	// filling again is a no-op observation point: GetTypeDenoter never
	// calls fill twice without an intervening Reset, but the slot itself
	// doesn't enforce that; it's the write-once *protocol*, not a lock.
	slot.Reset()
	assert.Nil(t, slot.Buffered())
}

func TestVarType_GetTypeDenoter_MemoizesAcrossCalls(t *testing.T) {
	vt := &VarType{TypeName: "float3", Resolved: denoter.Vector(denoter.Float, 3)}

	got, err := vt.GetTypeDenoter(nil)
	assert.NoError(t, err)
	assert.True(t, got.Equals(denoter.Vector(denoter.Float, 3)))

	// mutate Resolved directly to prove the second call reads the slot,
	// not Resolved again.
	vt.Resolved = denoter.Scalar(denoter.Int)
	got2, err := vt.GetTypeDenoter(nil)
	assert.NoError(t, err)
	assert.True(t, got2.Equals(denoter.Vector(denoter.Float, 3)), "expected memoized value, not the mutated Resolved field")
}

func TestBase_Pos(t *testing.T) {
	b := base{Loc: Pos{Line: 3, Column: 7}}
	assert.Equal(t, Pos{Line: 3, Column: 7}, b.Pos())
}
