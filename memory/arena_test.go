// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocate(t *testing.T) {
	buf := make([]byte, 8)
	a := NewArena(buf)

	assert.Equal(t, 8, a.Cap())
	assert.Zero(t, a.BytesInUse())

	b1, err := a.Allocate(4, 4)
	require.NoError(t, err)
	assert.Equal(t, addressOf(buf), addressOf(b1))
	assert.Equal(t, 4, a.BytesInUse())

	b2, err := a.Allocate(4, 4)
	require.NoError(t, err)
	assert.Equal(t, addressOf(buf)+4, addressOf(b2))
	assert.Equal(t, 8, a.BytesInUse())

	_, err = a.Allocate(4, 4)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	_, err = a.Allocate(0, 1)
	assert.ErrorIs(t, err, ErrOutOfMemory, "arena full: even empty blocks are refused")
	assert.Equal(t, 8, a.BytesInUse(), "failed allocations must not move the top")
}

func TestArenaAllocateAlignmentPadding(t *testing.T) {
	a := NewArena(make([]byte, 16))

	_, err := a.Allocate(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, a.BytesInUse())

	// Start offset rounds up to the next 4-byte boundary; the padding
	// counts as in-use bytes.
	b, err := a.Allocate(4, 4)
	require.NoError(t, err)
	off, ok := a.blockOffset(b)
	require.True(t, ok)
	assert.Equal(t, 4, off)
	assert.Equal(t, 8, a.BytesInUse())
}

func TestArenaAllocatePanics(t *testing.T) {
	a := NewArena(make([]byte, 8))
	assert.Panics(t, func() { a.Allocate(-1, 1) })
	assert.Panics(t, func() { a.Allocate(4, 3) })
	assert.Panics(t, func() { a.Allocate(4, 0) })
}

func TestArenaAllocateSizeOverflow(t *testing.T) {
	a := NewArena(make([]byte, 8))
	_, err := a.Allocate(math.MaxInt, 1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Zero(t, a.BytesInUse())
}

func TestArenaGrowInPlace(t *testing.T) {
	a := NewArena(make([]byte, 24))

	blkA, err := a.Allocate(8, 1)
	require.NoError(t, err)
	blkB, err := a.Allocate(8, 1)
	require.NoError(t, err)
	assert.Equal(t, 16, a.BytesInUse())

	// B is topmost and 8 bytes remain.
	grownB, err := a.GrowInPlace(blkB, 16)
	require.NoError(t, err)
	assert.Equal(t, addressOf(blkB), addressOf(grownB), "grow in place must not move the block")
	assert.Equal(t, 16, len(grownB))
	assert.Equal(t, 24, a.BytesInUse())

	a.Free(grownB)
	assert.Equal(t, 8, a.BytesInUse())

	// With B gone, A is topmost again.
	grownA, err := a.GrowInPlace(blkA, 16)
	require.NoError(t, err)
	assert.Equal(t, addressOf(blkA), addressOf(grownA))

	a.Free(grownA)
	assert.Zero(t, a.BytesInUse())
}

func TestArenaGrowInPlaceRefused(t *testing.T) {
	a := NewArena(make([]byte, 24))

	blkA, err := a.Allocate(8, 1)
	require.NoError(t, err)
	_, err = a.Allocate(8, 1)
	require.NoError(t, err)

	// A is buried under B.
	_, err = a.GrowInPlace(blkA, 16)
	assert.ErrorIs(t, err, ErrCannotGrow)
	assert.Equal(t, 16, a.BytesInUse(), "refused grow must not mutate the arena")

	// Not enough room left for the delta.
	blkC, err := a.Allocate(4, 1)
	require.NoError(t, err)
	_, err = a.GrowInPlace(blkC, 16)
	assert.ErrorIs(t, err, ErrCannotGrow)
	assert.Equal(t, 20, a.BytesInUse())

	// Shrinking disguised as growth.
	_, err = a.GrowInPlace(blkC, 4)
	assert.ErrorIs(t, err, ErrCannotGrow)
	_, err = a.GrowInPlace(blkC, 2)
	assert.ErrorIs(t, err, ErrCannotGrow)

	// Blocks from some other region are refused.
	foreign := make([]byte, 4)
	_, err = a.GrowInPlace(foreign, 8)
	assert.ErrorIs(t, err, ErrCannotGrow)
}

func TestArenaShrinkInPlace(t *testing.T) {
	a := NewArena(make([]byte, 16))
	b, err := a.Allocate(8, 1)
	require.NoError(t, err)

	_, err = a.ShrinkInPlace(b, 4)
	assert.ErrorIs(t, err, ErrCannotGrow)
	assert.Equal(t, 8, a.BytesInUse())
}

func TestArenaFreeLIFO(t *testing.T) {
	a := NewArena(make([]byte, 32))

	b1, _ := a.Allocate(8, 1)
	b2, _ := a.Allocate(8, 1)
	b3, _ := a.Allocate(8, 1)
	assert.Equal(t, 24, a.BytesInUse())

	a.Free(b3)
	a.Free(b2)
	a.Free(b1)
	assert.Zero(t, a.BytesInUse(), "strict LIFO frees reclaim everything")
}

func TestArenaFreeOutOfOrder(t *testing.T) {
	a := NewArena(make([]byte, 32))

	b1, _ := a.Allocate(8, 1)
	b2, _ := a.Allocate(8, 1)
	b3, _ := a.Allocate(8, 1)

	// b2 is buried: freeing it is a defined no-op.
	a.Free(b2)
	assert.Equal(t, 24, a.BytesInUse())

	// Once b3 is gone, b2's bytes are still retained; b2 itself became
	// topmost and can now be reclaimed.
	a.Free(b3)
	assert.Equal(t, 16, a.BytesInUse())
	a.Free(b2)
	assert.Equal(t, 8, a.BytesInUse())
	a.Free(b1)
	assert.Zero(t, a.BytesInUse())
}

func TestArenaFreeForeignBlock(t *testing.T) {
	a := NewArena(make([]byte, 16))
	other := NewArena(make([]byte, 16))

	_, err := a.Allocate(8, 1)
	require.NoError(t, err)
	b, err := other.Allocate(8, 1)
	require.NoError(t, err)

	a.Free(b)
	a.Free(nil)
	assert.Equal(t, 8, a.BytesInUse(), "foreign or nil blocks are ignored")
}

func TestArenaMarkerReset(t *testing.T) {
	a := NewArena(make([]byte, 32))

	_, err := a.Allocate(8, 1)
	require.NoError(t, err)
	m := a.Marker()

	_, err = a.Allocate(16, 1)
	require.NoError(t, err)
	assert.Equal(t, 24, a.BytesInUse())

	require.NoError(t, a.ResetTo(m))
	assert.Equal(t, 8, a.BytesInUse())

	// Resetting to the current top is allowed and changes nothing.
	require.NoError(t, a.ResetTo(a.Marker()))
	assert.Equal(t, 8, a.BytesInUse())

	// Resetting upward would resurrect freed memory.
	high := Marker{off: 24}
	assert.ErrorIs(t, a.ResetTo(high), ErrInvalidMarker)
	assert.Equal(t, 8, a.BytesInUse())

	// Markers beyond the region are rejected outright.
	assert.ErrorIs(t, a.ResetTo(Marker{off: 33}), ErrInvalidMarker)

	a.Reset()
	assert.Zero(t, a.BytesInUse())
}

func TestArenaHighWaterMark(t *testing.T) {
	a := NewArena(make([]byte, 32))
	assert.Zero(t, a.HighWaterMark())

	b, _ := a.Allocate(8, 1)
	assert.Equal(t, 8, a.HighWaterMark())

	grown, err := a.GrowInPlace(b, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, a.HighWaterMark())

	a.Free(grown)
	assert.Zero(t, a.BytesInUse())
	assert.Equal(t, 12, a.HighWaterMark(), "frees never lower the mark")

	_, err = a.Allocate(4, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, a.HighWaterMark())

	a.Reset()
	assert.Equal(t, 12, a.HighWaterMark(), "resets never lower the mark")

	_, err = a.Allocate(32, 1)
	require.NoError(t, err)
	assert.Equal(t, 32, a.HighWaterMark())
}

func TestArenaBytesInUseSum(t *testing.T) {
	a := NewArena(make([]byte, 64))

	want := 0
	sizes := []int{3, 5, 1, 8, 2}
	for _, sz := range sizes {
		top := a.BytesInUse()
		start := roundUpToPowerOf2(top, 4)
		_, err := a.Allocate(sz, 4)
		require.NoError(t, err)
		want = start + sz
		assert.Equal(t, want, a.BytesInUse())
		assert.LessOrEqual(t, a.BytesInUse(), a.Cap())
		assert.GreaterOrEqual(t, a.HighWaterMark(), a.BytesInUse())
	}
}

func TestArenaUsableSize(t *testing.T) {
	a := NewArena(make([]byte, 8))
	min, max := a.UsableSize(5)
	assert.Equal(t, 5, min)
	assert.Equal(t, 5, max)
}

func TestArenaBytes(t *testing.T) {
	buf := make([]byte, 8)
	a := NewArena(buf)

	b, err := a.Allocate(4, 1)
	require.NoError(t, err)
	Set(b, 0xab)

	assert.Equal(t, []byte{0xab, 0xab, 0xab, 0xab, 0, 0, 0, 0}, a.Bytes())
}
