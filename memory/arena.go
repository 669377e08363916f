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
	"github.com/JohnCGriffin/overflow"

	"github.com/allocutils/allocutils/internal/debug"
)

// Arena is a stack-discipline bump allocator over a borrowed byte
// region. Allocation advances a single top-of-stack cursor; only the
// topmost block can be reclaimed or grown. Freeing any other block is
// a defined no-op: the bytes stay in use until Reset or ResetTo.
//
// The arena borrows buf for its lifetime and never reallocates it.
// Every block handed out becomes invalid once buf does.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	buf  []byte // backing region, borrowed from the caller
	top  int    // end offset of the most recent live allocation
	high int    // largest value top has ever held
}

// Marker is a saved top-of-stack position. ResetTo frees everything
// allocated after the marker was taken. A Marker is only meaningful
// against the arena that produced it.
type Marker struct {
	off int
}

// NewArena returns an arena allocating out of buf. The caller keeps
// ownership of buf and must keep it alive as long as the arena, or any
// block allocated from it, is in use.
func NewArena(buf []byte) *Arena {
	return &Arena{buf: buf}
}

// Allocate obtains a block of size bytes starting at the current top,
// adjusted upward so the block's offset within the arena is a multiple
// of align. Fails with ErrOutOfMemory when the aligned block would not
// fit in the remaining capacity. align must be a power of two.
func (a *Arena) Allocate(size, align int) ([]byte, error) {
	if size < 0 {
		panic("memory: negative allocation size")
	}
	if !isPowerOf2(align) {
		panic("memory: allocation alignment must be a power of two")
	}
	if a.top == len(a.buf) {
		return nil, ErrOutOfMemory
	}

	start := roundUpToPowerOf2(a.top, align)
	end, ok := overflow.Add(start, size)
	if !ok || start >= len(a.buf) || end > len(a.buf) {
		return nil, ErrOutOfMemory
	}

	a.top = end
	if a.high < a.top {
		a.high = a.top
	}
	return a.buf[start:end:end], nil
}

// Free reclaims b if it is exactly the topmost block, retracting the
// top cursor to b's start. Any other block is silently retained until
// the next Reset or ResetTo; the arena keeps no per-block metadata
// that would let it do better.
func (a *Arena) Free(b []byte) {
	off, ok := a.blockOffset(b)
	if !ok {
		return
	}
	if off+len(b) == a.top {
		a.top = off
	}
}

// GrowInPlace extends b to newSize bytes without moving it. It
// succeeds only when b is exactly the topmost block and the remaining
// capacity covers the growth; the returned slice spans the same base
// pointer. On ErrCannotGrow the arena is unchanged and the caller must
// relocate instead.
func (a *Arena) GrowInPlace(b []byte, newSize int) ([]byte, error) {
	debug.Assert(newSize > len(b), "memory: GrowInPlace with non-growing size")
	if newSize <= len(b) {
		return nil, ErrCannotGrow
	}
	if delta := newSize - len(b); len(a.buf)-a.top < delta {
		return nil, ErrCannotGrow
	}

	off, ok := a.blockOffset(b)
	if !ok {
		// Not one of ours.
		return nil, ErrCannotGrow
	}
	if off+len(b) != a.top {
		// Something was allocated on top of b.
		return nil, ErrCannotGrow
	}

	a.top = off + newSize
	if a.high < a.top {
		a.high = a.top
	}
	return a.buf[off:a.top:a.top], nil
}

// ShrinkInPlace always fails with ErrCannotGrow. Shrinking a buried
// block cannot reclaim anything under stack discipline, and shrinking
// the topmost block is left unsupported.
func (a *Arena) ShrinkInPlace(b []byte, newSize int) ([]byte, error) {
	return nil, ErrCannotGrow
}

// UsableSize reports tight bounds: blocks are never over-allocated.
// This is what lets Free and GrowInPlace recognize the topmost block
// from (pointer, length) alone.
func (a *Arena) UsableSize(size int) (min, max int) {
	return size, size
}

// Marker captures the current top so everything allocated after this
// point can be bulk-freed with ResetTo.
func (a *Arena) Marker() Marker {
	return Marker{off: a.top}
}

// Reset frees everything, retracting the top cursor to zero. All
// outstanding blocks become invalid; it is the caller's responsibility
// that none are still in use. The high-water mark is unaffected.
func (a *Arena) Reset() {
	a.top = 0
}

// ResetTo retracts the top cursor to m, freeing everything allocated
// after m was taken. Fails with ErrInvalidMarker, leaving the arena
// unchanged, if m lies above the current top (resetting upward would
// resurrect freed memory) or beyond the arena's capacity. The
// high-water mark is unaffected.
func (a *Arena) ResetTo(m Marker) error {
	if m.off > a.top || m.off > len(a.buf) {
		return ErrInvalidMarker
	}
	a.top = m.off
	return nil
}

// BytesInUse returns the number of bytes currently allocated,
// including alignment padding.
func (a *Arena) BytesInUse() int { return a.top }

// Cap returns the size of the backing region; the largest value
// BytesInUse can ever return.
func (a *Arena) Cap() int { return len(a.buf) }

// HighWaterMark returns the most bytes that have ever been in use at
// one time since the arena's creation. Reset and ResetTo do not lower
// it.
func (a *Arena) HighWaterMark() int { return a.high }

// Bytes returns the backing region. It is a view for inspection;
// mutating it clobbers live allocations.
func (a *Arena) Bytes() []byte { return a.buf }

// blockOffset translates b's base pointer into an offset within the
// arena, reporting false for anything that does not lie entirely
// inside the backing region.
func (a *Arena) blockOffset(b []byte) (int, bool) {
	if cap(b) == 0 {
		// Zero-capacity slices have no well-defined base address.
		return 0, false
	}
	base := addressOf(a.buf)
	p := addressOf(b)
	if p < base || p > base+uintptr(len(a.buf)) {
		return 0, false
	}
	off := int(p - base)
	if off+len(b) > len(a.buf) {
		return 0, false
	}
	return off, true
}

var (
	_ Allocator = (*Arena)(nil)
)
