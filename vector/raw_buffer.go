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

package vector

import (
	"unsafe"

	"github.com/JohnCGriffin/overflow"
	"golang.org/x/xerrors"

	"github.com/allocutils/allocutils/memory"
)

// rawBuffer owns a Vector's untyped backing block: the allocator it
// came from and its capacity in elements. cap == 0 is the sentinel
// no-allocation state; buf is nil and must not be dereferenced while
// it holds.
type rawBuffer[T any] struct {
	mem memory.Allocator
	buf []byte
	cap int // in elements, not bytes
}

func newRawBuffer[T any](mem memory.Allocator) rawBuffer[T] {
	if sizeOf[T]() == 0 {
		panic("vector: zero-sized element types are not supported")
	}
	return rawBuffer[T]{mem: mem}
}

func sizeOf[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

func alignOf[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}

// elems reinterprets the block as cap elements of T. The block is
// sized for exactly cap elements, so the view covers all of it.
func (rb *rawBuffer[T]) elems() []T {
	if rb.cap == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(rb.buf))), rb.cap)
}

// grow doubles the capacity, from an initial capacity of one element.
// The current block is extended in place when the allocator permits;
// otherwise a fresh block is allocated, the contents are relocated
// bit-for-bit, and the old block is returned to the allocator. On
// error the buffer is unchanged.
func (rb *rawBuffer[T]) grow() error {
	if rb.cap == 0 {
		return rb.reserve(1)
	}

	newCap, ok := overflow.Mul(rb.cap, 2)
	if !ok {
		return memory.ErrSizeOverflow
	}
	newSize, ok := overflow.Mul(newCap, sizeOf[T]())
	if !ok {
		return memory.ErrSizeOverflow
	}

	if grown, err := rb.mem.GrowInPlace(rb.buf, newSize); err == nil {
		rb.buf, rb.cap = grown, newCap
		return nil
	}

	fresh, err := rb.mem.Allocate(newSize, alignOf[T]())
	if err != nil {
		return xerrors.Errorf("vector: growing to %d elements: %w", newCap, err)
	}
	copy(fresh, rb.buf)
	old := rb.buf
	rb.buf, rb.cap = fresh, newCap
	// Freeing a block the allocator cannot reclaim (e.g. one buried in
	// an arena) is a defined no-op; the bytes stay retained.
	rb.mem.Free(old)
	return nil
}

// reserve ensures capacity for at least n elements, relocating if a
// block already exists. No-op when the capacity already suffices.
func (rb *rawBuffer[T]) reserve(n int) error {
	if n <= rb.cap {
		return nil
	}
	size, ok := overflow.Mul(n, sizeOf[T]())
	if !ok {
		return memory.ErrSizeOverflow
	}
	fresh, err := rb.mem.Allocate(size, alignOf[T]())
	if err != nil {
		return xerrors.Errorf("vector: reserving %d elements: %w", n, err)
	}
	if rb.cap != 0 {
		copy(fresh, rb.buf)
		rb.mem.Free(rb.buf)
	}
	rb.buf, rb.cap = fresh, n
	return nil
}

// release returns the backing block to the allocator. The caller is
// responsible for tearing down any initialized elements first.
func (rb *rawBuffer[T]) release() {
	if rb.cap != 0 {
		rb.mem.Free(rb.buf)
		rb.buf, rb.cap = nil, 0
	}
}
