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

// Allocator is the capability containers allocate raw memory through.
//
// A block is identified by the []byte returned from Allocate or
// GrowInPlace; its length is the exact block size. UsableSize returns
// tight bounds, which is what lets implementations recognize their own
// blocks from (pointer, length) alone, without auxiliary metadata.
type Allocator interface {
	// Allocate obtains a block of size bytes whose start offset is a
	// multiple of align. align must be a power of two.
	Allocate(size, align int) ([]byte, error)

	// Free returns b to the allocator. Free never fails; allocators that
	// cannot reclaim b (for example an Arena when b is not the topmost
	// block) silently retain the memory.
	Free(b []byte)

	// GrowInPlace extends b to newSize bytes without moving it, returning
	// the extended block over the same base pointer. ErrCannotGrow means
	// the caller must relocate instead; b is untouched.
	GrowInPlace(b []byte, newSize int) ([]byte, error)

	// ShrinkInPlace reduces b to newSize bytes without moving it.
	// No provided allocator supports it; it always fails with
	// ErrCannotGrow.
	ShrinkInPlace(b []byte, newSize int) ([]byte, error)

	// UsableSize reports the usable range for a block of the requested
	// size. Blocks are never over-allocated, so both bounds equal size.
	UsableSize(size int) (min, max int)
}

// DefaultAllocator is a default implementation of Allocator and can be used anywhere
// an Allocator is required.
//
// DefaultAllocator is safe to use from multiple goroutines.
var DefaultAllocator Allocator = NewGoAllocator()
