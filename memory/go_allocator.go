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

// GoAllocator allocates through the Go runtime. Freeing is left to the
// garbage collector and in-place resizing is never possible, so
// callers always take the relocation path on growth.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (a *GoAllocator) Allocate(size, align int) ([]byte, error) {
	if size < 0 {
		panic("memory: negative allocation size")
	}
	if !isPowerOf2(align) {
		panic("memory: allocation alignment must be a power of two")
	}
	buf := make([]byte, size+align) // padding to reach an aligned address
	addr := int(addressOf(buf))
	next := roundUpToPowerOf2(addr, align)
	if addr != next {
		shift := next - addr
		return buf[shift : size+shift : size+shift], nil
	}
	return buf[:size:size], nil
}

func (a *GoAllocator) Free(b []byte) {}

func (a *GoAllocator) GrowInPlace(b []byte, newSize int) ([]byte, error) {
	return nil, ErrCannotGrow
}

func (a *GoAllocator) ShrinkInPlace(b []byte, newSize int) ([]byte, error) {
	return nil, ErrCannotGrow
}

func (a *GoAllocator) UsableSize(size int) (min, max int) {
	return size, size
}

var (
	_ Allocator = (*GoAllocator)(nil)
)
