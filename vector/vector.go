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
	"github.com/allocutils/allocutils/internal/debug"
	"github.com/allocutils/allocutils/memory"
)

// Releaser is implemented by element types holding resources that need
// explicit teardown. The vector's teardown paths (Release, and the
// Release of an abandoned Drain or IntoIter) call Release exactly once
// on every element they do not hand to the caller.
type Releaser interface {
	Release()
}

// Vector is a growable, random-access sequence of Ts backed by a
// memory.Allocator instead of the Go runtime. Elements at indices
// [0, Len()) are initialized; the rest of the capacity is not.
//
// Fallible operations report the allocator's error unchanged in
// meaning and leave the vector's prior state fully intact.
//
// A Vector is not safe for concurrent use, and two vectors sharing one
// arena interleave their blocks on it: freeing a buried block during
// growth retains the bytes until the arena is reset. Scope vector
// lifetimes, or use markers, when sharing an arena.
type Vector[T any] struct {
	buf rawBuffer[T]
	len int // count of initialized elements
}

// New returns an empty vector drawing storage from mem. No allocation
// happens until the first element is pushed.
func New[T any](mem memory.Allocator) *Vector[T] {
	return &Vector[T]{buf: newRawBuffer[T](mem)}
}

// WithCapacity returns an empty vector with space reserved for n
// elements, propagating the allocator's error if the reservation
// fails.
func WithCapacity[T any](mem memory.Allocator, n int) (*Vector[T], error) {
	if n < 0 {
		panic("vector: negative capacity")
	}
	v := New[T](mem)
	if err := v.buf.reserve(n); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of initialized elements.
func (v *Vector[T]) Len() int { return v.len }

// Cap returns the number of elements the vector can hold before the
// next growth.
func (v *Vector[T]) Cap() int { return v.buf.cap }

// Slice returns the initialized prefix as a plain slice. It is a
// zero-copy view: mutations are visible to the vector, and the view is
// invalidated by any operation that grows or tears down the vector.
func (v *Vector[T]) Slice() []T {
	return v.buf.elems()[:v.len:v.len]
}

// Push appends elem, growing if at capacity. On growth failure the
// element is not written and the vector is unchanged.
func (v *Vector[T]) Push(elem T) error {
	if v.len == v.buf.cap {
		if err := v.buf.grow(); err != nil {
			return err
		}
	}
	v.buf.elems()[v.len] = elem
	v.len++
	return nil
}

// Pop moves the last element out, reporting false when the vector is
// empty.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	s := v.buf.elems()
	out := s[v.len]
	s[v.len] = zero // slot is uninitialized again
	return out, true
}

// Insert places elem at index i, shifting elements [i, Len()) one slot
// right. i may equal Len(), which appends. Panics when i is out of
// range; on growth failure the vector is unchanged.
func (v *Vector[T]) Insert(i int, elem T) error {
	if i < 0 || i > v.len {
		panic("vector: insert index out of range")
	}
	if v.len == v.buf.cap {
		if err := v.buf.grow(); err != nil {
			return err
		}
	}
	s := v.buf.elems()
	if i < v.len {
		copy(s[i+1:v.len+1], s[i:v.len])
	}
	s[i] = elem
	v.len++
	return nil
}

// Remove moves the element at index i out and shifts elements
// [i+1, Len()) one slot left to close the gap. Panics when i is out of
// range.
func (v *Vector[T]) Remove(i int) T {
	if i < 0 || i >= v.len {
		panic("vector: remove index out of range")
	}
	s := v.buf.elems()
	out := s[i]
	copy(s[i:v.len-1], s[i+1:v.len])
	v.len--
	var zero T
	s[v.len] = zero
	return out
}

// Extend pushes each element in turn, stopping at the first failure.
func (v *Vector[T]) Extend(elems ...T) error {
	for _, e := range elems {
		if err := v.Push(e); err != nil {
			return err
		}
	}
	return nil
}

// Release tears the vector down: every initialized element is released
// in descending index order, then the backing block is returned to the
// allocator. The ordering is mandatory; freeing first would have
// element teardown touching freed memory. The vector is empty and
// reusable afterwards.
func (v *Vector[T]) Release() {
	releaseRange(v.buf.elems(), 0, v.len)
	v.len = 0
	v.buf.release()
}

// releaseRange releases s[front:back] in descending index order,
// zeroing each slot.
func releaseRange[T any](s []T, front, back int) {
	debug.Assert(front >= 0 && back <= len(s), "vector: release range out of bounds")
	var zero T
	for i := back - 1; i >= front; i-- {
		releaseElem(s[i])
		s[i] = zero
	}
}

func releaseElem[T any](e T) {
	if r, ok := any(e).(Releaser); ok {
		r.Release()
	}
}
