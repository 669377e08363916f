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

// valIter is the cursor pair shared by Drain and IntoIter. It moves
// elements out of s[front:back), from either end, zeroing slots as it
// goes. One-shot: once front meets back it stays exhausted.
type valIter[T any] struct {
	s     []T
	front int
	back  int
}

func (it *valIter[T]) next() (T, bool) {
	var zero T
	if it.front == it.back {
		return zero, false
	}
	out := it.s[it.front]
	it.s[it.front] = zero
	it.front++
	return out, true
}

func (it *valIter[T]) nextBack() (T, bool) {
	var zero T
	if it.front == it.back {
		return zero, false
	}
	it.back--
	out := it.s[it.back]
	it.s[it.back] = zero
	return out, true
}

func (it *valIter[T]) remaining() int { return it.back - it.front }

// drop releases every element not yet yielded and exhausts the cursor.
func (it *valIter[T]) drop() {
	releaseRange(it.s, it.front, it.back)
	it.front = it.back
}

// Drain moves a vector's elements out one at a time, from either end.
// See Vector.Drain.
type Drain[T any] struct {
	iter valIter[T]
}

// Drain empties the vector, returning a double-ended iterator that
// moves each element out. The vector's length drops to zero
// immediately, before anything is yielded, but its backing block stays
// put: the vector must outlive the drain.
func (v *Vector[T]) Drain() *Drain[T] {
	d := &Drain[T]{iter: valIter[T]{s: v.buf.elems(), back: v.len}}
	v.len = 0
	return d
}

// Next moves the frontmost remaining element out, reporting false once
// the drain is exhausted.
func (d *Drain[T]) Next() (T, bool) { return d.iter.next() }

// NextBack moves the backmost remaining element out, reporting false
// once the drain is exhausted.
func (d *Drain[T]) NextBack() (T, bool) { return d.iter.nextBack() }

// Len returns the number of elements not yet yielded.
func (d *Drain[T]) Len() int { return d.iter.remaining() }

// Release destroys every element not yet yielded. Call it when
// abandoning a drain early; it is a no-op on an exhausted drain.
func (d *Drain[T]) Release() { d.iter.drop() }

// IntoIter owns a consumed vector's elements and backing block. See
// Vector.IntoIter.
type IntoIter[T any] struct {
	buf  rawBuffer[T] // kept alive until Release
	iter valIter[T]
}

// IntoIter consumes the vector, returning a double-ended iterator over
// all of its elements. The backing block moves into the iterator and
// stays alive until its Release, which also destroys any elements not
// yet yielded. The vector is left empty with no allocation, as if
// freshly constructed.
func (v *Vector[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{
		buf:  v.buf,
		iter: valIter[T]{s: v.buf.elems(), back: v.len},
	}
	v.buf = rawBuffer[T]{mem: v.buf.mem}
	v.len = 0
	return it
}

// Next moves the frontmost remaining element out, reporting false once
// the iterator is exhausted.
func (it *IntoIter[T]) Next() (T, bool) { return it.iter.next() }

// NextBack moves the backmost remaining element out, reporting false
// once the iterator is exhausted.
func (it *IntoIter[T]) NextBack() (T, bool) { return it.iter.nextBack() }

// Len returns the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int { return it.iter.remaining() }

// Release destroys every element not yet yielded, then returns the
// backing block to the allocator. The iterator must not be used
// afterwards.
func (it *IntoIter[T]) Release() {
	it.iter.drop()
	it.buf.release()
}
