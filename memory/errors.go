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

import "golang.org/x/xerrors"

var (
	// ErrOutOfMemory is returned by Allocate when the request cannot be
	// satisfied within the allocator's remaining capacity. It is never
	// retried internally; callers decide whether to shrink the request,
	// switch allocators, or give up.
	ErrOutOfMemory = xerrors.New("memory: out of memory")

	// ErrCannotGrow is returned by GrowInPlace and ShrinkInPlace when the
	// block cannot be resized without moving it. It is a signal to fall
	// back to allocate-copy-free, not a hard failure.
	ErrCannotGrow = xerrors.New("memory: cannot resize block in place")

	// ErrInvalidMarker is returned by Arena.ResetTo when the marker's
	// offset lies above the current top or beyond the arena's capacity.
	// The arena is left unchanged.
	ErrInvalidMarker = xerrors.New("memory: invalid marker")

	// ErrSizeOverflow is returned when a size computation overflows
	// before any allocation is attempted.
	ErrSizeOverflow = xerrors.New("memory: size computation overflow")
)
