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

/*
Package memory provides a pluggable allocation capability and a
fixed-capacity stack-discipline (bump) allocator built over a
caller-supplied byte region.

The Allocator interface is the contract containers allocate through.
Three implementations are provided:

  - Arena: bump allocation over a borrowed buffer with LIFO-only
    reclamation, markers, and in-place growth of the topmost block.
  - GoAllocator: allocation through the Go runtime; in-place resizing
    is never possible, so callers always take the relocation path.
  - CheckedAllocator: a wrapper that tracks outstanding blocks and
    reports leaks in tests.

An Arena performs no internal synchronization. Sharing one across
goroutines, or across containers whose allocations interleave, is the
caller's problem to serialize: a block freed while another block sits
above it on the stack is retained until the next Reset or ResetTo.
*/
package memory
