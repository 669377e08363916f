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
Package vector provides a growable, random-access sequence whose
storage is drawn from a memory.Allocator chosen at construction,
instead of the Go runtime.

Capacity doubles on overflow, starting from a single element; growth
first asks the allocator to extend the current block in place and only
relocates when that is refused. Against a memory.Arena this means a
vector whose block is still topmost grows without copying.

Element types that implement Releaser get explicit teardown: Release,
Drain and IntoIter call Release exactly once on every element they do
not hand to the caller, in descending index order, before the backing
block is freed.

Storage is raw bytes, which the garbage collector does not scan for
pointers. Elements containing pointers do not keep their referents
alive; the caller must hold those references somewhere the collector
can see.
*/
package vector
