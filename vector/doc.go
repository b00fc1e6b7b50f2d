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
Package vector provides Vector, a generic resizable array that manages the
lifetimes of its elements explicitly.

A Vector owns one memory.RawBuffer. The first Len slots hold live elements;
the rest are storage waiting to be constructed into. Appending to a full
vector allocates a buffer of twice the capacity (1 for an empty vector),
constructs the new element there, moves the old elements over and frees the
old buffer, so N appends cost O(N) moves in total.

# Element lifetimes

Element types may implement Releaser to be told when an element is destroyed
(PopBack, Erase, Resize, Clear, Set, Release, or being overwritten by Assign),
and Cloner to control how Clone and Assign duplicate them. Moving elements
between buffers is a plain transfer that never calls either hook, so growth
never duplicates anything and cannot fail once the buffer is allocated.

	v := vector.New[string]()
	defer v.Release()

	v.PushBack("a")
	v.PushBack("c")
	v.Insert(1, "b")
	for i, s := range v.All() {
		fmt.Println(i, s)
	}

# Failure guarantees

EmplaceBack and Emplace construct the new element before moving anything, so
an initializer error leaves the vector as it was. Clone, and Assign from a
source larger than the destination's capacity, build the copy separately and
leave everything untouched on failure. Assign into an existing buffer only
promises a valid vector on failure.

Preconditions such as indices, positions and popping an empty vector are not
checked. Build with the assert tag to have them verified.
*/
package vector
