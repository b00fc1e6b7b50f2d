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

import "iter"

// Cursor is a random-access position in a vector. The position Len (End) is
// valid to hold and compare but not to dereference. A cursor is invalidated
// by any operation that reallocates or shifts the elements it refers to.
type Cursor[T any] struct {
	v *Vector[T]
	i int
}

// Begin returns a cursor at the first element.
func (v *Vector[T]) Begin() Cursor[T] { return Cursor[T]{v: v} }

// End returns a cursor one past the last element. For an empty vector End
// equals Begin.
func (v *Vector[T]) End() Cursor[T] { return Cursor[T]{v: v, i: v.size} }

// Index returns the offset of c from the start of the vector.
func (c Cursor[T]) Index() int { return c.i }

// Valid reports whether c refers to a live element.
func (c Cursor[T]) Valid() bool { return c.v != nil && c.i >= 0 && c.i < c.v.size }

func (c Cursor[T]) Value() T        { return c.v.At(c.i) }
func (c Cursor[T]) Ptr() *T         { return c.v.Ptr(c.i) }
func (c Cursor[T]) Set(x T)         { c.v.Set(c.i, x) }
func (c Cursor[T]) Next() Cursor[T] { return c.Add(1) }
func (c Cursor[T]) Prev() Cursor[T] { return c.Add(-1) }

// Add returns c moved by n positions.
func (c Cursor[T]) Add(n int) Cursor[T] {
	c.i += n
	return c
}

// Distance returns the number of positions from c to other. Both cursors
// must belong to the same vector.
func (c Cursor[T]) Distance(other Cursor[T]) int { return other.i - c.i }

func (c Cursor[T]) Equal(other Cursor[T]) bool { return c.v == other.v && c.i == other.i }
func (c Cursor[T]) Less(other Cursor[T]) bool  { return c.i < other.i }

// All returns an iterator over index/element pairs, front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.buf.Slot(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs, back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, *v.buf.Slot(i)) {
				return
			}
		}
	}
}
