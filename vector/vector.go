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
	"fmt"

	"github.com/nskywalker/advanced-vector/internal/debug"
	"github.com/nskywalker/advanced-vector/memory"
)

// Vector is a resizable array of T stored in a single memory.RawBuffer.
// Slots [0, Len) hold live elements in order; slots [Len, Cap) are zeroed
// storage that no caller can reach.
//
// The zero value is an empty vector ready to use. A Vector must not be
// copied; use Clone for a deep copy and Move or MoveFrom to transfer it.
// Vector is not safe for concurrent use.
//
// Index and position arguments are unchecked preconditions. Builds with the
// assert tag verify them.
type Vector[T any] struct {
	buf  memory.RawBuffer[T]
	size int

	mem memory.Allocator
	lt  *lifetime[T]
}

// New returns an empty vector.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewWithSize returns a vector holding n zero-valued elements, with a
// capacity of exactly n.
func NewWithSize[T any](n int) *Vector[T] {
	v := New[T]()
	v.Resize(n)
	return v
}

// FromSlice returns a vector holding the elements of s, in order.
func FromSlice[T any](s []T) *Vector[T] {
	v := New[T]()
	v.AppendValues(s...)
	return v
}

func (v *Vector[T]) traits() *lifetime[T] {
	if v.lt == nil {
		v.lt = lifetimeOf[T]()
	}
	return v.lt
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the number of slots in the current buffer.
func (v *Vector[T]) Cap() int { return v.buf.Cap() }

// At returns the element at index i. i must be less than Len.
func (v *Vector[T]) At(i int) T {
	debug.Assert(i >= 0 && i < v.size, "vector: index out of range")
	return *v.buf.Slot(i)
}

// Ptr returns a reference to the element at index i. i must be less than
// Len. The reference is invalidated by any operation that reallocates.
func (v *Vector[T]) Ptr(i int) *T {
	debug.Assert(i >= 0 && i < v.size, "vector: index out of range")
	return v.buf.Slot(i)
}

// Set destroys the element at index i and stores x in its place. For pointer
// element types, storing the pointer already held at i is a no-op.
func (v *Vector[T]) Set(i int, x T) {
	debug.Assert(i >= 0 && i < v.size, "vector: index out of range")
	p := v.buf.Slot(i)
	if same := v.traits().same; same != nil && same(p, &x) {
		return
	}
	v.release(i, i+1)
	*p = x
}

// Front returns a reference to the first element. The vector must not be empty.
func (v *Vector[T]) Front() *T { return v.Ptr(0) }

// Back returns a reference to the last element. The vector must not be empty.
func (v *Vector[T]) Back() *T { return v.Ptr(v.size - 1) }

// Values returns the live elements as a slice sharing the vector's storage.
// It returns nil for an empty vector. The slice is invalidated by any
// operation that reallocates.
func (v *Vector[T]) Values() []T {
	if v.size == 0 {
		return nil
	}
	return v.buf.Slots(0, v.size)
}

// Reserve ensures the vector can hold n elements without reallocating.
// When n exceeds Cap, a buffer of exactly n slots is allocated and the
// elements are moved into it.
func (v *Vector[T]) Reserve(n int) {
	if n <= v.Cap() {
		return
	}
	nb := memory.NewRawBuffer[T](v.mem, n)
	copy(nb.Slots(0, v.size), v.buf.Slots(0, v.size))
	v.adopt(nb)
}

// Resize destroys the elements past n, or appends zero values until the
// vector holds n elements.
func (v *Vector[T]) Resize(n int) {
	debug.Assert(n >= 0, "vector: negative size")
	switch {
	case n < v.size:
		v.destroy(n, v.size)
	case n > v.size:
		v.Reserve(n)
		clear(v.buf.Slots(v.size, n))
	}
	v.size = n
}

// PushBack appends x.
func (v *Vector[T]) PushBack(x T) {
	if v.size < v.Cap() {
		*v.buf.Slot(v.size) = x
		v.size++
		return
	}
	v.EmplaceBack(func(p *T) error {
		*p = x
		return nil
	})
}

// AppendValues appends every element of xs, growing at most once.
func (v *Vector[T]) AppendValues(xs ...T) {
	need := v.size + len(xs)
	if need > v.Cap() {
		n := max(v.Cap(), 1)
		for n < need {
			n *= 2
		}
		v.Reserve(n)
	}
	copy(v.buf.Slots(v.size, need), xs)
	v.size = need
}

// EmplaceBack appends an element constructed in place by init, which receives
// a pointer to a zeroed slot. A nil init leaves the zero value.
//
// If the vector is full, the element is constructed in the new buffer before
// any existing element moves, so an init failure leaves the vector exactly as
// it was. The error is returned wrapped with ErrConstruct.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	if v.size == v.Cap() {
		nb := memory.NewRawBuffer[T](v.mem, v.nextCap())
		if err := construct(nb.Slot(v.size), init); err != nil {
			nb.Free()
			return nil, err
		}
		copy(nb.Slots(0, v.size), v.buf.Slots(0, v.size))
		v.adopt(nb)
	} else if err := construct(v.buf.Slot(v.size), init); err != nil {
		return nil, err
	}
	v.size++
	return v.buf.Slot(v.size - 1), nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T]) PopBack() {
	debug.Assert(v.size > 0, "vector: PopBack on empty vector")
	v.destroy(v.size-1, v.size)
	v.size--
}

// Insert places x at position pos, shifting later elements right, and returns
// pos. pos must be in [0, Len].
func (v *Vector[T]) Insert(pos int, x T) int {
	pos, _ = v.Emplace(pos, func(p *T) error {
		*p = x
		return nil
	})
	return pos
}

// Emplace constructs an element at position pos through init and returns pos.
// pos must be in [0, Len]. The element is always fully constructed before any
// existing element moves; on an init failure the vector is unchanged and the
// error is returned wrapped with ErrConstruct.
func (v *Vector[T]) Emplace(pos int, init func(*T) error) (int, error) {
	debug.Assert(pos >= 0 && pos <= v.size, "vector: insert position out of range")

	switch {
	case v.size == v.Cap():
		nb := memory.NewRawBuffer[T](v.mem, v.nextCap())
		if err := construct(nb.Slot(pos), init); err != nil {
			nb.Free()
			return pos, err
		}
		copy(nb.Slots(0, pos), v.buf.Slots(0, pos))
		copy(nb.Slots(pos+1, v.size+1), v.buf.Slots(pos, v.size))
		v.adopt(nb)

	case pos == v.size:
		if err := construct(v.buf.Slot(pos), init); err != nil {
			return pos, err
		}

	default:
		var tmp T
		if err := construct(&tmp, init); err != nil {
			return pos, err
		}
		s := v.buf.Slots(0, v.size+1)
		// the tail slot is uninitialized: construct it from the last element.
		// Every slot the shift writes to afterwards is live but moved-from,
		// so it is assigned over without being destroyed.
		s[v.size] = s[v.size-1]
		copy(s[pos+1:v.size], s[pos:v.size-1])
		s[pos] = tmp
	}

	v.size++
	return pos, nil
}

// Erase destroys the element at pos, shifts later elements left and returns
// pos, which now indexes the element that followed the removed one. pos must
// be in [0, Len).
func (v *Vector[T]) Erase(pos int) int {
	debug.Assert(pos >= 0 && pos < v.size, "vector: erase position out of range")
	v.release(pos, pos+1)
	s := v.buf.Slots(0, v.size)
	copy(s[pos:], s[pos+1:])
	// the last slot was moved from, nothing left to release.
	clear(s[v.size-1:])
	v.size--
	return pos
}

// Clear destroys every element. The capacity is kept.
func (v *Vector[T]) Clear() {
	v.destroy(0, v.size)
	v.size = 0
}

// Release destroys every element and frees the buffer. The vector is left
// empty and may be reused.
func (v *Vector[T]) Release() {
	v.Clear()
	v.buf.Free()
}

// Swap exchanges the contents of v and other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
	v.mem, other.mem = other.mem, v.mem
}

// Clone returns a deep copy of v with a capacity of exactly Len. Elements are
// duplicated through their Clone method when they have one. If any
// duplication fails, the partial copy is destroyed, v is untouched and the
// error is returned wrapped with ErrClone.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := &Vector[T]{mem: v.mem, lt: v.lt}
	if v.size == 0 {
		return out, nil
	}

	out.buf.Swap(memory.NewRawBuffer[T](v.mem, v.size))
	for i := 0; i < v.size; i++ {
		x, err := v.duplicate(i)
		if err != nil {
			out.Release()
			return nil, err
		}
		*out.buf.Slot(i) = x
		out.size++
	}
	return out, nil
}

// Assign replaces the contents of v with a deep copy of src.
//
// When src does not fit in v's buffer, the copy is built separately and only
// swapped in once complete: a failure leaves v untouched. Otherwise v's
// buffer is reused, overwriting elements in place; a failure then leaves v
// valid but holding a mix of old and copied elements.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}

	if src.size > v.Cap() {
		tmp, err := src.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Release()
		return nil
	}

	common := min(v.size, src.size)
	for i := 0; i < common; i++ {
		x, err := src.duplicate(i)
		if err != nil {
			return err
		}
		v.release(i, i+1)
		*v.buf.Slot(i) = x
	}

	if src.size < v.size {
		v.destroy(src.size, v.size)
		v.size = src.size
		return nil
	}

	for i := v.size; i < src.size; i++ {
		x, err := src.duplicate(i)
		if err != nil {
			return err
		}
		*v.buf.Slot(i) = x
		v.size++
	}
	return nil
}

// MoveFrom destroys the contents of v and takes over the buffer and elements
// of src, leaving src empty.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	v.Swap(src)
}

// Move transfers the buffer and elements of v to a new vector, leaving v
// empty.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{mem: v.mem, lt: v.lt}
	out.Swap(v)
	return out
}

func (v *Vector[T]) nextCap() int {
	if c := v.Cap(); c > 0 {
		return 2 * c
	}
	return 1
}

// adopt makes nb the vector's buffer. The live elements must already have
// been moved into nb; their old slots are moved-from and only cleared.
func (v *Vector[T]) adopt(nb *memory.RawBuffer[T]) {
	debug.Log(func() string {
		return fmt.Sprintf("vector: moved %d elements from %d to %d slots", v.size, v.Cap(), nb.Cap())
	})
	clear(v.buf.Slots(0, v.size))
	v.buf.Swap(nb)
	nb.Free()
}

// release runs the element destructors of [lo, hi) without clearing the slots.
func (v *Vector[T]) release(lo, hi int) {
	fn := v.traits().release
	if fn == nil {
		return
	}
	s := v.buf.Slots(lo, hi)
	for i := range s {
		fn(&s[i])
	}
}

// destroy runs the element destructors of [lo, hi) and clears the slots.
func (v *Vector[T]) destroy(lo, hi int) {
	v.release(lo, hi)
	clear(v.buf.Slots(lo, hi))
}

// duplicate returns a copy of element i made through its Clone method, or by
// assignment for element types without one.
func (v *Vector[T]) duplicate(i int) (T, error) {
	p := v.buf.Slot(i)
	fn := v.traits().clone
	if fn == nil {
		return *p, nil
	}
	x, err := fn(p)
	if err != nil {
		return x, fmt.Errorf("%w: element %d: %w", ErrClone, i, err)
	}
	return x, nil
}

func construct[T any](p *T, init func(*T) error) error {
	if init == nil {
		return nil
	}
	if err := init(p); err != nil {
		var zero T
		*p = zero
		return fmt.Errorf("%w: %w", ErrConstruct, err)
	}
	return nil
}
