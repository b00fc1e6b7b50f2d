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

import (
	"errors"
	"math"
	"strconv"
	"unsafe"

	"github.com/JohnCGriffin/overflow"
	"github.com/nskywalker/advanced-vector/internal/debug"
	"golang.org/x/xerrors"
)

// ErrAllocation is wrapped by the value a RawBuffer panics with when a block
// of the requested capacity cannot be sized.
var ErrAllocation = errors.New("memory: allocation failed")

const maxAllocSize = math.MaxInt - alignment

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RawBuffer is a block of storage for a fixed number of T slots. It does not
// know which slots hold live values; its owner constructs and destroys
// elements in the slots and must have destroyed them before calling Free.
//
// A RawBuffer has exactly one owner. It must not be copied; ownership moves
// with Swap or Take.
//
// Slots of element types that contain no pointers are carved out of the
// allocator's byte blocks. Element types with pointers get a GC-visible
// slot array instead, since the collector does not scan allocator bytes.
type RawBuffer[T any] struct {
	noCopy noCopy

	mem   Allocator
	block []byte
	slots []T
}

// NewRawBuffer returns a buffer with room for n slots. No memory is requested
// when n is zero. A nil mem selects DefaultAllocator.
//
// NewRawBuffer panics with an error wrapping ErrAllocation if n is negative or
// n slots do not fit in the address space.
func NewRawBuffer[T any](mem Allocator, n int) *RawBuffer[T] {
	if mem == nil {
		mem = DefaultAllocator
	}
	b := &RawBuffer[T]{mem: mem}
	if n == 0 {
		return b
	}

	layout := layoutOf[T]()
	nbytes, ok := overflow.Mul(n, layout.size)
	if n < 0 || !ok || nbytes > maxAllocSize {
		panic(xerrors.Errorf("memory: cannot allocate %d slots of %d bytes: %w", n, layout.size, ErrAllocation))
	}

	if !layout.pointerFree || layout.size == 0 {
		b.slots = make([]T, n)
		return b
	}

	block := mem.Allocate(nbytes)
	debug.Assert(isMultipleOfPowerOf2(int(addressOf(block)), layout.align), func() string {
		return "memory: block not aligned to " + strconv.Itoa(layout.align)
	})
	b.block = block
	b.slots = unsafe.Slice((*T)(unsafe.Pointer(&block[0])), n)
	return b
}

// Cap returns the number of slots in the block.
func (b *RawBuffer[T]) Cap() int { return len(b.slots) }

// Slot returns the address of slot i. i must be less than Cap.
func (b *RawBuffer[T]) Slot(i int) *T {
	debug.Assert(i >= 0 && i < len(b.slots), "memory: slot index out of range")
	return &b.slots[i]
}

// Slots returns the slots in [lo, hi). hi may equal Cap, which makes the
// one-past-the-end position addressable without ever exposing a slot there.
func (b *RawBuffer[T]) Slots(lo, hi int) []T {
	debug.Assert(lo >= 0 && lo <= hi && hi <= len(b.slots), "memory: slot range out of bounds")
	return b.slots[lo:hi:hi]
}

// Base returns the address of the first slot, or nil for an empty buffer.
func (b *RawBuffer[T]) Base() *T {
	if len(b.slots) == 0 {
		return nil
	}
	return &b.slots[0]
}

// Swap exchanges the blocks owned by b and other.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	b.mem, other.mem = other.mem, b.mem
	b.block, other.block = other.block, b.block
	b.slots, other.slots = other.slots, b.slots
}

// Take moves the block out of b into a new owner. b is left empty and remains
// safe to Free.
func (b *RawBuffer[T]) Take() *RawBuffer[T] {
	out := &RawBuffer[T]{mem: b.mem, block: b.block, slots: b.slots}
	b.block, b.slots = nil, nil
	return out
}

// Free returns the block to its allocator without touching the slots'
// contents. Free on an empty buffer does nothing.
func (b *RawBuffer[T]) Free() {
	if b.block != nil {
		b.mem.Free(b.block)
	}
	b.block, b.slots = nil, nil
}
