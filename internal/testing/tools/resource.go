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

// Package tools provides element types that record their own lifetimes, for
// tests of containers that construct, move and destroy values.
package tools

import (
	"errors"
	"fmt"
)

// ErrCloneFailed is returned by Resource.Clone once the tracker's clone
// budget is used up.
var ErrCloneFailed = errors.New("tools: clone failed")

// Tracker keeps count of the Resources it created.
type Tracker struct {
	Live     int // created or cloned and not yet released
	Released int
	Clones   int

	// CloneBudget is the number of clones that succeed before Clone starts
	// failing. A negative budget never fails.
	CloneBudget int

	released map[int]int
}

// NewTracker returns a tracker whose clones never fail.
func NewTracker() *Tracker {
	return &Tracker{CloneBudget: -1, released: make(map[int]int)}
}

// New returns a live resource with the given id.
func (tr *Tracker) New(id int) *Resource {
	tr.Live++
	return &Resource{ID: id, tr: tr}
}

// ReleaseCount returns how many times resources with the given id were released.
func (tr *Tracker) ReleaseCount(id int) int { return tr.released[id] }

// Resource is an element with reference semantics that reports releases and
// clones to its tracker. Releasing the same resource twice panics.
type Resource struct {
	ID int

	tr   *Tracker
	dead bool
}

func (r *Resource) Release() {
	if r.dead {
		panic(fmt.Sprintf("tools: resource %d released twice", r.ID))
	}
	r.dead = true
	r.tr.Live--
	r.tr.Released++
	r.tr.released[r.ID]++
}

func (r *Resource) Clone() (*Resource, error) {
	if r.tr.CloneBudget == 0 {
		return nil, ErrCloneFailed
	}
	if r.tr.CloneBudget > 0 {
		r.tr.CloneBudget--
	}
	r.tr.Clones++
	return r.tr.New(r.ID), nil
}

// Released reports whether r was released.
func (r *Resource) Released() bool { return r.dead }

// IDs returns the ids of rs, in order.
func IDs(rs []*Resource) []int {
	ids := make([]int, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}
