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

package vector_test

import (
	"fmt"

	"github.com/nskywalker/advanced-vector/vector"
)

func Example() {
	v := vector.New[string]()
	defer v.Release()

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		v.PushBack(s)
		fmt.Println(v.Len(), v.Cap())
	}

	v.Erase(2)
	v.Insert(1, "x")
	fmt.Println(v.Values())

	// Output:
	// 1 1
	// 2 2
	// 3 4
	// 4 4
	// 5 8
	// [a x b d e]
}

func ExampleVector_Reserve() {
	v := vector.New[int]()
	defer v.Release()

	v.Reserve(100)
	for i := 0; i < 5; i++ {
		v.PushBack(i)
	}
	fmt.Println(v.Len(), v.Cap())

	// Output:
	// 5 100
}

func ExampleVector_All() {
	v := vector.FromSlice([]string{"x", "y"})
	defer v.Release()

	for i, s := range v.All() {
		fmt.Println(i, s)
	}

	// Output:
	// 0 x
	// 1 y
}
