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
	"reflect"
	"sync"
)

// slotLayout describes how slots of one element type are stored.
type slotLayout struct {
	size        int
	align       int
	pointerFree bool
}

var layouts sync.Map // reflect.Type -> slotLayout

// layoutOf resolves the layout of T once and caches it for later buffers.
func layoutOf[T any]() slotLayout {
	typ := reflect.TypeFor[T]()
	if l, ok := layouts.Load(typ); ok {
		return l.(slotLayout)
	}
	l := slotLayout{
		size:        int(typ.Size()),
		align:       typ.Align(),
		pointerFree: isPointerFree(typ),
	}
	layouts.Store(typ, l)
	return l
}

// isPointerFree reports whether values of typ hold no references the
// garbage collector must trace. Only such values may live in allocator bytes.
func isPointerFree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return typ.Len() == 0 || isPointerFree(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if !isPointerFree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}
