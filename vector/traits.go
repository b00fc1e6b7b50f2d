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
	"reflect"
	"sync"
)

// Releaser is implemented by element types that own resources which must be
// given back when the element is destroyed. The method may be declared on T
// or on *T.
type Releaser interface {
	Release()
}

// Cloner is implemented by element types whose duplication is a deep copy
// that may fail. Element types without it are duplicated by assignment.
// The method may be declared on T or on *T.
type Cloner[T any] interface {
	Clone() (T, error)
}

// lifetime holds the element hooks of one element type. A nil hook means the
// type has no such behaviour: destruction only clears the slot, duplication
// is a plain assignment.
type lifetime[T any] struct {
	release func(*T)
	clone   func(*T) (T, error)

	// same reports whether two slots refer to the same resource. Only set
	// for pointer element types with a release hook.
	same func(a, b *T) bool
}

var (
	lifetimes    sync.Map // reflect.Type -> *lifetime[T]
	releaserType = reflect.TypeFor[Releaser]()
)

// lifetimeOf resolves the hooks of T once and caches them for every vector
// of that element type.
func lifetimeOf[T any]() *lifetime[T] {
	typ := reflect.TypeFor[T]()
	if l, ok := lifetimes.Load(typ); ok {
		return l.(*lifetime[T])
	}

	l := &lifetime[T]{}
	nilable := typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Interface
	ptr := reflect.PointerTo(typ)

	switch {
	case typ.Implements(releaserType):
		l.release = func(p *T) {
			if r, ok := any(*p).(Releaser); ok && !(nilable && isNil(r)) {
				r.Release()
			}
		}
	case ptr.Implements(releaserType):
		l.release = func(p *T) { any(p).(Releaser).Release() }
	}

	if l.release != nil && typ.Kind() == reflect.Pointer {
		l.same = func(a, b *T) bool { return any(*a) == any(*b) }
	}

	clonerType := reflect.TypeFor[Cloner[T]]()
	switch {
	case typ.Implements(clonerType):
		l.clone = func(p *T) (T, error) {
			c, ok := any(*p).(Cloner[T])
			if !ok || (nilable && isNil(c)) {
				return *p, nil
			}
			return c.Clone()
		}
	case ptr.Implements(clonerType):
		l.clone = func(p *T) (T, error) { return any(p).(Cloner[T]).Clone() }
	}

	actual, _ := lifetimes.LoadOrStore(typ, l)
	return actual.(*lifetime[T])
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
