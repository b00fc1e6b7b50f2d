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
	"bytes"

	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// MarshalJSON encodes the live elements as a JSON array.
func (v *Vector[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, x := range v.All() {
		if i != 0 {
			buf.WriteByte(',')
		}
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of v with the elements of a JSON array.
// A JSON null empties the vector. The elements are decoded into a separate
// vector, so v keeps its old contents if decoding fails.
func (v *Vector[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if t == nil {
		v.Release()
		return nil
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return xerrors.Errorf("vector must unpack from json array, found %v: %w", t, ErrInvalid)
	}

	tmp := &Vector[T]{mem: v.mem}
	for dec.More() {
		if _, err := tmp.EmplaceBack(func(p *T) error { return dec.Decode(p) }); err != nil {
			tmp.Release()
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		tmp.Release()
		return err
	}

	v.MoveFrom(tmp)
	return nil
}

var (
	_ json.Marshaler   = (*Vector[int])(nil)
	_ json.Unmarshaler = (*Vector[int])(nil)
)
