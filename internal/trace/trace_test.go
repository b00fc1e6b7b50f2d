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

package trace_test

import (
	"strings"
	"testing"

	"github.com/nskywalker/advanced-vector/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `
# build a b c d e
push a
push b
push c
push d
push e
erase 2
INSERT 1 x
print
`

func TestParse(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, ops, 8)

	assert.Equal(t, trace.Op{Line: 3, Name: "push", Args: []string{"a"}}, ops[0])
	assert.Equal(t, "insert", ops[6].Name)
	assert.Equal(t, 9, ops[6].Line)
	assert.Equal(t, "insert 1 x", ops[6].String())
	assert.Empty(t, ops[7].Args)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unknown", "push a\nfrob 1\n", "line 2: unknown operation \"frob\""},
		{"missing argument", "insert 1\n", "line 1: insert takes 2 arguments, got 1"},
		{"extra argument", "pop 1\n", "line 1: pop takes 0 arguments, got 1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ops, err := trace.Parse(strings.NewReader(test.input))
			assert.Nil(t, ops)
			assert.ErrorIs(t, err, trace.ErrSyntax)
			assert.ErrorContains(t, err, test.msg)
		})
	}
}

func TestRun(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader(script))
	require.NoError(t, err)

	r := trace.NewRunner()
	defer r.Release()

	var steps []trace.Step
	require.NoError(t, r.Run(ops, func(s trace.Step) error {
		steps = append(steps, s)
		return nil
	}))
	require.Len(t, steps, 8)

	var caps []int
	var reallocs []bool
	for _, s := range steps[:5] {
		caps = append(caps, s.Cap)
		reallocs = append(reallocs, s.Realloc)
	}
	assert.Equal(t, []int{1, 2, 4, 4, 8}, caps)
	assert.Equal(t, []bool{true, true, true, false, true}, reallocs)

	assert.Equal(t, trace.Step{Line: 8, Op: "erase 2", Size: 4, Cap: 8, Elems: []string{"a", "b", "d", "e"}}, steps[5])
	assert.Equal(t, []string{"a", "x", "b", "d", "e"}, steps[6].Elems)
	assert.Equal(t, 5, steps[7].Size)

	st := r.Stats()
	assert.Equal(t, 8, st.Steps)
	assert.Equal(t, 4, st.Reallocs)
	assert.Equal(t, 8, st.Cap)
	assert.Equal(t, uint64(8*16), st.SlotBytes)
	assert.Equal(t, []string{"a", "x", "b", "d", "e"}, r.Vector().Values())
}

func TestRunSnapshotsAreIndependent(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader("push a\nset 0 b\nclear\n"))
	require.NoError(t, err)

	r := trace.NewRunner()
	defer r.Release()

	var steps []trace.Step
	require.NoError(t, r.Run(ops, func(s trace.Step) error {
		steps = append(steps, s)
		return nil
	}))
	assert.Equal(t, []string{"a"}, steps[0].Elems)
	assert.Equal(t, []string{"b"}, steps[1].Elems)
	assert.Equal(t, []string{}, steps[2].Elems)
	assert.Equal(t, 1, steps[2].Cap)
}

func TestRunOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		script string
		msg    string
	}{
		{"pop empty", "pop\n", "pop on empty vector"},
		{"erase past end", "push a\nerase 1\n", "erase: 1 not in [0, 0]"},
		{"erase empty", "erase 0\n", "erase: 0 not in [0, -1]"},
		{"insert past end", "push a\ninsert 2 b\n", "insert: 2 not in [0, 1]"},
		{"set negative", "push a\nset -1 b\n", "set: -1 not in [0, 0]"},
		{"negative reserve", "reserve -4\n", "reserve: -4 not in"},
		{"huge reserve", "reserve 1000000000000\n", "reserve: 1000000000000 not in [0, 16777216]"},
		{"huge resize", "push a\nresize 16777217\n", "resize: 16777217 not in [0, 16777216]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ops, err := trace.Parse(strings.NewReader(test.script))
			require.NoError(t, err)

			r := trace.NewRunner()
			defer r.Release()

			var last trace.Step
			err = r.Run(ops, func(s trace.Step) error {
				last = s
				return nil
			})
			assert.ErrorIs(t, err, trace.ErrOutOfRange)
			assert.ErrorContains(t, err, test.msg)
			assert.Equal(t, err.Error(), last.ErrorMsg)
			assert.Equal(t, len(ops), last.Line)
		})
	}
}

func TestRunBadNumber(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader("resize many\n"))
	require.NoError(t, err)

	r := trace.NewRunner()
	defer r.Release()
	err = r.Run(ops, func(trace.Step) error { return nil })
	assert.ErrorIs(t, err, trace.ErrSyntax)
}

func TestRunSizeLimit(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader("push a\nreserve 9223372036854775807\n"))
	require.NoError(t, err)

	r := trace.NewRunner()
	defer r.Release()
	err = r.Run(ops, func(trace.Step) error { return nil })
	assert.ErrorIs(t, err, trace.ErrOutOfRange)
	assert.ErrorContains(t, err, "line 2")
	assert.Equal(t, []string{"a"}, r.Vector().Values())
	assert.Equal(t, 1, r.Vector().Cap())
}

func TestRunStopsOnEmitError(t *testing.T) {
	ops, err := trace.Parse(strings.NewReader("push a\npush b\n"))
	require.NoError(t, err)

	r := trace.NewRunner()
	defer r.Release()

	stop := assert.AnError
	n := 0
	err = r.Run(ops, func(trace.Step) error {
		n++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, r.Vector().Len())
}
