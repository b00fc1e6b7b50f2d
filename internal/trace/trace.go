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

// Package trace runs scripts of vector operations and reports the state of
// the vector after every step.
package trace

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"github.com/nskywalker/advanced-vector/internal/utils"
	"github.com/nskywalker/advanced-vector/vector"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// ErrSyntax is wrapped by every error reporting a malformed script line.
var ErrSyntax = errors.New("trace: syntax error")

// ErrOutOfRange is wrapped by errors for steps whose index or position falls
// outside the vector.
var ErrOutOfRange = errors.New("trace: out of range")

// MaxSize is the largest argument accepted by reserve and resize.
const MaxSize = 1 << 24

// Op is a single parsed script line.
type Op struct {
	Line int
	Name string
	Args []string
}

func (o Op) String() string {
	return strings.Join(append([]string{o.Name}, o.Args...), " ")
}

var arity = map[string]int{
	"push":    1,
	"pop":     0,
	"insert":  2,
	"erase":   1,
	"reserve": 1,
	"resize":  1,
	"set":     2,
	"clear":   0,
	"print":   0,
}

// Parse reads one operation per line. Blank lines and lines starting with #
// are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		op := Op{Line: line, Name: strings.ToLower(fields[0]), Args: fields[1:]}
		n, ok := arity[op.Name]
		if !ok {
			return nil, xerrors.Errorf("line %d: unknown operation %q: %w", line, fields[0], ErrSyntax)
		}
		if len(op.Args) != n {
			return nil, xerrors.Errorf("line %d: %s takes %d arguments, got %d: %w", line, op.Name, n, len(op.Args), ErrSyntax)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// Step is the state of the vector after one operation.
type Step struct {
	Line     int      `json:"line"`
	Op       string   `json:"op"`
	Size     int      `json:"size"`
	Cap      int      `json:"cap"`
	Elems    []string `json:"elems"`
	Realloc  bool     `json:"realloc,omitempty"`
	ErrorMsg string   `json:"error,omitempty"`
}

// Stats summarizes a run.
type Stats struct {
	Steps     int
	Reallocs  int
	Cap       int
	SlotBytes uint64
}

// Runner applies operations to a vector of strings.
type Runner struct {
	v        *vector.Vector[string]
	lastCap  int
	steps    int
	reallocs int
}

func NewRunner() *Runner {
	return &Runner{v: vector.New[string]()}
}

// Vector returns the vector the runner operates on.
func (r *Runner) Vector() *vector.Vector[string] { return r.v }

// Release frees the runner's vector.
func (r *Runner) Release() { r.v.Release() }

// Stats returns counters for the steps applied so far.
func (r *Runner) Stats() Stats {
	return Stats{
		Steps:     r.steps,
		Reallocs:  r.reallocs,
		Cap:       r.v.Cap(),
		SlotBytes: uint64(r.v.Cap()) * uint64(unsafe.Sizeof("")),
	}
}

// Run applies ops in order and calls emit after each one. A step that fails
// is reported through Step.ErrorMsg and stops the run with the same error.
func (r *Runner) Run(ops []Op, emit func(Step) error) error {
	for _, op := range ops {
		err := r.Apply(op)
		step := r.snapshot(op)
		if err != nil {
			step.ErrorMsg = err.Error()
		}
		if eerr := emit(step); eerr != nil {
			return eerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Apply runs a single operation. Index arguments are checked against the
// vector before it is touched; any panic that still escapes is returned as
// an error naming the script line.
func (r *Runner) Apply(op Op) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = utils.FormatRecoveredError("line "+strconv.Itoa(op.Line), rec)
		}
	}()

	r.steps++
	switch op.Name {
	case "push":
		r.v.PushBack(op.Args[0])
	case "pop":
		if r.v.Len() == 0 {
			return xerrors.Errorf("line %d: pop on empty vector: %w", op.Line, ErrOutOfRange)
		}
		r.v.PopBack()
	case "insert":
		i, err := r.index(op, r.v.Len())
		if err != nil {
			return err
		}
		r.v.Insert(i, op.Args[1])
	case "erase":
		i, err := r.index(op, r.v.Len()-1)
		if err != nil {
			return err
		}
		r.v.Erase(i)
	case "set":
		i, err := r.index(op, r.v.Len()-1)
		if err != nil {
			return err
		}
		r.v.Set(i, op.Args[1])
	case "reserve", "resize":
		n, err := r.index(op, MaxSize)
		if err != nil {
			return err
		}
		if op.Name == "reserve" {
			r.v.Reserve(n)
		} else {
			r.v.Resize(n)
		}
	case "clear":
		r.v.Clear()
	case "print":
	default:
		return xerrors.Errorf("line %d: unknown operation %q: %w", op.Line, op.Name, ErrSyntax)
	}
	return nil
}

// index parses the first argument of op and checks it lies in [0, hi].
func (r *Runner) index(op Op, hi int) (int, error) {
	n, err := strconv.Atoi(op.Args[0])
	if err != nil {
		return 0, xerrors.Errorf("line %d: %s: bad number %q: %w", op.Line, op.Name, op.Args[0], ErrSyntax)
	}
	if n < 0 || n > hi {
		return 0, xerrors.Errorf("line %d: %s: %d not in [0, %d]: %w", op.Line, op.Name, n, hi, ErrOutOfRange)
	}
	return n, nil
}

func (r *Runner) snapshot(op Op) Step {
	step := Step{
		Line:    op.Line,
		Op:      op.String(),
		Size:    r.v.Len(),
		Cap:     r.v.Cap(),
		Elems:   slices.Clone(r.v.Values()),
		Realloc: r.v.Cap() != r.lastCap,
	}
	if step.Elems == nil {
		step.Elems = []string{}
	}
	if step.Realloc {
		r.reallocs++
	}
	r.lastCap = r.v.Cap()
	return step
}
