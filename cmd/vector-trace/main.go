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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/nskywalker/advanced-vector/internal/trace"
)

const usage = `Vector Trace.
Usage:
  vector-trace -h | --help
  vector-trace [--json] [--stats] [<script>]
Options:
  -h --help   Show this screen.
  --json      Emit one JSON object per step instead of text.
  --stats     Print reallocation count and slot memory at the end.`

func main() {
	opts, _ := docopt.ParseDoc(usage)
	var config struct {
		JSON   bool `docopt:"--json"`
		Stats  bool
		Script string
	}
	if err := opts.Bind(&config); err != nil {
		fmt.Fprintln(os.Stderr, "error parsing arguments:", err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if config.Script != "" {
		f, err := os.Open(config.Script)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error opening script:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	ops, err := trace.Parse(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading script:", err)
		os.Exit(1)
	}

	r := trace.NewRunner()
	defer r.Release()

	emit := printStep(os.Stdout)
	if config.JSON {
		enc := json.NewEncoder(os.Stdout)
		emit = func(s trace.Step) error { return enc.Encode(s) }
	}

	runErr := r.Run(ops, emit)
	if config.Stats {
		st := r.Stats()
		fmt.Fprintf(os.Stdout, "steps=%d reallocs=%d cap=%d slots=%s\n",
			st.Steps, st.Reallocs, st.Cap, humanize.Bytes(st.SlotBytes))
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(1)
	}
}

func printStep(w io.Writer) func(trace.Step) error {
	return func(s trace.Step) error {
		mark := ""
		if s.Realloc {
			mark = " (realloc)"
		}
		_, err := fmt.Fprintf(w, "%-16s size=%d cap=%d%s [%s]\n",
			s.Op, s.Size, s.Cap, mark, strings.Join(s.Elems, ","))
		return err
	}
}
