// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package solver implements the declarative string-partitioning
// engine's core: the flattened pattern graph (C1), preference vector
// (C2), match chart (C3), Viterbi evaluator (C4), outcome merger (C5),
// and capture replay (C6). Solve is the only entry point a caller
// needs: it compiles a parsed program into a Graph, runs the chart
// evaluation over the input, and — on a unique full-input match —
// replays the winning trace into a result tree.
package solver

import (
	"context"

	"github.com/efinauri/strql/internal/ast"
	"github.com/efinauri/strql/internal/value"
)

// Solve runs prog against input and returns the materialized result
// tree, or one of the errors of §7: NoTextStatementError or
// UnboundVariableError at compile time; NoMatchError,
// PartialMatchError, or AmbiguousParseError at solve time.
//
// ctx is accepted for the same reason the teacher's runtime-facing
// APIs do: so callers can wire cancellation at the call boundary. The
// solver itself never suspends or performs I/O (§5) and does not poll
// ctx mid-computation.
func Solve(ctx context.Context, prog *ast.Program, input []byte) (*value.Value, error) {
	g, err := Flatten(prog)
	if err != nil {
		return nil, err
	}

	ev := newEvaluator(g, input)
	root := ev.eval(g.TextID, 0, ast.Normal)

	if len(root) == 0 {
		return nil, &NoMatchError{}
	}

	final, ok := root[len(input)]
	if !ok {
		return nil, &PartialMatchError{
			MatchedBytes: maxActivePos(root),
			TotalBytes:   len(input),
		}
	}
	if !final.Unique {
		return nil, &AmbiguousParseError{}
	}

	return Replay(final.Trace), nil
}

// maxActivePos returns the highest end position reachable in chart,
// used as the matched-byte extent of a PartialMatchError (§7).
func maxActivePos(chart MatchMap) int {
	max := 0
	for pos := range chart {
		if pos > max {
			max = pos
		}
	}
	return max
}
