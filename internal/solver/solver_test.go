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

package solver_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/efinauri/strql/internal/parser"
	"github.com/efinauri/strql/internal/solver"
)

func solveSrc(t *testing.T, src, input string) (string, error) {
	t.Helper()
	prog, err := parser.Parse("test.strql", src)
	qt.Assert(t, qt.IsNil(err))
	result, err := solver.Solve(context.Background(), prog, []byte(input))
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(result)
	qt.Assert(t, qt.IsNil(err))
	return string(out), nil
}

// unmarshalAny decodes a JSON literal into a generic Go value, for use
// as the "want" side of qt.JSONEquals.
func unmarshalAny(t *testing.T, jsonText string) any {
	t.Helper()
	var v any
	qt.Assert(t, qt.IsNil(json.Unmarshal([]byte(jsonText), &v)))
	return v
}

// These are the end-to-end scenarios of spec §8 (S1–S7).

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		prog string
		in   string
		want string
	}{
		{
			name: "S1 named capture under root",
			prog: `TEXT = "Name: " name
name = WORD -> ADD name TO ROOT`,
			in:   "Name: Alice",
			want: `{"name":"Alice"}`,
		},
		{
			name: "S2 greedy split-by array",
			prog: `TEXT = color GREEDY SPLITBY ", "
color = WORD -> ADD color TO ROOT.colors[]`,
			in:   "red, green, blue",
			want: `{"colors":["red","green","blue"]}`,
		},
		{
			name: "S3 greedy split-by with unbiased words",
			prog: `TEXT = w GREEDY SPLITBY "."
w = ANY -> ADD TO ROOT.results[]`,
			in:   "a. b. c.",
			want: `{"results":["a"," b"," c"]}`,
		},
		{
			name: "S4 lazy split-by with greedy word",
			prog: `TEXT = w LAZY SPLITBY "."
w = GREEDY ANY -> ADD TO ROOT.results[]`,
			in:   "a. b. c.",
			want: `{"results":["a. b. c."]}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := solveSrc(t, tc.prog, tc.in)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.JSONEquals([]byte(got), unmarshalAny(t, tc.want)))
		})
	}
}

func TestAmbiguousParse(t *testing.T) {
	// S5: no bias on either the split-by or the captured word leaves
	// every split point equally preferred.
	prog := `TEXT = w SPLITBY "."
w = ANY -> ADD TO ROOT.results[]`
	_, err := solveSrc(t, prog, "a. b. c.")
	var ambErr *solver.AmbiguousParseError
	qt.Assert(t, qt.IsTrue(errors.As(err, &ambErr)))
}

func TestPartialMatch(t *testing.T) {
	// S6: 2..4 DIGIT against 5 digits can only ever consume 4.
	prog := `TEXT = 2..4 DIGIT`
	_, err := solveSrc(t, prog, "12345")
	var partial *solver.PartialMatchError
	qt.Assert(t, qt.IsTrue(errors.As(err, &partial)))
	qt.Assert(t, qt.Equals(partial.MatchedBytes, 4))
	qt.Assert(t, qt.Equals(partial.TotalBytes, 5))
}

func TestNoMatch(t *testing.T) {
	// S7: UPPER WORD cannot match a mixed-case word.
	prog := `TEXT = UPPER WORD`
	_, err := solveSrc(t, prog, "Hello")
	var noMatch *solver.NoMatchError
	qt.Assert(t, qt.IsTrue(errors.As(err, &noMatch)))
}

func TestScoreEqualsByteCoverage(t *testing.T) {
	// Property 2: on a unique successful match, score == len(input).
	prog := `TEXT = "abc" "def"`
	got, err := solveSrc(t, prog, "abcdef")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.JSONEquals([]byte(got), unmarshalAny(t, `{}`)))
}

func TestDeterminism(t *testing.T) {
	// Property 1: two solves of the same (program, input) agree.
	prog := `TEXT = "Name: " name
name = WORD -> ADD name TO ROOT`
	in := "Name: Alice"
	got1, err1 := solveSrc(t, prog, in)
	got2, err2 := solveSrc(t, prog, in)
	qt.Assert(t, qt.IsNil(err1))
	qt.Assert(t, qt.IsNil(err2))
	qt.Assert(t, qt.Equals(got1, got2))
}

func TestUnboundVariable(t *testing.T) {
	_, err := parser.Parse("test.strql", `TEXT = nope`)
	qt.Assert(t, qt.IsNil(err)) // parses fine; the name resolves at flatten time
	prog, _ := parser.Parse("test.strql", `TEXT = nope`)
	_, flattenErr := solver.Flatten(prog)
	var unbound *solver.UnboundVariableError
	qt.Assert(t, qt.IsTrue(errors.As(flattenErr, &unbound)))
	qt.Assert(t, qt.Equals(unbound.Name, "nope"))
}

func TestNoTextStatement(t *testing.T) {
	prog, err := parser.Parse("test.strql", `greeting = "hi"`)
	qt.Assert(t, qt.IsNil(err))
	_, flattenErr := solver.Flatten(prog)
	var noText *solver.NoTextStatementError
	qt.Assert(t, qt.IsTrue(errors.As(flattenErr, &noText)))
}

func TestDynamicFieldName(t *testing.T) {
	prog := `TEXT = key ": " val
key = WORD -> ADD key TO ROOT
val = WORD -> ADD val TO ROOT.(key)`
	got, err := solveSrc(t, prog, "color: red")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.JSONEquals([]byte(got), unmarshalAny(t, `{"key":"color","color":"red"}`)))
}
