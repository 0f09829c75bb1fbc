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

package solver

import (
	"fmt"

	"github.com/efinauri/strql/cue/token"
)

// UnboundVariableError is a compile-time error: a pattern referenced a
// statement name that was never declared.
type UnboundVariableError struct {
	Name string
	At   token.Pos
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}
func (e *UnboundVariableError) Position() token.Pos          { return e.At }
func (e *UnboundVariableError) InputPositions() []token.Pos  { return nil }
func (e *UnboundVariableError) Path() []string                { return nil }
func (e *UnboundVariableError) Msg() (string, []interface{}) {
	return "unbound variable %q", []interface{}{e.Name}
}

// NoTextStatementError is a compile-time error: no statement named
// TEXT (case-insensitively) was declared.
type NoTextStatementError struct{}

func (e *NoTextStatementError) Error() string                 { return "program declares no TEXT statement" }
func (e *NoTextStatementError) Position() token.Pos            { return token.NoPos }
func (e *NoTextStatementError) InputPositions() []token.Pos    { return nil }
func (e *NoTextStatementError) Path() []string                 { return nil }
func (e *NoTextStatementError) Msg() (string, []interface{}) {
	return "program declares no TEXT statement", nil
}

// NoMatchError is a solve-time error: TEXT's chart at position 0 has
// no reachable end positions at all.
type NoMatchError struct{}

func (e *NoMatchError) Error() string              { return "pattern did not match the input" }
func (e *NoMatchError) Position() token.Pos         { return token.NoPos }
func (e *NoMatchError) InputPositions() []token.Pos { return nil }
func (e *NoMatchError) Path() []string              { return nil }
func (e *NoMatchError) Msg() (string, []interface{}) {
	return "pattern did not match the input", nil
}

// PartialMatchError is a solve-time error: TEXT's chart has reachable
// end positions, but none of them is the end of the input.
type PartialMatchError struct {
	MatchedBytes int
	TotalBytes   int
}

func (e *PartialMatchError) Error() string {
	return fmt.Sprintf("pattern matched only %d of %d bytes", e.MatchedBytes, e.TotalBytes)
}
func (e *PartialMatchError) Position() token.Pos         { return token.NoPos }
func (e *PartialMatchError) InputPositions() []token.Pos { return nil }
func (e *PartialMatchError) Path() []string              { return nil }
func (e *PartialMatchError) Msg() (string, []interface{}) {
	return "pattern matched only %d of %d bytes", []interface{}{e.MatchedBytes, e.TotalBytes}
}

// AmbiguousParseError is a solve-time error: two or more derivations
// reach the end of input with identical score and preference.
type AmbiguousParseError struct{}

func (e *AmbiguousParseError) Error() string              { return "ambiguous parse" }
func (e *AmbiguousParseError) Position() token.Pos         { return token.NoPos }
func (e *AmbiguousParseError) InputPositions() []token.Pos { return nil }
func (e *AmbiguousParseError) Path() []string              { return nil }
func (e *AmbiguousParseError) Msg() (string, []interface{}) { return "ambiguous parse", nil }
