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

// Package token holds the source-position types shared by the lexer,
// parser, and error-rendering packages.
package token

import "fmt"

// Pos describes an arbitrary source position, including the file it
// came from, a byte offset, and a line/column pair. It is deliberately
// file-registry-free: strql programs are always a single in-memory
// source string, so there is no need for the multi-file interning that
// a general-purpose compiler's token.Pos requires.
type Pos struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// NoPos is the zero value for Pos; it carries no location information.
var NoPos = Pos{}

// IsValid reports whether the position carries real location info.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Span is a half-open [Start, End) range over the source.
type Span struct {
	Start, End Pos
}

func (s Span) String() string {
	if s.Start == s.End {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
