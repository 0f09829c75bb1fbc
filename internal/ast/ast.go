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

// Package ast declares the types used to represent the syntax tree of a
// strql program: an ordered list of statements, each naming a pattern
// built from literals, builtins, sequencing, alternation, quantifiers,
// case-mode scopes, and variable references, with an optional capture
// clause describing where a match should be written in the result
// tree.
//
// This is the surface described in §6 of the specification: the solver
// in internal/solver consumes exactly this tree and nothing else. The
// lexer and parser that produce it live in internal/lexer and
// internal/parser.
package ast

import "github.com/efinauri/strql/cue/token"

// A Node is any node in the syntax tree.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Program is an ordered list of statements. Case-insensitive keyword
// TEXT names the root statement; its absence is a compile-time error
// (see internal/solver.NoTextStatementError).
type Program struct {
	Statements []*Statement
}

// Statement binds a name to a pattern and, optionally, a capture
// clause describing where matches of this pattern land in the result
// tree.
type Statement struct {
	Name     string
	Pattern  Pattern
	Capture  *Capture // nil if the statement does not capture
	NamePos  token.Pos
	EndPos   token.Pos
}

func (s *Statement) Pos() token.Pos { return s.NamePos }
func (s *Statement) End() token.Pos { return s.EndPos }

// Bias is a quantifier's repetition-count preference.
type Bias int

const (
	Neutral Bias = iota
	Lazy
	Greedy
)

func (b Bias) String() string {
	switch b {
	case Lazy:
		return "LAZY"
	case Greedy:
		return "GREEDY"
	default:
		return "NEUTRAL"
	}
}

// BuiltinKind enumerates the builtin leaf matchers of §3.
type BuiltinKind int

const (
	Digit BuiltinKind = iota
	Letter
	AnyChar
	Newline
	Space
	Line
)

func (k BuiltinKind) String() string {
	switch k {
	case Digit:
		return "DIGIT"
	case Letter:
		return "LETTER"
	case AnyChar:
		return "ANYCHAR"
	case Newline:
		return "NEWLINE"
	case Space:
		return "SPACE"
	case Line:
		return "LINE"
	default:
		return "?"
	}
}

// Pattern is implemented by every pattern-tree node of §3.
type Pattern interface {
	Node
	patternNode()
}

// Span is the embeddable source-range type every pattern node carries.
type Span struct {
	From, To token.Pos
}

func (s Span) Pos() token.Pos { return s.From }
func (s Span) End() token.Pos { return s.To }

// NewSpan is a convenience constructor used by the parser.
func NewSpan(from, to token.Pos) Span { return Span{From: from, To: to} }

// Literal matches a byte string exactly, modulo the enclosing case
// mode (§4.3).
type Literal struct {
	Span
	Value string
}

// VariableRef is an unresolved reference to another statement's
// pattern by name; the parser emits this, and C1 resolves it to a
// flattened node id, erroring with UnboundVariableError if the name
// was never declared.
type VariableRef struct {
	Span
	Name string
}

// Builtin matches a single scalar or run, per kind.
type Builtin struct {
	Span
	Kind BuiltinKind
}

// Sequence matches each child in order, one after another.
type Sequence struct {
	Span
	Items []Pattern
}

// Alternation matches any one child.
type Alternation struct {
	Span
	Items []Pattern
}

// UnboundedMax marks a Quantifier.Max with no upper bound.
const UnboundedMax = -1

// Quantifier repeats Child between Min and Max times inclusive. Max
// equal to UnboundedMax means unbounded.
type Quantifier struct {
	Span
	Min, Max int
	Child    Pattern
	Bias     Bias
}

// Group is semantically transparent; it exists only so that
// parenthesized sub-patterns have a syntax-tree node of their own
// (e.g. as a capture anchor).
type Group struct {
	Span
	Child Pattern
}

// CaseMode is the case policy introduced by AnyCase/Upper/Lower scopes.
type CaseMode int

const (
	Normal CaseMode = iota
	AnyCaseMode
	UpperMode
	LowerMode
)

// CaseScope wraps Child in a case-mode scope.
type CaseScope struct {
	Span
	Mode  CaseMode
	Child Pattern
}

func (*Literal) patternNode()     {}
func (*VariableRef) patternNode() {}
func (*Builtin) patternNode()     {}
func (*Sequence) patternNode()    {}
func (*Alternation) patternNode() {}
func (*Quantifier) patternNode()  {}
func (*Group) patternNode()       {}
func (*CaseScope) patternNode()   {}

// PathSegment is one step of a Capture's destination path.
type PathSegment interface {
	pathSegmentNode()
}

// Root anchors a path at the result tree root. Only meaningful as the
// first segment; ignored thereafter (§4.5 step 2).
type Root struct{}

// Field appends a literal field name.
type Field struct{ Name string }

// DynamicField appends the current captured value of Var as a field
// name, resolved at replay time.
type DynamicField struct{ Var string }

// ArrayAppend marks the path as ending in an array-append ("[]").
type ArrayAppend struct{}

func (Root) pathSegmentNode()         {}
func (Field) pathSegmentNode()        {}
func (DynamicField) pathSegmentNode() {}
func (ArrayAppend) pathSegmentNode()  {}

// Capture describes how a statement's match is written into the
// result tree: IsObject selects between writing the matched string
// and ensuring/creating a nested object at the terminal (§4.5 step 4).
type Capture struct {
	Name     string // empty if "ADD TO ..." carried no explicit name
	IsObject bool
	Path     []PathSegment
}
