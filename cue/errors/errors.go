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

// Package errors defines the shared error type used by the lexer,
// parser, and solver: an error that knows its source position and,
// optionally, the result-tree path it occurred at.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/efinauri/strql/cue/token"
)

// Message is an embeddable printf-style error message, kept separate
// from its position so that callers can format it without a location
// (e.g. Error() strings) or with one (Print).
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates an error message for human consumption.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

func (m *Message) Msg() (format string, args []interface{}) {
	return m.format, m.args
}

func (m *Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// Error is the interface implemented by every error the lexer, parser,
// and solver can return.
type Error interface {
	error
	// Position returns the primary source position of the error.
	Position() token.Pos
	// InputPositions reports any further positions that contributed to
	// the error, beyond the primary one. Most errors here have exactly
	// one relevant position and return nil.
	InputPositions() []token.Pos
	// Path returns the result-tree path the error relates to, if any.
	Path() []string
	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []interface{})
}

// Newf creates an Error with the given position and message.
func Newf(p token.Pos, format string, args ...interface{}) Error {
	return &posError{pos: p, Message: NewMessagef(format, args...)}
}

// NewfPath is like Newf but additionally records a result-tree path.
func NewfPath(p token.Pos, path []string, format string, args ...interface{}) Error {
	return &posError{pos: p, path: path, Message: NewMessagef(format, args...)}
}

type posError struct {
	Message
	pos  token.Pos
	path []string
}

func (e *posError) Position() token.Pos        { return e.pos }
func (e *posError) InputPositions() []token.Pos { return nil }
func (e *posError) Path() []string             { return e.path }

// List is an error that is a collection of Errors, as produced e.g. by
// parsing a program with several syntax errors.
type List []Error

func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0].Error(), len(p)-1)
}

func (p List) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}

// Sort orders the list by source position, with invalid positions first.
func (p List) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		pi, pj := p[i].Position(), p[j].Position()
		if !pi.IsValid() {
			return pj.IsValid()
		}
		if !pj.IsValid() {
			return false
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
}

// Errors flattens err into a List, unwrapping any List found along the
// error chain.
func Errors(err error) List {
	if err == nil {
		return nil
	}
	var l List
	if errors.As(err, &l) {
		return l
	}
	if e, ok := err.(Error); ok {
		return List{e}
	}
	return List{&posError{Message: NewMessagef("%s", err.Error())}}
}

// Print writes one error per line to w, in the style
//
//	file:line:column: message
func Print(w io.Writer, err error) {
	for _, e := range Errors(err) {
		if path := strings.Join(e.Path(), "."); path != "" {
			io.WriteString(w, path)
			io.WriteString(w, ": ")
		}
		pos := e.Position()
		if pos.IsValid() {
			fmt.Fprintf(w, "%s: %s\n", pos, e.Error())
		} else {
			fmt.Fprintf(w, "%s\n", e.Error())
		}
	}
}

// Details renders err as Print would, returning the result as a string.
func Details(err error) string {
	var b strings.Builder
	Print(&b, err)
	return b.String()
}
