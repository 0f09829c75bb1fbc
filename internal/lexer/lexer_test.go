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

package lexer_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/efinauri/strql/internal/lexer"
)

type elt struct {
	kind lexer.Kind
	lit  string
}

var testTokens = [...]elt{
	{lexer.TEXT, "TEXT"},
	{lexer.WORD, "WORD"},
	{lexer.ALPHANUM, "ALPHANUM"},
	{lexer.ANY, "ANY"},
	{lexer.DIGIT, "DIGIT"},
	{lexer.LETTER, "LETTER"},
	{lexer.NEWLINE, "NEWLINE"},
	{lexer.SPACE, "SPACE"},
	{lexer.LINE, "LINE"},
	{lexer.GREEDY, "GREEDY"},
	{lexer.LAZY, "LAZY"},
	{lexer.ANYCASE, "ANYCASE"},
	{lexer.UPPER, "UPPER"},
	{lexer.LOWER, "LOWER"},
	{lexer.SPLITBY, "SPLITBY"},
	{lexer.ADD, "ADD"},
	{lexer.TO, "TO"},
	{lexer.ROOT, "ROOT"},
	{lexer.OBJECT, "OBJECT"},
	{lexer.IDENT, "foo"},
	{lexer.IDENT, "_bar9"},
	{lexer.STRING, ""},
	{lexer.INT, "42"},
	{lexer.ASSIGN, "="},
	{lexer.PIPE, "|"},
	{lexer.STAR, "*"},
	{lexer.PLUS, "+"},
	{lexer.QUESTION, "?"},
	{lexer.LPAREN, "("},
	{lexer.RPAREN, ")"},
	{lexer.LBRACK, "["},
	{lexer.RBRACK, "]"},
	{lexer.DOT, "."},
	{lexer.DOTDOT, ".."},
	{lexer.ARROW, "->"},
}

// source reconstructs program text from testTokens, quoting STRING
// literals the way the lexer expects to read them back.
func source() string {
	var src string
	for _, e := range testTokens {
		if e.kind == lexer.STRING {
			src += `"` + e.lit + `"` + " "
			continue
		}
		src += e.lit + " "
	}
	return src
}

func TestScan(t *testing.T) {
	l := lexer.New("test.strql", source())
	for i, e := range testTokens {
		tok := l.Scan()
		qt.Assert(t, qt.Equals(tok.Kind, e.kind), qt.Commentf("token %d", i))
		qt.Assert(t, qt.Equals(tok.Lit, e.lit), qt.Commentf("token %d", i))
	}
	qt.Assert(t, qt.Equals(l.Scan().Kind, lexer.EOF))
	qt.Assert(t, qt.HasLen(l.Errs(), 0))
}

func TestScanComments(t *testing.T) {
	l := lexer.New("test.strql", "TEXT # trailing comment\n= \"a\"")
	qt.Assert(t, qt.Equals(l.Scan().Kind, lexer.TEXT))
	qt.Assert(t, qt.Equals(l.Scan().Kind, lexer.ASSIGN))
	str := l.Scan()
	qt.Assert(t, qt.Equals(str.Kind, lexer.STRING))
	qt.Assert(t, qt.Equals(str.Lit, "a"))
}

func TestScanStringEscapes(t *testing.T) {
	l := lexer.New("test.strql", `"a\nb\tc\"d"`)
	tok := l.Scan()
	qt.Assert(t, qt.Equals(tok.Kind, lexer.STRING))
	qt.Assert(t, qt.Equals(tok.Lit, "a\nb\tc\"d"))
}

func TestScanUnterminatedString(t *testing.T) {
	l := lexer.New("test.strql", `"abc`)
	l.Scan()
	qt.Assert(t, qt.HasLen(l.Errs(), 1))
}

func TestScanIllegalCharacter(t *testing.T) {
	l := lexer.New("test.strql", "@")
	tok := l.Scan()
	qt.Assert(t, qt.Equals(tok.Kind, lexer.ILLEGAL))
	qt.Assert(t, qt.HasLen(l.Errs(), 1))
}

func TestScanDashWithoutArrow(t *testing.T) {
	l := lexer.New("test.strql", "-x")
	tok := l.Scan()
	qt.Assert(t, qt.Equals(tok.Kind, lexer.ILLEGAL))
}

func TestScanPositions(t *testing.T) {
	l := lexer.New("test.strql", "TEXT\n= a")
	first := l.Scan()
	qt.Assert(t, qt.Equals(first.Pos.Line, 1))
	second := l.Scan()
	qt.Assert(t, qt.Equals(second.Pos.Line, 2))
}

func TestKindString(t *testing.T) {
	qt.Assert(t, qt.Equals(lexer.ARROW.String(), "->"))
	qt.Assert(t, qt.Equals(lexer.TEXT.String(), "TEXT"))
	qt.Assert(t, qt.Equals(lexer.EOF.String(), "EOF"))
}
