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

// Package parser is a recursive-descent parser turning a strql token
// stream into an internal/ast.Program. It also performs the syntactic
// desugarings §4.1 names explicitly: WORD -> 0..∞ LETTER, ALPHANUM ->
// 0..∞ (LETTER|DIGIT), ANY -> 0..∞ ANYCHAR, and X SPLITBY sep -> X (sep
// X)*. The solver never re-expands these; it only ever sees the
// desugared tree.
package parser

import (
	"strconv"

	"github.com/efinauri/strql/cue/errors"
	"github.com/efinauri/strql/cue/token"
	"github.com/efinauri/strql/internal/ast"
	"github.com/efinauri/strql/internal/lexer"
)

// Parser holds the state of one parse of a single program source.
type Parser struct {
	lex  *lexer.Lexer
	tok  lexer.Token
	errs errors.List
}

// Parse lexes and parses src, returning the resulting program. Parse
// errors (and any lexical errors found along the way) are returned as
// an errors.List.
func Parse(filename, src string) (*ast.Program, error) {
	p := &Parser{lex: lexer.New(filename, src)}
	p.next()
	prog := p.parseProgram()
	p.errs = append(p.errs, p.lex.Errs()...)
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return prog, nil
}

func (p *Parser) next() { p.tok = p.lex.Scan() }

func (p *Parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs = append(p.errs, errors.Newf(pos, format, args...))
}

func (p *Parser) expect(k lexer.Kind) token.Pos {
	pos := p.tok.Pos
	if p.tok.Kind != k {
		p.errorf(pos, "expected %s, found %s %q", k, p.tok.Kind, p.tok.Lit)
	} else {
		p.next()
	}
	return pos
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.tok.Kind != lexer.EOF {
		s := p.parseStatement()
		if s == nil {
			p.next() // guarantee forward progress on malformed input
			continue
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog
}

func (p *Parser) parseStatement() *ast.Statement {
	if p.tok.Kind != lexer.IDENT && p.tok.Kind != lexer.TEXT {
		p.errorf(p.tok.Pos, "expected statement name, found %s %q", p.tok.Kind, p.tok.Lit)
		return nil
	}
	namePos := p.tok.Pos
	name := p.tok.Lit
	if p.tok.Kind == lexer.TEXT {
		name = "TEXT"
	}
	p.next()
	p.expect(lexer.ASSIGN)

	pattern := p.parseAlternation()

	var capture *ast.Capture
	if p.tok.Kind == lexer.ARROW {
		p.next()
		capture = p.parseCapture()
	}

	return &ast.Statement{
		Name:    name,
		Pattern: pattern,
		Capture: capture,
		NamePos: namePos,
		EndPos:  p.tok.Pos,
	}
}

func (p *Parser) parseCapture() *ast.Capture {
	p.expect(lexer.ADD)
	isObject := false
	if p.tok.Kind == lexer.OBJECT {
		isObject = true
		p.next()
	}
	name := ""
	if p.tok.Kind == lexer.IDENT {
		name = p.tok.Lit
		p.next()
	}
	p.expect(lexer.TO)
	path := p.parsePath()
	return &ast.Capture{Name: name, IsObject: isObject, Path: path}
}

func (p *Parser) parsePath() []ast.PathSegment {
	var path []ast.PathSegment
	switch p.tok.Kind {
	case lexer.ROOT:
		path = append(path, ast.Root{})
		p.next()
	case lexer.IDENT:
		path = append(path, ast.Field{Name: p.tok.Lit})
		p.next()
	default:
		p.errorf(p.tok.Pos, "expected ROOT or a field name, found %s %q", p.tok.Kind, p.tok.Lit)
		return path
	}
	for p.tok.Kind == lexer.DOT {
		p.next()
		if p.tok.Kind == lexer.LPAREN {
			p.next()
			name := p.tok.Lit
			p.expect(lexer.IDENT)
			p.expect(lexer.RPAREN)
			path = append(path, ast.DynamicField{Var: name})
			continue
		}
		name := p.tok.Lit
		p.expect(lexer.IDENT)
		path = append(path, ast.Field{Name: name})
	}
	if p.tok.Kind == lexer.LBRACK {
		p.next()
		p.expect(lexer.RBRACK)
		path = append(path, ast.ArrayAppend{})
	}
	return path
}

// parseAlternation parses a '|'-separated list of sequences.
func (p *Parser) parseAlternation() ast.Pattern {
	start := p.tok.Pos
	first := p.parseSequence()
	if p.tok.Kind != lexer.PIPE {
		return first
	}
	items := []ast.Pattern{first}
	for p.tok.Kind == lexer.PIPE {
		p.next()
		items = append(items, p.parseSequence())
	}
	return &ast.Alternation{Span: ast.NewSpan(start, p.tok.Pos), Items: items}
}

// parseSequence parses one or more quantified items, concatenated.
func (p *Parser) parseSequence() ast.Pattern {
	start := p.tok.Pos
	var items []ast.Pattern
	for p.startsQuantItem() {
		items = append(items, p.parseQuantItem())
	}
	if len(items) == 0 {
		p.errorf(p.tok.Pos, "expected a pattern, found %s %q", p.tok.Kind, p.tok.Lit)
	}
	if len(items) == 1 {
		return items[0]
	}
	return &ast.Sequence{Span: ast.NewSpan(start, p.tok.Pos), Items: items}
}

func (p *Parser) startsQuantItem() bool {
	switch p.tok.Kind {
	case lexer.IDENT:
		// An identifier followed by '=' names the next statement; it is
		// not a variable reference in the current pattern.
		saved := *p.lex
		next := p.lex.Scan()
		*p.lex = saved
		return next.Kind != lexer.ASSIGN
	case lexer.STRING, lexer.WORD, lexer.ALPHANUM, lexer.ANY,
		lexer.DIGIT, lexer.LETTER, lexer.NEWLINE, lexer.SPACE, lexer.LINE,
		lexer.LPAREN, lexer.GREEDY, lexer.LAZY, lexer.UPPER, lexer.LOWER,
		lexer.ANYCASE, lexer.INT:
		return true
	default:
		return false
	}
}

// quantMods bundles the modifiers collected before an atom.
type quantMods struct {
	bias      ast.Bias
	hasBound  bool
	min, max  int
	caseMode  ast.CaseMode
}

func (p *Parser) parseQuantItem() ast.Pattern {
	start := p.tok.Pos
	var mods quantMods
	mods.max = ast.UnboundedMax

	for {
		switch p.tok.Kind {
		case lexer.GREEDY:
			mods.bias = ast.Greedy
			p.next()
			continue
		case lexer.LAZY:
			mods.bias = ast.Lazy
			p.next()
			continue
		case lexer.UPPER:
			mods.caseMode = ast.UpperMode
			p.next()
			continue
		case lexer.LOWER:
			mods.caseMode = ast.LowerMode
			p.next()
			continue
		case lexer.ANYCASE:
			mods.caseMode = ast.AnyCaseMode
			p.next()
			continue
		case lexer.INT:
			mods.hasBound = true
			mods.min = p.parseInt()
			mods.max = mods.min
			if p.tok.Kind == lexer.DOTDOT {
				p.next()
				if p.tok.Kind == lexer.STAR {
					mods.max = ast.UnboundedMax
					p.next()
				} else {
					mods.max = p.parseInt()
				}
			}
			continue
		}
		break
	}

	atom := p.parseAtom()

	if mods.caseMode != ast.Normal {
		atom = &ast.CaseScope{Span: ast.NewSpan(start, p.tok.Pos), Mode: mods.caseMode, Child: atom}
	}

	// Postfix modifiers: GREEDY/LAZY, *, +, ?, SPLITBY.
	for {
		switch p.tok.Kind {
		case lexer.GREEDY:
			mods.bias = ast.Greedy
			p.next()
			continue
		case lexer.LAZY:
			mods.bias = ast.Lazy
			p.next()
			continue
		case lexer.STAR:
			p.next()
			return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: ast.UnboundedMax, Child: atom, Bias: mods.bias}
		case lexer.PLUS:
			p.next()
			return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 1, Max: ast.UnboundedMax, Child: atom, Bias: mods.bias}
		case lexer.QUESTION:
			p.next()
			return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: 1, Child: atom, Bias: mods.bias}
		case lexer.SPLITBY:
			p.next()
			sepPos := p.tok.Pos
			sep := p.tok.Lit
			p.expect(lexer.STRING)
			sepLit := &ast.Literal{Span: ast.NewSpan(sepPos, p.tok.Pos), Value: sep}
			rep := &ast.Sequence{Span: ast.NewSpan(start, p.tok.Pos), Items: []ast.Pattern{sepLit, atom}}
			tail := &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: ast.UnboundedMax, Child: rep, Bias: mods.bias}
			return &ast.Sequence{Span: ast.NewSpan(start, p.tok.Pos), Items: []ast.Pattern{atom, tail}}
		}
		break
	}

	if mods.hasBound {
		return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: mods.min, Max: mods.max, Child: atom, Bias: mods.bias}
	}
	if mods.bias != ast.Neutral {
		// A bare bias with nothing to repeat quantifies the atom once,
		// optionally (min=0,max=1) so the bias has an observable effect.
		return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: 1, Child: atom, Bias: mods.bias}
	}
	return atom
}

func (p *Parser) parseInt() int {
	lit := p.tok.Lit
	pos := p.tok.Pos
	p.expect(lexer.INT)
	n, err := strconv.Atoi(lit)
	if err != nil {
		p.errorf(pos, "invalid integer %q", lit)
		return 0
	}
	return n
}

func (p *Parser) parseAtom() ast.Pattern {
	start := p.tok.Pos
	switch p.tok.Kind {
	case lexer.STRING:
		v := p.tok.Lit
		p.next()
		return &ast.Literal{Span: ast.NewSpan(start, p.tok.Pos), Value: v}
	case lexer.IDENT:
		name := p.tok.Lit
		p.next()
		return &ast.VariableRef{Span: ast.NewSpan(start, p.tok.Pos), Name: name}
	case lexer.WORD:
		p.next()
		letter := &ast.Builtin{Span: ast.NewSpan(start, start), Kind: ast.Letter}
		return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: ast.UnboundedMax, Child: letter}
	case lexer.ALPHANUM:
		p.next()
		alt := &ast.Alternation{Span: ast.NewSpan(start, start), Items: []ast.Pattern{
			&ast.Builtin{Span: ast.NewSpan(start, start), Kind: ast.Letter},
			&ast.Builtin{Span: ast.NewSpan(start, start), Kind: ast.Digit},
		}}
		return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: ast.UnboundedMax, Child: alt}
	case lexer.ANY:
		p.next()
		any := &ast.Builtin{Span: ast.NewSpan(start, start), Kind: ast.AnyChar}
		return &ast.Quantifier{Span: ast.NewSpan(start, p.tok.Pos), Min: 0, Max: ast.UnboundedMax, Child: any}
	case lexer.DIGIT:
		p.next()
		return &ast.Builtin{Span: ast.NewSpan(start, p.tok.Pos), Kind: ast.Digit}
	case lexer.LETTER:
		p.next()
		return &ast.Builtin{Span: ast.NewSpan(start, p.tok.Pos), Kind: ast.Letter}
	case lexer.NEWLINE:
		p.next()
		return &ast.Builtin{Span: ast.NewSpan(start, p.tok.Pos), Kind: ast.Newline}
	case lexer.SPACE:
		p.next()
		return &ast.Builtin{Span: ast.NewSpan(start, p.tok.Pos), Kind: ast.Space}
	case lexer.LINE:
		p.next()
		return &ast.Builtin{Span: ast.NewSpan(start, p.tok.Pos), Kind: ast.Line}
	case lexer.LPAREN:
		p.next()
		child := p.parseAlternation()
		p.expect(lexer.RPAREN)
		return &ast.Group{Span: ast.NewSpan(start, p.tok.Pos), Child: child}
	default:
		p.errorf(start, "expected a pattern, found %s %q", p.tok.Kind, p.tok.Lit)
		p.next()
		return &ast.Literal{Span: ast.NewSpan(start, start), Value: ""}
	}
}
