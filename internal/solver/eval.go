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
	"unicode"
	"unicode/utf8"

	"github.com/efinauri/strql/internal/ast"
)

// memoKey identifies one chart cell. The case mode is folded into the
// key rather than threaded as mutable evaluator state: a variable
// reference can expose the same flattened node under more than one
// case-mode scope (e.g. both bare and under an enclosing UPPER), so
// the "one case-mode scope per path" assumption §4.3 leans on for its
// lighter-weight option does not universally hold. This is the
// spec's explicitly sanctioned fallback ("implementations may instead
// thread the case mode as part of the key; if they do, sizing must
// multiply memo width by 4") — we always take it, since it is strictly
// safer and the memo is a map, not a preallocated dense array, so the
// 4x sizing bound costs nothing when a program never changes case mode.
type memoKey struct {
	node int
	pos  int
	mode ast.CaseMode
}

// evaluator computes chart cells with memoization (C4).
type evaluator struct {
	graph *Graph
	input []byte
	width int

	memo    map[memoKey]MatchMap
	pending map[memoKey]bool // cycle guard for non-advancing self-reference
}

func newEvaluator(g *Graph, input []byte) *evaluator {
	return &evaluator{
		graph:   g,
		input:   input,
		width:   g.PrefWidth(),
		memo:    map[memoKey]MatchMap{},
		pending: map[memoKey]bool{},
	}
}

// eval computes the chart cell for (node, pos) under the given case
// mode, memoizing on (node, pos, mode).
func (e *evaluator) eval(node, pos int, mode ast.CaseMode) MatchMap {
	key := memoKey{node, pos, mode}
	if m, ok := e.memo[key]; ok {
		return m
	}
	if e.pending[key] {
		// A cyclic reference reached the same cell it is still
		// computing: contribute nothing to this round (the bottom of
		// the fixed-point lattice). Grammars where every cycle passes
		// through input-consuming steps never hit this path; it exists
		// only to keep pathological self-referential patterns
		// terminating rather than looping forever.
		return MatchMap{}
	}
	e.pending[key] = true
	m := e.evalNode(node, pos, mode)
	delete(e.pending, key)
	e.memo[key] = m
	return m
}

func (e *evaluator) evalNode(id, pos int, mode ast.CaseMode) MatchMap {
	n := &e.graph.Nodes[id]
	switch n.Kind {
	case NLiteral:
		return e.evalLiteral(n.Literal, pos, mode)
	case NBuiltin:
		return e.evalBuiltin(n.Builtin, pos, mode)
	case NVariable:
		return e.eval(n.Target, pos, mode)
	case NGroup:
		if n.Name != "" {
			return e.evalStatementNode(n, pos, mode)
		}
		return e.eval(n.Child, pos, mode)
	case NCaseScope:
		return e.eval(n.Child, pos, n.Mode)
	case NSequence:
		return e.evalSequence(n.Items, pos, mode)
	case NAlternation:
		return e.evalAlternation(n.Items, pos, mode)
	case NQuantifier:
		return e.evalQuantifier(n, pos, mode)
	default:
		panic("solver: unknown node kind")
	}
}

// evalStatementNode wraps a declared statement's pattern evaluation
// with the VariableMatch and, if present, Capture trace events §3/§4.5
// attach to a named node's match: the substring this node matched is
// recorded under its declared name so later captures can resolve
// dynamic field names and so the replay pass knows where to apply this
// statement's own capture clause, if any. The wrapping events are
// appended after the child's own sub-trace, preserving the
// left-to-right replay order §4.5 relies on.
func (e *evaluator) evalStatementNode(n *Node, pos int, mode ast.CaseMode) MatchMap {
	child := e.eval(n.Child, pos, mode)
	result := make(MatchMap, len(child))
	for endPos, outcome := range child {
		out := &Outcome{Score: outcome.Score, Pref: outcome.Pref}
		if outcome.Unique {
			matched := string(e.input[pos:endPos])
			events := make(Trace, 0, len(outcome.Trace)+2)
			events = append(events, outcome.Trace...)
			events = append(events, TraceEvent{Name: n.Name, Value: matched})
			if n.Capture != nil {
				events = append(events, TraceEvent{
					IsCapture:       true,
					Value:           matched,
					Clause:          n.Capture,
					HadExplicitName: n.Capture.Name != "",
				})
			}
			out.Unique = true
			out.Trace = events
		}
		result[endPos] = out
	}
	return result
}

func (e *evaluator) evalSequence(items []int, pos int, mode ast.CaseMode) MatchMap {
	chart := MatchMap{pos: {Unique: true, Score: 0, Pref: newPrefVec(e.width), Trace: nil}}
	for _, item := range items {
		chart = combineSequenceStep(chart, func(p int) MatchMap { return e.eval(item, p, mode) })
		if len(chart) == 0 {
			return chart
		}
	}
	return chart
}

func (e *evaluator) evalAlternation(items []int, pos int, mode ast.CaseMode) MatchMap {
	merged := MatchMap{}
	for _, item := range items {
		mergeCharts(merged, e.eval(item, pos, mode))
	}
	return merged
}

// evalQuantifier implements §4.3's repetition-count enumeration and
// local-preference tie-break.
func (e *evaluator) evalQuantifier(n *Node, pos int, mode ast.CaseMode) MatchMap {
	maxK := n.Max
	if maxK == UnboundedMax {
		maxK = len(e.input) - pos
	}

	// resultsByK[k] is the chart of positions reachable by exactly k
	// repetitions of the child.
	resultsByK := []MatchMap{{pos: {Unique: true, Score: 0, Pref: newPrefVec(e.width), Trace: nil}}}
	for k := 1; k <= maxK; k++ {
		prev := resultsByK[k-1]
		cur := combineSequenceStep(prev, func(p int) MatchMap { return e.eval(n.Child, p, mode) })
		if len(cur) == 0 {
			break
		}
		resultsByK = append(resultsByK, cur)
	}

	// candidatesByPos[nextPos] holds every (k, outcome) reaching
	// nextPos, with the local ±k bias already applied at this node's
	// own depth (§4.3's key invariant: the bias lives at this node's
	// depth slot, never propagated to ancestors).
	type candidate struct {
		outcome *Outcome
	}
	candidatesByPos := map[int][]candidate{}

	var delta int64
	switch n.Bias {
	case ast.Greedy:
		delta = 1
	case ast.Lazy:
		delta = -1
	}

	highestBuilt := len(resultsByK) - 1
	for k := n.Min; k <= highestBuilt; k++ {
		for nextPos, outcome := range resultsByK[k] {
			biased := &Outcome{
				Unique: outcome.Unique,
				Score:  outcome.Score,
				Pref:   outcome.Pref.withBiasAt(n.Depth, delta*int64(k)),
				Trace:  outcome.Trace,
			}
			candidatesByPos[nextPos] = append(candidatesByPos[nextPos], candidate{biased})
		}
	}

	result := MatchMap{}
	for nextPos, cands := range candidatesByPos {
		best := cands[0].outcome
		tie := false
		for _, c := range cands[1:] {
			switch comparePrefVec(c.outcome.Pref, best.Pref) {
			case 1:
				best = c.outcome
				tie = false
			case 0:
				tie = true
			}
		}
		if tie {
			result[nextPos] = &Outcome{Unique: false, Score: best.Score, Pref: best.Pref}
		} else {
			result[nextPos] = best
		}
	}
	return result
}

// --- leaf semantics (§4.3) ---

func (e *evaluator) evalLiteral(s string, pos int, mode ast.CaseMode) MatchMap {
	b := []byte(s)
	if pos+len(b) > len(e.input) {
		return MatchMap{}
	}
	slice := e.input[pos : pos+len(b)]
	switch mode {
	case ast.Normal:
		if string(slice) != s {
			return MatchMap{}
		}
	case ast.AnyCaseMode:
		if !equalFoldBytes(slice, b) {
			return MatchMap{}
		}
	case ast.UpperMode:
		if !equalFoldBytes(slice, b) || containsLower(slice) {
			return MatchMap{}
		}
	case ast.LowerMode:
		if !equalFoldBytes(slice, b) || containsUpper(slice) {
			return MatchMap{}
		}
	}
	return singleMatch(pos+len(b), int64(len(b)), e.width)
}

func (e *evaluator) evalBuiltin(kind ast.BuiltinKind, pos int, mode ast.CaseMode) MatchMap {
	if kind == ast.Line {
		return e.evalLine(pos, mode)
	}
	if pos >= len(e.input) {
		return MatchMap{}
	}
	r, width := utf8.DecodeRune(e.input[pos:])
	switch kind {
	case ast.Digit:
		if !isASCIIDigit(r) {
			return MatchMap{}
		}
	case ast.Letter:
		if !isASCIILetter(r) {
			return MatchMap{}
		}
		if mode == ast.UpperMode && !unicode.IsUpper(r) {
			return MatchMap{}
		}
		if mode == ast.LowerMode && !unicode.IsLower(r) {
			return MatchMap{}
		}
	case ast.Newline:
		if r != '\n' {
			return MatchMap{}
		}
		return singleMatch(pos+1, 1, e.width)
	case ast.Space:
		if r == '\n' || !unicode.IsSpace(r) {
			return MatchMap{}
		}
	case ast.AnyChar:
		if mode == ast.UpperMode && unicode.IsLower(r) {
			return MatchMap{}
		}
		if mode == ast.LowerMode && unicode.IsUpper(r) {
			return MatchMap{}
		}
	}
	return singleMatch(pos+width, int64(width), e.width)
}

// evalLine matches a run of bytes until '\n' or end of input; under
// Upper/Lower, the whole span must lack the opposite case.
func (e *evaluator) evalLine(pos int, mode ast.CaseMode) MatchMap {
	end := pos
	for end < len(e.input) && e.input[end] != '\n' {
		end++
	}
	if end == pos {
		if pos >= len(e.input) {
			return MatchMap{}
		}
	}
	span := e.input[pos:end]
	if mode == ast.UpperMode && containsLower(span) {
		return MatchMap{}
	}
	if mode == ast.LowerMode && containsUpper(span) {
		return MatchMap{}
	}
	return singleMatch(end, int64(end-pos), e.width)
}

func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func equalFoldBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if toLowerByte(a[i]) != toLowerByte(b[i]) {
			return false
		}
	}
	return true
}

func toLowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func containsLower(b []byte) bool {
	for _, c := range b {
		if c >= 'a' && c <= 'z' {
			return true
		}
	}
	return false
}

func containsUpper(b []byte) bool {
	for _, c := range b {
		if c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}
