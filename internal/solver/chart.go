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

import "github.com/efinauri/strql/internal/ast"

// TraceEvent is one entry of a winning derivation's replay trace
// (§3). Exactly one of the VariableMatch or Capture shapes applies,
// selected by IsCapture.
type TraceEvent struct {
	IsCapture bool

	// VariableMatch
	Name  string
	Value string

	// Capture
	Clause          *ast.Capture
	HadExplicitName bool
}

// Trace is an ordered, immutable list of TraceEvents. Concatenation
// (via concatTrace) allocates a fresh slice when both sides are
// non-empty and otherwise returns the non-empty side as is; no trace is
// appended to in place, so merging two outcomes never mutates either
// source (§3's copy-on-write requirement) — a simpler stand-in for the
// reference-counted sharing the spec allows as an optimization.
type Trace []TraceEvent

func concatTrace(a, b Trace) Trace {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(Trace, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Outcome is a chart cell's content: either a unique winning
// derivation (Unique set; its Trace may be empty) or an ambiguous
// marker carrying only the
// best score/preference reached (§3).
type Outcome struct {
	Unique bool
	Score  int64
	Pref   PrefVec
	Trace  Trace // nil when Unique is false
}

// MatchMap is a chart cell's sparse representation: end position to
// outcome, for one (node, start) pair; only reachable end positions
// have an entry.
type MatchMap map[int]*Outcome

// singleMatch builds the one-entry chart used by leaf evaluators
// (§4.2): a unique match ending at nextPos, with score equal to the
// bytes consumed, an all-zero preference vector, and an empty trace.
func singleMatch(nextPos int, score int64, width int) MatchMap {
	return MatchMap{
		nextPos: {Unique: true, Score: score, Pref: newPrefVec(width)},
	}
}

// mergeInto merges newOutcome into chart at pos, applying the C5
// tie-break rules: higher (score, preference) wins outright; an exact
// tie collapses to Ambiguous regardless of whether either side was
// itself unique.
func mergeInto(chart MatchMap, pos int, newOutcome *Outcome) {
	existing, ok := chart[pos]
	if !ok {
		chart[pos] = newOutcome
		return
	}
	switch cmp := compareOutcome(newOutcome, existing); {
	case cmp > 0:
		chart[pos] = newOutcome
	case cmp < 0:
		// existing dominates; keep it.
	default:
		chart[pos] = &Outcome{Unique: false, Score: existing.Score, Pref: existing.Pref}
	}
}

// compareOutcome orders two outcomes by (score, preference), the
// dominance relation C5 uses for merging.
func compareOutcome(a, b *Outcome) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return 1
		}
		return -1
	}
	return comparePrefVec(a.Pref, b.Pref)
}

// combineSequenceStep advances chart (positions reachable so far) by
// one pattern, evaluating eval at every active position and merging
// every returned (nextPos, outcome) pair, combining scores,
// preferences, and traces additively (§4.3's Sequence/Quantifier
// combiner, shared by both).
func combineSequenceStep(chart MatchMap, eval func(pos int) MatchMap) MatchMap {
	next := MatchMap{}
	for curPos, cur := range chart {
		sub := eval(curPos)
		for nextPos, subOutcome := range sub {
			combined := &Outcome{
				Score: cur.Score + subOutcome.Score,
				Pref:  cur.Pref.add(subOutcome.Pref),
			}
			if cur.Unique && subOutcome.Unique {
				combined.Unique = true
				combined.Trace = concatTrace(cur.Trace, subOutcome.Trace)
			}
			mergeInto(next, nextPos, combined)
		}
	}
	return next
}

// mergeCharts merges every entry of src into dst in place (used by
// Alternation, where every alternative's whole chart is merged into a
// common result).
func mergeCharts(dst MatchMap, src MatchMap) {
	for pos, outcome := range src {
		mergeInto(dst, pos, outcome)
	}
}
