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

// PrefVec is the lexicographic preference tuple of §3/§4.3: one
// signed integer per syntactic depth, compared most-significant-first
// (outer quantifiers dominate inner ones).
type PrefVec []int64

// newPrefVec returns an all-zero preference vector of the given width.
func newPrefVec(width int) PrefVec {
	return make(PrefVec, width)
}

// add returns the pointwise sum of p and q. Both must have the same
// width; callers always build vectors from the same graph's PrefWidth.
func (p PrefVec) add(q PrefVec) PrefVec {
	out := make(PrefVec, len(p))
	for i := range p {
		out[i] = p[i] + q[i]
	}
	return out
}

// withBiasAt returns a copy of p with delta added at depth, used by
// the quantifier combiner to apply a local ±k bias at its own depth
// without touching any other slot (§4.3).
func (p PrefVec) withBiasAt(depth int, delta int64) PrefVec {
	out := make(PrefVec, len(p))
	copy(out, p)
	out[depth] += delta
	return out
}

// comparePrefVec compares a and b lexicographically, most significant
// (lowest depth index) first. Returns -1, 0, or 1.
func comparePrefVec(a, b PrefVec) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
