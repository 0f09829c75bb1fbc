// Copyright 2019 CUE Authors
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

// Package value implements the JSON-equivalent result tree that the
// solver's capture-replay pass (§4.5) materializes: an object, array,
// or string, with no numbers, booleans, or nulls. The top-level value
// produced by a solve is always an object, possibly empty.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind distinguishes the three value shapes the replay pass can
// produce.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
)

// Value is a JSON-equivalent node of the result tree. Exactly one of
// Object, Array, or Str is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Object map[string]*Value
	Array  []*Value
	Str    string
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{Kind: KindObject, Object: map[string]*Value{}}
}

// NewArray returns an empty array value.
func NewArray() *Value {
	return &Value{Kind: KindArray}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// Field returns the child named name, creating it as an empty object
// if absent. Panics if v is not an object: callers in capture replay
// only ever call Field on containers they themselves ensured were
// objects.
func (v *Value) Field(name string) *Value {
	if v.Kind != KindObject {
		panic(fmt.Sprintf("value: Field(%q) on non-object value", name))
	}
	child, ok := v.Object[name]
	if !ok {
		child = NewObject()
		v.Object[name] = child
	}
	return child
}

// SetField sets name to child, overwriting any previous value.
func (v *Value) SetField(name string, child *Value) {
	if v.Kind != KindObject {
		panic(fmt.Sprintf("value: SetField(%q) on non-object value", name))
	}
	v.Object[name] = child
}

// HasField reports whether the object already has a field named name.
func (v *Value) HasField(name string) bool {
	if v.Kind != KindObject {
		return false
	}
	_, ok := v.Object[name]
	return ok
}

// Append pushes child onto the array. Panics if v is not an array:
// capture replay creates the array field before appending to it, and
// Append never converts a value of another kind.
func (v *Value) Append(child *Value) {
	if v.Kind != KindArray {
		panic("value: Append on non-array value")
	}
	v.Array = append(v.Array, child)
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte(`{}`), nil
	}
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default: // KindObject
		// encoding/json does not guarantee map key order; result trees
		// are typically small and human-inspected, so sort keys for
		// deterministic output (§5's determinism guarantee extends to
		// the JSON encoding of the result, not just its in-memory shape).
		keys := make([]string, 0, len(v.Object))
		for k := range v.Object {
			keys = append(keys, k)
		}
		sortStrings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := v.Object[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
}

func sortStrings(s []string) {
	// insertion sort: result trees have few keys; avoids importing
	// sort for a handful of comparisons in the hot MarshalJSON path.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
