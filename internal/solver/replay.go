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
	"github.com/efinauri/strql/internal/ast"
	"github.com/efinauri/strql/internal/value"
)

// resolvedPath is where a named capture landed: the container it was
// placed in, plus, for array-append captures, the index appended.
type resolvedPath struct {
	container *value.Value
	field     string // valid when container is an object
	index     int    // valid when container is an array
	isIndex   bool
}

// replayer walks a winning trace and materializes a value.Value tree
// (C6, §4.5).
type replayer struct {
	root           *value.Value
	namedPaths     map[string]resolvedPath
	capturedValues map[string]string
}

// Replay materializes the result tree for trace, the flat event list
// of the winning full-input derivation.
func Replay(trace Trace) *value.Value {
	r := &replayer{
		root:           value.NewObject(),
		namedPaths:     map[string]resolvedPath{},
		capturedValues: map[string]string{},
	}
	for _, ev := range trace {
		r.apply(ev)
	}
	return r.root
}

func (r *replayer) apply(ev TraceEvent) {
	if !ev.IsCapture {
		r.capturedValues[ev.Name] = ev.Value
		return
	}
	// A capture records its own value under its own name before the
	// path is resolved, so a dynamic field segment may reference the
	// capture's own name (§4.5's "Event handling" ordering).
	clause := ev.Clause
	if clause.Name != "" {
		r.capturedValues[clause.Name] = ev.Value
	}
	r.applyCapture(ev)
}

func (r *replayer) applyCapture(ev TraceEvent) {
	clause := ev.Clause
	anchor, remaining := r.anchor(clause.Path)
	arrayAppend := pathEndsInArrayAppend(remaining)
	remaining = stripArrayAppend(remaining)

	container, field := r.walk(anchor, remaining, clause.Name)

	var placed resolvedPath
	switch {
	case !clause.IsObject && !arrayAppend:
		container.SetField(field, value.NewString(ev.Value))
		placed = resolvedPath{container: container, field: field}

	case clause.IsObject && !arrayAppend:
		if !container.HasField(field) {
			container.SetField(field, value.NewObject())
		}
		placed = resolvedPath{container: container, field: field}

	case !clause.IsObject && arrayAppend:
		arr := ensureArrayField(container, field)
		if ev.Value == "" {
			placed = resolvedPath{container: arr, isIndex: true, index: len(arr.Array)}
			break
		}
		arr.Append(value.NewString(ev.Value))
		placed = resolvedPath{container: arr, isIndex: true, index: len(arr.Array) - 1}

	default: // clause.IsObject && arrayAppend
		arr := ensureArrayField(container, field)
		arr.Append(value.NewObject())
		placed = resolvedPath{container: arr, isIndex: true, index: len(arr.Array) - 1}
	}

	if clause.Name != "" {
		r.namedPaths[clause.Name] = placed
	}
}

// anchor resolves path's first segment per §4.5 step 1: Root anchors
// at the tree root and is consumed; a bare field name that matches a
// previously captured object anchors there and is consumed; anything
// else anchors at root and is left in the remaining segments to be
// walked as an ordinary field.
func (r *replayer) anchor(path []ast.PathSegment) (*value.Value, []ast.PathSegment) {
	if len(path) == 0 {
		return r.root, nil
	}
	switch s := path[0].(type) {
	case ast.Root:
		return r.root, path[1:]
	case ast.Field:
		if p, ok := r.namedPaths[s.Name]; ok {
			return containerFromResolved(p), path[1:]
		}
		return r.root, path
	default:
		return r.root, path
	}
}

// walk descends through all but the last of remaining, creating
// object containers as needed, and returns the container the terminal
// segment applies to and its field name. If remaining is empty (a
// path that was only an anchor, e.g. "ADD x TO ROOT"), the terminal
// field defaults to the capture's own name.
func (r *replayer) walk(cur *value.Value, remaining []ast.PathSegment, captureName string) (*value.Value, string) {
	if len(remaining) == 0 {
		return cur, captureName
	}
	for _, seg := range remaining[:len(remaining)-1] {
		cur = cur.Field(fieldName(r, seg))
	}
	return cur, fieldName(r, remaining[len(remaining)-1])
}

func fieldName(r *replayer, seg ast.PathSegment) string {
	switch s := seg.(type) {
	case ast.Field:
		return s.Name
	case ast.DynamicField:
		return r.capturedValues[s.Var]
	default:
		return ""
	}
}

func containerFromResolved(p resolvedPath) *value.Value {
	if p.isIndex {
		return p.container.Array[p.index]
	}
	return p.container.Field(p.field)
}

func stripArrayAppend(path []ast.PathSegment) []ast.PathSegment {
	if len(path) > 0 {
		if _, ok := path[len(path)-1].(ast.ArrayAppend); ok {
			return path[:len(path)-1]
		}
	}
	return path
}

func pathEndsInArrayAppend(path []ast.PathSegment) bool {
	if len(path) == 0 {
		return false
	}
	_, ok := path[len(path)-1].(ast.ArrayAppend)
	return ok
}

func ensureArrayField(container *value.Value, field string) *value.Value {
	if !container.HasField(field) {
		container.SetField(field, value.NewArray())
		return container.Object[field]
	}
	existing := container.Object[field]
	if existing.Kind != value.KindArray {
		existing = value.NewArray()
		container.SetField(field, existing)
	}
	return existing
}
