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
	"strings"

	"github.com/efinauri/strql/internal/ast"
)

// NodeKind tags the flattened graph's node variants (§3).
type NodeKind int

const (
	NLiteral NodeKind = iota
	NVariable
	NBuiltin
	NSequence
	NAlternation
	NQuantifier
	NGroup
	NCaseScope
)

// Node is one entry of the flattened pattern graph (C1): a tagged
// variant identified by its index into Graph.Nodes.
type Node struct {
	Kind NodeKind

	Literal string          // NLiteral
	Target  int             // NVariable: id of the referenced node
	Builtin ast.BuiltinKind  // NBuiltin
	Items   []int           // NSequence, NAlternation
	Child   int             // NQuantifier, NGroup, NCaseScope
	Min     int             // NQuantifier
	Max     int             // NQuantifier; UnboundedMax = unbounded
	Bias    ast.Bias        // NQuantifier
	Mode    ast.CaseMode    // NCaseScope

	Name    string       // non-empty only for a user-declared statement's root node
	Capture *ast.Capture // non-nil only for a user-declared statement's root node
	Depth   int          // BFS distance from TEXT; set by assignDepths
}

// UnboundedMax mirrors ast.UnboundedMax for quantifier Max fields.
const UnboundedMax = ast.UnboundedMax

// Graph is the flattened pattern graph produced by Flatten: an
// immutable array of nodes plus the name→id map and per-node depth
// used to index the preference vector.
type Graph struct {
	Nodes    []Node
	NameToID map[string]int
	TextID   int
	MaxDepth int
}

// Flatten builds a Graph from prog. Statement nodes are allocated
// first, one id per declared name, so that forward references (a
// statement referring to one declared later in the program, or to
// itself) resolve correctly; each statement's pattern tree is then
// folded into the same array by a post-order walk.
func Flatten(prog *ast.Program) (*Graph, error) {
	g := &Graph{NameToID: map[string]int{}, TextID: -1}

	// Pass 1: reserve one node id per statement, placeholder pattern.
	for _, stmt := range prog.Statements {
		id := len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{})
		g.NameToID[strings.ToUpper(stmt.Name)] = id
		if strings.EqualFold(stmt.Name, "TEXT") {
			g.TextID = id
		}
	}
	if g.TextID < 0 {
		return nil, &NoTextStatementError{}
	}

	// Pass 2: fold each statement's pattern tree into the statement's
	// reserved id, appending any new nodes the fold discovers.
	for _, stmt := range prog.Statements {
		id := g.NameToID[strings.ToUpper(stmt.Name)]
		childID, err := g.fold(stmt.Pattern)
		if err != nil {
			return nil, err
		}
		g.Nodes[id] = Node{
			Kind:    NGroup,
			Child:   childID,
			Name:    stmt.Name,
			Capture: stmt.Capture,
		}
	}

	g.assignDepths()
	return g, nil
}

// fold appends p (and, recursively, its children) to g.Nodes and
// returns the id of the appended node. Variable references resolve
// directly against g.NameToID; an undeclared name is a compile-time
// error.
func (g *Graph) fold(p ast.Pattern) (int, error) {
	switch n := p.(type) {
	case *ast.Literal:
		return g.append(Node{Kind: NLiteral, Literal: n.Value}), nil

	case *ast.VariableRef:
		target, ok := g.NameToID[strings.ToUpper(n.Name)]
		if !ok {
			return 0, &UnboundVariableError{Name: n.Name, At: n.Pos()}
		}
		return g.append(Node{Kind: NVariable, Target: target}), nil

	case *ast.Builtin:
		return g.append(Node{Kind: NBuiltin, Builtin: n.Kind}), nil

	case *ast.Sequence:
		ids, err := g.foldAll(n.Items)
		if err != nil {
			return 0, err
		}
		return g.append(Node{Kind: NSequence, Items: ids}), nil

	case *ast.Alternation:
		ids, err := g.foldAll(n.Items)
		if err != nil {
			return 0, err
		}
		return g.append(Node{Kind: NAlternation, Items: ids}), nil

	case *ast.Quantifier:
		child, err := g.fold(n.Child)
		if err != nil {
			return 0, err
		}
		return g.append(Node{Kind: NQuantifier, Child: child, Min: n.Min, Max: n.Max, Bias: n.Bias}), nil

	case *ast.Group:
		child, err := g.fold(n.Child)
		if err != nil {
			return 0, err
		}
		return g.append(Node{Kind: NGroup, Child: child}), nil

	case *ast.CaseScope:
		child, err := g.fold(n.Child)
		if err != nil {
			return 0, err
		}
		return g.append(Node{Kind: NCaseScope, Child: child, Mode: n.Mode}), nil

	default:
		panic("solver: unknown ast.Pattern variant")
	}
}

func (g *Graph) foldAll(items []ast.Pattern) ([]int, error) {
	ids := make([]int, len(items))
	for i, it := range items {
		id, err := g.fold(it)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func (g *Graph) append(n Node) int {
	id := len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	return id
}

// children returns the ids a node can transition to in one graph
// edge, for the BFS depth assignment.
func (n *Node) children() []int {
	switch n.Kind {
	case NVariable:
		return []int{n.Target}
	case NSequence, NAlternation:
		return n.Items
	case NQuantifier, NGroup, NCaseScope:
		return []int{n.Child}
	default:
		return nil
	}
}

// assignDepths runs a BFS from TextID, setting each reachable node's
// Depth to its BFS level. Unreachable nodes keep Depth 0 (§4.1): they
// can never appear in a successful match, so their depth slot in the
// preference vector is never written.
func (g *Graph) assignDepths() {
	visited := make([]bool, len(g.Nodes))
	queue := []int{g.TextID}
	visited[g.TextID] = true
	g.Nodes[g.TextID].Depth = 0

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := g.Nodes[id].Depth
		if d > g.MaxDepth {
			g.MaxDepth = d
		}
		for _, c := range g.Nodes[id].children() {
			if !visited[c] {
				visited[c] = true
				g.Nodes[c].Depth = d + 1
				queue = append(queue, c)
			}
		}
	}
}

// PrefWidth returns the preference-vector width required by this
// graph: one slot per depth in [0, MaxDepth].
func (g *Graph) PrefWidth() int { return g.MaxDepth + 1 }
