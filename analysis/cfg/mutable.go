// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cfg

// Mutable is a plain adjacency-list Graph. It backs tests and tools that need
// to build a control-flow graph by hand; compiler front ends typically
// implement Graph directly over their own basic-block representation instead.
type Mutable struct {
	start Node
	preds [][]Node
	succs [][]Edge
}

var _ Graph = (*Mutable)(nil)

// NewMutable returns a graph with n nodes, no edges, and node 0 as the start
// node.
func NewMutable(n int) *Mutable {
	return &Mutable{
		start: 0,
		preds: make([][]Node, n),
		succs: make([][]Edge, n),
	}
}

// NewGraph builds a graph with n nodes from an edge list. Edges are Normal.
func NewGraph(n int, start Node, edges [][2]Node) *Mutable {
	g := NewMutable(n)
	g.SetStart(start)
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// SetStart sets the entry node.
func (g *Mutable) SetStart(n Node) {
	CheckNode(g, n)
	g.start = n
}

// AddEdge adds a Normal edge from one node to another. Both nodes must be in
// range; out-of-range nodes panic with a MalformedGraphError.
func (g *Mutable) AddEdge(from, to Node) {
	g.AddEdgeKind(from, to, EdgeNormal)
}

// AddEdgeKind adds an edge of the given kind from one node to another.
func (g *Mutable) AddEdgeKind(from, to Node, kind EdgeKind) {
	CheckNode(g, from)
	CheckNode(g, to)
	g.succs[from] = append(g.succs[from], Edge{To: to, Kind: kind})
	g.preds[to] = append(g.preds[to], from)
}

// StartNode implements Graph.
func (g *Mutable) StartNode() Node { return g.start }

// NumNodes implements Graph.
func (g *Mutable) NumNodes() int { return len(g.succs) }

// Predecessors implements Graph.
func (g *Mutable) Predecessors(n Node) []Node {
	CheckNode(g, n)
	return g.preds[n]
}

// Successors implements Graph.
func (g *Mutable) Successors(n Node) []Edge {
	CheckNode(g, n)
	return g.succs[n]
}
