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

// Package graphutil adapts the control-flow-graph contract to existing graph
// libraries, so that CFGs can be fed to yourbasic/graph algorithms and to
// Gonum's graph encoders.
package graphutil

import (
	"fmt"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/yourbasic/graph"
	gonum "gonum.org/v1/gonum/graph"
)

// CFGraph is an abstraction over a cfg.Graph to work with existing graph
// libraries. It implements the methods to satisfy yourbasic's graph.Iterator
// and Gonum's graph.Directed.
type CFGraph struct {
	g cfg.Graph

	// adj is the successor adjacency with parallel edges collapsed, since the
	// library algorithms expect a simple digraph.
	adj [][]int
}

// New wraps g for use with the graph libraries.
func New(g cfg.Graph) *CFGraph {
	n := g.NumNodes()
	adj := make([][]int, n)
	seen := make([]int, n)
	for i := range seen {
		seen[i] = -1
	}
	for v := 0; v < n; v++ {
		for _, e := range g.Successors(cfg.Node(v)) {
			w := int(e.To)
			if seen[w] != v {
				seen[w] = v
				adj[v] = append(adj[v], w)
			}
		}
	}
	return &CFGraph{g: g, adj: adj}
}

// Acyclic reports whether the control-flow graph has no cycles. Acyclic
// graphs let forward analyses converge in a single reverse-postorder pass.
func Acyclic(g cfg.Graph) bool {
	return graph.Acyclic(New(g))
}

// Order implements yourbasic's graph.Iterator.
func (c *CFGraph) Order() int {
	return len(c.adj)
}

// Visit implements yourbasic's graph.Iterator.
func (c *CFGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < 0 || v >= len(c.adj) {
		return false
	}
	for _, w := range c.adj[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// *************** Gonum graph.Directed implementation **********************

// Node implements the gonum Graph interface.
func (c *CFGraph) Node(id int64) gonum.Node {
	if id < 0 || id >= int64(len(c.adj)) {
		return nil
	}
	return CNode(id)
}

// Nodes returns the set of nodes in the graph.
func (c *CFGraph) Nodes() gonum.Nodes {
	ids := make([]int64, len(c.adj))
	for i := range ids {
		ids[i] = int64(i)
	}
	return &NodeSet{ids: ids, cur: -1}
}

// From returns the set of direct successors of the id.
func (c *CFGraph) From(id int64) gonum.Nodes {
	var ids []int64
	for _, w := range c.adj[id] {
		ids = append(ids, int64(w))
	}
	return &NodeSet{ids: ids, cur: -1}
}

// To returns the set of direct predecessors of the id.
func (c *CFGraph) To(id int64) gonum.Nodes {
	var ids []int64
	last := -1
	for _, p := range c.g.Predecessors(cfg.Node(id)) {
		if int(p) != last {
			ids = append(ids, int64(p))
		}
		last = int(p)
	}
	return &NodeSet{ids: ids, cur: -1}
}

// HasEdgeBetween reports whether an edge exists between the two node
// identifiers, ignoring direction.
func (c *CFGraph) HasEdgeBetween(xid, yid int64) bool {
	return c.HasEdgeFromTo(xid, yid) || c.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo reports whether a directed edge exists from uid to vid.
func (c *CFGraph) HasEdgeFromTo(uid, vid int64) bool {
	for _, w := range c.adj[uid] {
		if int64(w) == vid {
			return true
		}
	}
	return false
}

// Edge returns the edge between the two identifiers (nil if none exists).
func (c *CFGraph) Edge(uid, vid int64) gonum.Edge {
	if c.HasEdgeFromTo(uid, vid) {
		return CEdge{from: CNode(uid), to: CNode(vid)}
	}
	return nil
}

// *************** Nodes implementation **********************

// CNode is a graph node identified by its cfg.Node index.
type CNode int64

// ID returns the id of the node.
func (n CNode) ID() int64 { return int64(n) }

func (n CNode) String() string { return fmt.Sprintf("b%d", int64(n)) }

// DOTID labels the node in DOT output.
func (n CNode) DOTID() string { return n.String() }

// NodeSet implements the gonum graph.Nodes interface, an iterator over a set
// of nodes.
type NodeSet struct {
	ids []int64
	cur int
}

// Next moves the iterator to the next node and returns whether one exists.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the number of nodes remaining in the set.
func (ns *NodeSet) Len() int {
	return len(ns.ids) - ns.cur - 1
}

// Reset rewinds the iterator to the beginning.
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set.
func (ns *NodeSet) Node() gonum.Node {
	return CNode(ns.ids[ns.cur])
}

// *************** Edge implementation **********************

// CEdge implements the gonum graph.Edge interface.
type CEdge struct {
	from CNode
	to   CNode
}

// From returns the origin of the edge.
func (e CEdge) From() gonum.Node { return e.from }

// To returns the destination of the edge.
func (e CEdge) To() gonum.Node { return e.to }

// ReversedEdge returns a new value representing the reversed edge.
func (e CEdge) ReversedEdge() gonum.Edge { return CEdge{from: e.to, to: e.from} }
