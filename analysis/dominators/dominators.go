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

// Package dominators computes the dominator tree of a control-flow graph:
// for every node reachable from the entry, its immediate dominator.
//
// The builder is the iterative set-intersection algorithm working on bit sets
// of postorder ranks. It is quadratic in the worst case, but per-function
// control-flow graphs are small and predecessor counts are low in practice,
// so it beats the constant factors of the linear-time algorithms.
package dominators

import (
	"fmt"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/lattice"
)

// Dominators holds the dominator tree of one immutable control-flow-graph
// snapshot. It is created by Compute, read-only afterwards, and must be
// discarded when the graph changes; there is no incremental update.
type Dominators struct {
	start Node
	// postOrderRank[n] is the postorder finishing rank of node n, 0 being the
	// first node finished. Only meaningful for reachable nodes.
	postOrderRank []int
	// immediateDominators[n] is the parent of n in the dominator tree, the
	// start node for itself, or cfg.None when n is unreachable.
	immediateDominators []Node
}

// Node is re-exported for the convenience of result consumers.
type Node = cfg.Node

// UnreachableNodeError is returned by queries on a node that has no path from
// the entry. Dominance is undefined for such nodes; the query fails rather
// than returning a plausible-looking wrong answer.
type UnreachableNodeError struct {
	Node Node
}

func (e *UnreachableNodeError) Error() string {
	return fmt.Sprintf("dominators: node %d is not reachable from the entry", e.Node)
}

// Compute builds the dominator tree of g. Unreachable nodes are recorded as
// such and fail lazily at query time.
func Compute(g cfg.Graph) *Dominators {
	numNodes := g.NumNodes()
	start := g.StartNode()
	rpo := cfg.ReversePostorder(g)

	// Rank nodes by postorder finishing position. rpo[len(rpo)-1-rank] maps a
	// rank back to its node.
	postOrderRank := make([]int, numNodes)
	for i, n := range rpo {
		postOrderRank[n] = len(rpo) - 1 - i
	}

	// The working dominator sets are indexed by postorder rank rather than by
	// node, so the immediate dominator of a node is simply the second-highest
	// rank in its final set (the highest is the node itself).
	domSets := make([]*lattice.BitSet, numNodes)
	for _, n := range rpo {
		domSets[n] = lattice.NewFilledBitSet(numNodes)
	}
	domSets[start].Clear()
	domSets[start].Insert(postOrderRank[start])

	temp := lattice.NewBitSet(numNodes)
	for changed := true; changed; {
		changed = false
		for _, n := range rpo[1:] {
			preds := g.Predecessors(n)
			// A non-start node in an RPO traversal has a visited predecessor.
			first := cfg.None
			for _, p := range preds {
				cfg.CheckNode(g, p)
				if domSets[p] != nil {
					first = p
					break
				}
			}
			temp.CopyFrom(domSets[first])
			for _, p := range preds {
				if p != first && domSets[p] != nil {
					temp.Intersect(domSets[p])
				}
			}
			temp.Insert(postOrderRank[n])
			if !temp.Equal(domSets[n]) {
				domSets[n], temp = temp, domSets[n]
				changed = true
			}
		}
	}

	// Extract the immediate dominators. A node's dominator set forms a
	// rank-ordered chain, so the next rank above its own is its idom.
	idoms := make([]Node, numNodes)
	for i := range idoms {
		idoms[i] = cfg.None
	}
	idoms[start] = start
	for _, n := range rpo[1:] {
		idomRank := domSets[n].NextAfter(postOrderRank[n])
		idoms[n] = rpo[len(rpo)-1-idomRank]
	}

	return &Dominators{
		start:               start,
		postOrderRank:       postOrderRank,
		immediateDominators: idoms,
	}
}

// IsReachable reports whether n has a path from the entry node.
func (d *Dominators) IsReachable(n Node) bool {
	return d.immediateDominators[n] != cfg.None
}

// ImmediateDominator returns the parent of n in the dominator tree, or an
// UnreachableNodeError when n has no path from the entry. The entry node is
// its own immediate dominator.
func (d *Dominators) ImmediateDominator(n Node) (Node, error) {
	if !d.IsReachable(n) {
		return cfg.None, &UnreachableNodeError{Node: n}
	}
	return d.immediateDominators[n], nil
}

// Dominators returns the chain of dominators of n in dominance order,
// starting with n itself and ending with the entry node. The sequence is
// lazy, finite and non-restartable. It returns an UnreachableNodeError when n
// has no path from the entry.
func (d *Dominators) Dominators(n Node) (*Iter, error) {
	if !d.IsReachable(n) {
		return nil, &UnreachableNodeError{Node: n}
	}
	return &Iter{dominators: d, node: n, done: false}, nil
}

// IsDominatedBy reports whether every path from the entry to n passes through
// dom. An unreachable node is dominated by nothing.
func (d *Dominators) IsDominatedBy(n Node, dom Node) bool {
	iter, err := d.Dominators(n)
	if err != nil {
		return false
	}
	for m, ok := iter.Next(); ok; m, ok = iter.Next() {
		if m == dom {
			return true
		}
	}
	return false
}

// RankPartialCmp provides a deterministic ordering of nodes such that, if one
// of the two nodes dominates the other, the dominator compares earlier. The
// relative order of unrelated nodes is consistent but carries no meaning, so
// the result cannot be used to decide dominance. Both nodes must be
// reachable: an unreachable node has no rank and ties arbitrarily.
func (d *Dominators) RankPartialCmp(a Node, b Node) int {
	ra, rb := d.postOrderRank[a], d.postOrderRank[b]
	switch {
	case ra > rb:
		return -1
	case ra < rb:
		return 1
	default:
		return 0
	}
}

// Iter walks a node's dominator chain up to the entry node.
type Iter struct {
	dominators *Dominators
	node       Node
	done       bool
}

// Next returns the next node of the chain, or false when the chain is
// exhausted.
func (it *Iter) Next() (Node, bool) {
	if it.done {
		return cfg.None, false
	}
	n := it.node
	dom := it.dominators.immediateDominators[n]
	if dom == n {
		it.done = true // reached the root
	} else {
		it.node = dom
	}
	return n, true
}
