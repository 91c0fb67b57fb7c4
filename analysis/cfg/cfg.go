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

// Package cfg defines the control-flow-graph contract consumed by the
// analyses in this module. A graph is a set of densely numbered basic-block
// nodes with directed, kind-tagged control edges. The analyses never create
// or destroy nodes; they only index arrays by them, so node identifiers must
// be contiguous in [0, NumNodes).
package cfg

import "fmt"

// Node identifies a basic block in a control-flow graph. Identifiers are
// dense indices owned by the graph; None marks the absence of a node.
type Node int

// None is the absent node.
const None Node = -1

// EdgeKind distinguishes the control edges that receive special treatment
// from the dataflow engine. Most edges are Normal.
type EdgeKind uint8

const (
	// EdgeNormal is an ordinary control transfer.
	EdgeNormal EdgeKind = iota
	// EdgeCallReturn is the edge from a call block to its normal-return
	// successor; the call's destination becomes defined only on this edge.
	EdgeCallReturn
	// EdgeUnwind is the edge from a call block to its unwind successor; the
	// call's destination is not defined on this edge.
	EdgeUnwind
	// EdgeResume is the edge resuming a suspended computation; the receiving
	// place becomes defined only on this edge.
	EdgeResume
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeNormal:
		return "normal"
	case EdgeCallReturn:
		return "call-return"
	case EdgeUnwind:
		return "unwind"
	case EdgeResume:
		return "resume"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// Edge is an outgoing control edge.
type Edge struct {
	To   Node
	Kind EdgeKind
}

// Graph is the control-flow-graph capability consumed by the dominator
// builder and the dataflow engine. Graphs may be cyclic; every node other
// than the start node must have at least one predecessor to be reachable.
// Implementations must not mutate the graph while an analysis runs on it.
type Graph interface {
	// StartNode returns the entry node of the graph.
	StartNode() Node

	// NumNodes returns the number of nodes. Node identifiers range over
	// [0, NumNodes).
	NumNodes() int

	// Predecessors returns the predecessors of n. The returned slice must not
	// be mutated by the caller.
	Predecessors(n Node) []Node

	// Successors returns the outgoing edges of n in a deterministic order.
	// The returned slice must not be mutated by the caller.
	Successors(n Node) []Edge
}

// MalformedGraphError is the panic value raised when a graph references a
// node outside [0, NumNodes). A malformed graph is a programming error in the
// graph supplier, not a recoverable condition: analyses fail fast rather than
// silently producing wrong results.
type MalformedGraphError struct {
	Node     Node
	NumNodes int
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("cfg: node %d out of range [0, %d)", e.Node, e.NumNodes)
}

// CheckNode panics with a MalformedGraphError when n is outside the node
// range of g.
func CheckNode(g Graph, n Node) {
	if int(n) < 0 || int(n) >= g.NumNodes() {
		panic(&MalformedGraphError{Node: n, NumNodes: g.NumNodes()})
	}
}
