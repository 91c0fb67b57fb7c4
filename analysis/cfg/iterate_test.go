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

import "testing"

func positions(order []Node) map[Node]int {
	pos := make(map[Node]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	return pos
}

func TestPostorder_diamond(t *testing.T) {
	// 0 -> 1 -> 3, 0 -> 2 -> 3
	g := NewGraph(4, 0, [][2]Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	po := Postorder(g)
	if len(po) != 4 {
		t.Fatalf("postorder has %d nodes, want 4", len(po))
	}
	pos := positions(po)
	// A node finishes after all nodes explored through it.
	if pos[0] != 3 {
		t.Errorf("start node must finish last, got position %d", pos[0])
	}
	if pos[3] >= pos[1] && pos[3] >= pos[2] {
		t.Errorf("node 3 must finish before at least the branch it was explored from: %v", po)
	}
}

func TestReversePostorder_isTopologicalOnAcyclic(t *testing.T) {
	g := NewGraph(6, 0, [][2]Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}})
	rpo := ReversePostorder(g)
	if rpo[0] != 0 {
		t.Fatalf("reverse postorder must start with the entry, got %v", rpo)
	}
	pos := positions(rpo)
	for n := 0; n < g.NumNodes(); n++ {
		for _, e := range g.Successors(Node(n)) {
			if pos[Node(n)] >= pos[e.To] {
				t.Errorf("edge %d -> %d violates topological order %v", n, e.To, rpo)
			}
		}
	}
}

func TestPostorder_skipsUnreachable(t *testing.T) {
	// Node 2 has no path from the entry.
	g := NewGraph(3, 0, [][2]Node{{0, 1}, {2, 1}})
	po := Postorder(g)
	if len(po) != 2 {
		t.Fatalf("postorder = %v, want 2 reachable nodes", po)
	}
	for _, n := range po {
		if n == 2 {
			t.Errorf("unreachable node 2 must not appear in %v", po)
		}
	}
}

func TestPostorder_withCycle(t *testing.T) {
	// 0 -> 1 -> 2 -> 1, 2 -> 3
	g := NewGraph(4, 0, [][2]Node{{0, 1}, {1, 2}, {2, 1}, {2, 3}})
	po := Postorder(g)
	if len(po) != 4 {
		t.Fatalf("postorder has %d nodes, want 4", len(po))
	}
	pos := positions(po)
	if pos[0] != 3 {
		t.Errorf("start node must finish last: %v", po)
	}
}

func TestAddEdge_outOfRangePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MalformedGraphError panic")
		} else if _, ok := r.(*MalformedGraphError); !ok {
			t.Errorf("panic value %v is not a MalformedGraphError", r)
		}
	}()
	NewMutable(2).AddEdge(0, 2)
}

// brokenGraph reports an out-of-range successor.
type brokenGraph struct{ *Mutable }

func (b brokenGraph) Successors(n Node) []Edge {
	if n == 0 {
		return []Edge{{To: 5}}
	}
	return nil
}

func TestPostorder_malformedGraphPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MalformedGraphError panic")
		} else if _, ok := r.(*MalformedGraphError); !ok {
			t.Errorf("panic value %v is not a MalformedGraphError", r)
		}
	}()
	Postorder(brokenGraph{NewMutable(2)})
}
