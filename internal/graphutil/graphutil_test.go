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

package graphutil

import (
	"fmt"
	"sort"
	"testing"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
)

func TestAcyclic(t *testing.T) {
	diamond := cfg.NewGraph(4, 0, [][2]cfg.Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	if !Acyclic(diamond) {
		t.Errorf("diamond graph should be acyclic")
	}
	loop := cfg.NewGraph(3, 0, [][2]cfg.Node{{0, 1}, {1, 2}, {2, 1}})
	if Acyclic(loop) {
		t.Errorf("graph with a back edge should not be acyclic")
	}
	selfLoop := cfg.NewGraph(2, 0, [][2]cfg.Node{{0, 1}, {1, 1}})
	if Acyclic(selfLoop) {
		t.Errorf("graph with a self-loop should not be acyclic")
	}
}

func cycleStrings(cycles [][]cfg.Node) []string {
	var out []string
	for _, c := range cycles {
		out = append(out, fmt.Sprint(c))
	}
	sort.Strings(out)
	return out
}

func TestFindAllElementaryCycles(t *testing.T) {
	// One two-node loop.
	g := cfg.NewGraph(4, 0, [][2]cfg.Node{{0, 1}, {1, 2}, {2, 1}, {2, 3}})
	got := cycleStrings(FindAllElementaryCycles(g))
	if len(got) != 1 || got[0] != "[1 2 1]" {
		t.Errorf("cycles = %v, want [[1 2 1]]", got)
	}
}

func TestFindAllElementaryCycles_multiple(t *testing.T) {
	// Two loops sharing the header 1, plus a self-loop on 3.
	g := cfg.NewGraph(4, 0, [][2]cfg.Node{
		{0, 1}, {1, 2}, {2, 1}, {1, 3}, {3, 1}, {3, 3},
	})
	got := cycleStrings(FindAllElementaryCycles(g))
	want := []string{"[1 2 1]", "[1 3 1]", "[3 3]"}
	if len(got) != len(want) {
		t.Fatalf("cycles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycles = %v, want %v", got, want)
		}
	}
}

func TestFindAllElementaryCycles_acyclic(t *testing.T) {
	g := cfg.NewGraph(4, 0, [][2]cfg.Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	if cycles := FindAllElementaryCycles(g); len(cycles) != 0 {
		t.Errorf("acyclic graph has cycles %v", cycles)
	}
}

func TestCFGraph_collapsesParallelEdges(t *testing.T) {
	// A call with return and unwind to the same block yields parallel edges in
	// the cfg; the simple-digraph view must carry the edge once.
	g := cfg.NewMutable(2)
	g.AddEdgeKind(0, 1, cfg.EdgeCallReturn)
	g.AddEdgeKind(0, 1, cfg.EdgeUnwind)
	c := New(g)
	count := 0
	c.Visit(0, func(w int, _ int64) bool {
		count++
		if w != 1 {
			t.Errorf("unexpected successor %d", w)
		}
		return false
	})
	if count != 1 {
		t.Errorf("parallel edges visited %d times, want 1", count)
	}
}

func TestCFGraph_gonumInterface(t *testing.T) {
	g := cfg.NewGraph(3, 0, [][2]cfg.Node{{0, 1}, {1, 2}, {0, 2}})
	c := New(g)

	nodes := c.Nodes()
	if nodes.Len() != 3 {
		t.Errorf("Nodes().Len() = %d, want 3", nodes.Len())
	}
	var ids []int64
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	if len(ids) != 3 {
		t.Fatalf("iterated %d nodes, want 3", len(ids))
	}

	if !c.HasEdgeFromTo(0, 1) || c.HasEdgeFromTo(1, 0) {
		t.Errorf("directed edge 0 -> 1 misreported")
	}
	if !c.HasEdgeBetween(1, 0) {
		t.Errorf("HasEdgeBetween must ignore direction")
	}
	if c.Edge(0, 1) == nil || c.Edge(2, 0) != nil {
		t.Errorf("Edge lookup inconsistent with the edge set")
	}
	if c.Node(2) == nil || c.Node(3) != nil {
		t.Errorf("Node lookup out of sync with the node range")
	}

	from := c.From(0)
	if from.Len() != 2 {
		t.Errorf("From(0).Len() = %d, want 2", from.Len())
	}
	to := c.To(2)
	if to.Len() != 2 {
		t.Errorf("To(2).Len() = %d, want 2", to.Len())
	}
}

func TestCNode_labels(t *testing.T) {
	n := CNode(7)
	if n.String() != "b7" || n.DOTID() != "b7" {
		t.Errorf("CNode(7) labels = %q/%q, want b7", n.String(), n.DOTID())
	}
}
