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

package dominators

import (
	"errors"
	"testing"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
)

func checkIdoms(t *testing.T, g cfg.Graph, want map[Node]Node) {
	t.Helper()
	d := Compute(g)
	for n, wantIdom := range want {
		got, err := d.ImmediateDominator(n)
		if err != nil {
			t.Errorf("ImmediateDominator(%d) failed: %v", n, err)
			continue
		}
		if got != wantIdom {
			t.Errorf("ImmediateDominator(%d) = %d, want %d", n, got, wantIdom)
		}
	}
}

func TestCompute_diamond(t *testing.T) {
	g := cfg.NewGraph(4, 0, [][2]Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	// Neither branch dominates the join point.
	checkIdoms(t, g, map[Node]Node{0: 0, 1: 0, 2: 0, 3: 0})
}

func TestCompute_chain(t *testing.T) {
	g := cfg.NewGraph(4, 0, [][2]Node{{0, 1}, {1, 2}, {2, 3}})
	checkIdoms(t, g, map[Node]Node{0: 0, 1: 0, 2: 1, 3: 2})
}

func TestCompute_loop(t *testing.T) {
	// 2 <-> 3 is a loop entered only through 2.
	g := cfg.NewGraph(5, 0, [][2]Node{{0, 1}, {0, 2}, {1, 4}, {2, 3}, {3, 2}})
	checkIdoms(t, g, map[Node]Node{0: 0, 1: 0, 2: 0, 3: 2, 4: 1})
}

func TestCompute_branchyWithBackEdge(t *testing.T) {
	// Two branches re-join at 3 and 5; 5 -> 3 is a back edge, so the loop
	// header 3 is reached both from the branches and from inside the loop.
	g := cfg.NewGraph(6, 0, [][2]Node{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 5}, {4, 5}, {5, 3},
	})
	checkIdoms(t, g, map[Node]Node{0: 0, 1: 0, 2: 0, 3: 0, 4: 2, 5: 0})
}

func TestCompute_unreachableNode(t *testing.T) {
	g := cfg.NewGraph(3, 0, [][2]Node{{0, 1}})
	d := Compute(g)
	if d.IsReachable(2) {
		t.Errorf("node 2 should not be reachable")
	}
	var unreachable *UnreachableNodeError
	if _, err := d.ImmediateDominator(2); !errors.As(err, &unreachable) {
		t.Errorf("ImmediateDominator(2) error = %v, want UnreachableNodeError", err)
	}
	if _, err := d.Dominators(2); !errors.As(err, &unreachable) {
		t.Errorf("Dominators(2) error = %v, want UnreachableNodeError", err)
	}
	if d.IsDominatedBy(2, 0) {
		t.Errorf("an unreachable node must be dominated by nothing")
	}
	// Queries on reachable nodes still work after a failed query.
	if idom, err := d.ImmediateDominator(1); err != nil || idom != 0 {
		t.Errorf("ImmediateDominator(1) = %d, %v, want 0, nil", idom, err)
	}
}

func TestDominators_chainOrder(t *testing.T) {
	g := cfg.NewGraph(4, 0, [][2]Node{{0, 1}, {1, 2}, {2, 3}})
	d := Compute(g)
	iter, err := d.Dominators(3)
	if err != nil {
		t.Fatalf("Dominators(3) failed: %v", err)
	}
	var chain []Node
	for n, ok := iter.Next(); ok; n, ok = iter.Next() {
		chain = append(chain, n)
	}
	want := []Node{3, 2, 1, 0}
	if len(chain) != len(want) {
		t.Fatalf("dominator chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("dominator chain = %v, want %v", chain, want)
		}
	}
	// The iterator is exhausted, not restartable.
	if _, ok := iter.Next(); ok {
		t.Errorf("exhausted iterator should keep returning false")
	}
}

func TestIsDominatedBy(t *testing.T) {
	g := cfg.NewGraph(5, 0, [][2]Node{{0, 1}, {0, 2}, {1, 4}, {2, 3}, {3, 2}})
	d := Compute(g)
	checks := []struct {
		n, dom Node
		want   bool
	}{
		{3, 0, true},
		{3, 2, true},
		{3, 3, true}, // every node dominates itself
		{3, 1, false},
		{4, 1, true},
		{4, 2, false},
		{2, 3, false}, // dominance is not symmetric
	}
	for _, c := range checks {
		if got := d.IsDominatedBy(c.n, c.dom); got != c.want {
			t.Errorf("IsDominatedBy(%d, %d) = %v, want %v", c.n, c.dom, got, c.want)
		}
	}
}

func TestRankPartialCmp(t *testing.T) {
	g := cfg.NewGraph(4, 0, [][2]Node{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	d := Compute(g)
	// A dominator compares earlier than every node it dominates.
	for _, n := range []Node{1, 2, 3} {
		if got := d.RankPartialCmp(0, n); got != -1 {
			t.Errorf("RankPartialCmp(0, %d) = %d, want -1", n, got)
		}
		if got := d.RankPartialCmp(n, 0); got != 1 {
			t.Errorf("RankPartialCmp(%d, 0) = %d, want 1", n, got)
		}
	}
	if got := d.RankPartialCmp(3, 3); got != 0 {
		t.Errorf("RankPartialCmp(3, 3) = %d, want 0", got)
	}
	// Unrelated nodes are ordered consistently both ways.
	if d.RankPartialCmp(1, 2) != -d.RankPartialCmp(2, 1) {
		t.Errorf("RankPartialCmp must be antisymmetric for unrelated nodes")
	}
}

func TestCompute_deterministic(t *testing.T) {
	g := cfg.NewGraph(6, 0, [][2]Node{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 5}, {4, 5}, {5, 3},
	})
	first := Compute(g)
	for run := 0; run < 10; run++ {
		d := Compute(g)
		for n := Node(0); int(n) < g.NumNodes(); n++ {
			a, errA := first.ImmediateDominator(n)
			b, errB := d.ImmediateDominator(n)
			if a != b || (errA == nil) != (errB == nil) {
				t.Fatalf("run %d: ImmediateDominator(%d) differs: %d vs %d", run, n, a, b)
			}
		}
	}
}

func TestDominators_chainBoundedByNodeCount(t *testing.T) {
	// Dense graph with lots of cross edges; the chain length can never exceed
	// the number of nodes.
	const n = 32
	var edges [][2]Node
	for i := Node(0); i < n-1; i++ {
		edges = append(edges, [2]Node{i, i + 1})
		if i > 1 {
			edges = append(edges, [2]Node{i, i - 2})
		}
	}
	g := cfg.NewGraph(n, 0, edges)
	d := Compute(g)
	for v := Node(0); v < n; v++ {
		iter, err := d.Dominators(v)
		if err != nil {
			t.Fatalf("Dominators(%d) failed: %v", v, err)
		}
		count := 0
		for _, ok := iter.Next(); ok; _, ok = iter.Next() {
			count++
			if count > n {
				t.Fatalf("dominator chain of %d exceeds node count", v)
			}
		}
	}
}
