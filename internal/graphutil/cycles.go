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
	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/yourbasic/graph"
)

// FindAllElementaryCycles finds all elementary cycles in a control-flow
// graph, i.e. the loops of the function body. Each cycle is reported once,
// rooted at its smallest node, as a node sequence whose first and last
// elements are equal.
//
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975.
func FindAllElementaryCycles(g cfg.Graph) [][]cfg.Node {
	cg := New(g)
	n := cg.Order()
	s := &cycleState{cg: cg}
	for v := 0; v < n; v++ {
		// Restrict the search to the strongly connected component of v in the
		// subgraph of nodes >= v, so each cycle is found exactly once.
		components := graph.StrongComponents(restricted{cg: cg, min: v})
		var comp []int
		for _, component := range components {
			for _, w := range component {
				if w == v {
					comp = component
					break
				}
			}
			if comp != nil {
				break
			}
		}
		allowed := make([]bool, n)
		size := 0
		for _, w := range comp {
			allowed[w] = true
			size++
		}
		if size < 2 && !cg.HasEdgeFromTo(int64(v), int64(v)) {
			continue
		}
		s.allowed = allowed
		s.blocked = make([]bool, n)
		s.blist = make([]map[int]bool, n)
		s.stack = s.stack[:0]
		s.circuit(v, v)
	}
	return s.cycles
}

type cycleState struct {
	cg      *CFGraph
	allowed []bool
	blocked []bool
	blist   []map[int]bool
	stack   []cfg.Node
	cycles  [][]cfg.Node
}

func (s *cycleState) unblock(u int) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		if s.blocked[w] {
			s.unblock(w)
		}
	}
	s.blist[u] = nil
}

func (s *cycleState) circuit(v int, start int) bool {
	f := false
	s.stack = append(s.stack, cfg.Node(v))
	s.blocked[v] = true
	for _, w := range s.cg.adj[v] {
		if !s.allowed[w] {
			continue
		}
		if w == start {
			cycle := make([]cfg.Node, len(s.stack), len(s.stack)+1)
			copy(cycle, s.stack)
			cycle = append(cycle, cfg.Node(w))
			s.cycles = append(s.cycles, cycle)
			f = true
		} else if !s.blocked[w] {
			if s.circuit(w, start) {
				f = true
			}
		}
	}

	if f {
		s.unblock(v)
	} else {
		for _, w := range s.cg.adj[v] {
			if !s.allowed[w] {
				continue
			}
			if s.blist[w] == nil {
				s.blist[w] = map[int]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

// restricted is cg with every node below min isolated.
type restricted struct {
	cg  *CFGraph
	min int
}

func (r restricted) Order() int { return r.cg.Order() }

func (r restricted) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if v < r.min {
		return false
	}
	for _, w := range r.cg.adj[v] {
		if w >= r.min {
			if do(w, 1) {
				return true
			}
		}
	}
	return false
}
