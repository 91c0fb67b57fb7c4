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

import "github.com/awslabs/cfa-go-tools/internal/funcutil"

// Postorder returns the nodes reachable from the start node in depth-first
// postorder: a node appears after all the successors explored through it.
// Nodes absent from the result are unreachable.
func Postorder(g Graph) []Node {
	numNodes := g.NumNodes()
	if numNodes == 0 {
		return nil
	}
	start := g.StartNode()
	CheckNode(g, start)

	visited := make([]bool, numNodes)
	order := make([]Node, 0, numNodes)

	// Iterative DFS; frame.next is the index of the next successor to visit.
	type frame struct {
		node Node
		next int
	}
	stack := []frame{{node: start}}
	visited[start] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := g.Successors(top.node)
		if top.next < len(succs) {
			succ := succs[top.next].To
			top.next++
			CheckNode(g, succ)
			if !visited[succ] {
				visited[succ] = true
				stack = append(stack, frame{node: succ})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order
}

// ReversePostorder returns the nodes reachable from the start node in reverse
// postorder. The start node is always first. For an acyclic graph this is a
// topological order.
func ReversePostorder(g Graph) []Node {
	rpo := Postorder(g)
	funcutil.Reverse(rpo)
	return rpo
}
