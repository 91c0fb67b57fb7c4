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

// Package ssacfg adapts the control-flow graphs of golang.org/x/tools/go/ssa
// functions to the cfg.Graph contract, so the dominator builder and the
// dataflow engine can run over real Go functions.
package ssacfg

import (
	"fmt"

	"golang.org/x/tools/go/ssa"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
)

// Graph views the basic blocks of one ssa.Function as a cfg.Graph. Blocks are
// identified by their ssa block index; all edges are plain control edges, Go
// having neither unwind nor resume successors at this level.
type Graph struct {
	fn    *ssa.Function
	preds [][]cfg.Node
	succs [][]cfg.Edge
}

// New adapts fn, which must have been built (fn.Blocks non-empty).
func New(fn *ssa.Function) *Graph {
	if len(fn.Blocks) == 0 {
		panic(fmt.Sprintf("ssacfg: function %s has no blocks", fn))
	}
	g := &Graph{
		fn:    fn,
		preds: make([][]cfg.Node, len(fn.Blocks)),
		succs: make([][]cfg.Edge, len(fn.Blocks)),
	}
	for _, b := range fn.Blocks {
		for _, s := range b.Succs {
			g.succs[b.Index] = append(g.succs[b.Index], cfg.Edge{To: cfg.Node(s.Index), Kind: cfg.EdgeNormal})
			g.preds[s.Index] = append(g.preds[s.Index], cfg.Node(b.Index))
		}
	}
	return g
}

// Func returns the adapted function.
func (g *Graph) Func() *ssa.Function { return g.fn }

// Block returns the ssa basic block behind node n.
func (g *Graph) Block(n cfg.Node) *ssa.BasicBlock {
	cfg.CheckNode(g, n)
	return g.fn.Blocks[n]
}

// StartNode implements cfg.Graph; ssa entry blocks always have index 0.
func (g *Graph) StartNode() cfg.Node { return 0 }

// NumNodes implements cfg.Graph.
func (g *Graph) NumNodes() int { return len(g.fn.Blocks) }

// Predecessors implements cfg.Graph.
func (g *Graph) Predecessors(n cfg.Node) []cfg.Node { return g.preds[n] }

// Successors implements cfg.Graph.
func (g *Graph) Successors(n cfg.Node) []cfg.Edge { return g.succs[n] }

// NumStatements implements dataflow.Body, counting the block's instructions.
func (g *Graph) NumStatements(n cfg.Node) int { return len(g.fn.Blocks[n].Instrs) }
