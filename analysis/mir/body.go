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

package mir

import (
	"fmt"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
)

// Body is one function body: basic blocks over a fixed set of locals. Block 0
// is the entry block. Once finalized, a Body is immutable and safe to share
// across analysis runs.
type Body struct {
	blocks    []BasicBlock
	numLocals int
	argCount  int

	// derived by Finalize
	preds [][]cfg.Node
	succs [][]cfg.Edge
	final bool
}

// NewBody returns a body with numBlocks empty blocks (each ending in Return
// until set otherwise) over numLocals locals, of which locals [0, argCount)
// are the function arguments.
func NewBody(numBlocks, numLocals, argCount int) *Body {
	if argCount > numLocals {
		panic(fmt.Sprintf("mir: %d arguments but only %d locals", argCount, numLocals))
	}
	blocks := make([]BasicBlock, numBlocks)
	for i := range blocks {
		blocks[i].Terminator = Return()
	}
	return &Body{blocks: blocks, numLocals: numLocals, argCount: argCount}
}

// SetBlock fills in block n. It must be called before Finalize.
func (b *Body) SetBlock(n cfg.Node, stmts []Statement, term Terminator) {
	if b.final {
		panic("mir: SetBlock after Finalize")
	}
	cfg.CheckNode(b, n)
	b.blocks[n] = BasicBlock{Statements: stmts, Terminator: term}
}

// Finalize validates the body and derives the control edges. Terminator
// targets outside the block range panic with a cfg.MalformedGraphError, and
// locals outside [0, NumLocals) panic; both indicate a bug in the body
// supplier. The body is immutable afterwards.
func (b *Body) Finalize() *Body {
	if b.final {
		return b
	}
	b.preds = make([][]cfg.Node, len(b.blocks))
	b.succs = make([][]cfg.Edge, len(b.blocks))
	for i := range b.blocks {
		n := cfg.Node(i)
		bb := &b.blocks[i]
		for s := range bb.Statements {
			b.checkStatement(&bb.Statements[s])
		}
		for _, e := range b.terminatorEdges(&bb.Terminator) {
			cfg.CheckNode(b, e.To)
			b.succs[n] = append(b.succs[n], e)
			b.preds[e.To] = append(b.preds[e.To], n)
		}
	}
	b.final = true
	return b
}

func (b *Body) terminatorEdges(t *Terminator) []cfg.Edge {
	var edges []cfg.Edge
	switch t.Kind {
	case TermReturn:
	case TermGoto, TermSwitch:
		for _, target := range t.Targets {
			edges = append(edges, cfg.Edge{To: target, Kind: cfg.EdgeNormal})
		}
		b.checkOperand(&t.Discr)
	case TermCall:
		b.checkPlace(t.Dest)
		for i := range t.Args {
			b.checkOperand(&t.Args[i])
		}
		edges = append(edges, cfg.Edge{To: t.Return, Kind: cfg.EdgeCallReturn})
		if t.Unwind != cfg.None {
			edges = append(edges, cfg.Edge{To: t.Unwind, Kind: cfg.EdgeUnwind})
		}
	case TermSuspend:
		b.checkPlace(t.Dest)
		edges = append(edges, cfg.Edge{To: t.Resume, Kind: cfg.EdgeResume})
	default:
		panic(fmt.Sprintf("mir: unknown terminator kind %d", t.Kind))
	}
	return edges
}

func (b *Body) checkStatement(s *Statement) {
	switch s.Kind {
	case StmtAssign:
		b.checkPlace(s.Place)
		if s.Rvalue.Kind == RvalueRef {
			b.checkPlace(s.Rvalue.Place)
		} else {
			b.checkOperand(&s.Rvalue.Operand)
		}
	case StmtStorageLive, StmtStorageDead:
		if !s.Place.IsLocal() {
			panic("mir: storage markers must name a bare local")
		}
		b.checkPlace(s.Place)
	case StmtNop:
	default:
		panic(fmt.Sprintf("mir: unknown statement kind %d", s.Kind))
	}
}

func (b *Body) checkOperand(op *Operand) {
	if op.Kind != OperandConst {
		b.checkPlace(op.Place)
	}
}

func (b *Body) checkPlace(p Place) {
	if int(p.Local) < 0 || int(p.Local) >= b.numLocals {
		panic(fmt.Sprintf("mir: local %d out of range [0, %d)", p.Local, b.numLocals))
	}
}

// NumLocals returns the number of local slots of the body.
func (b *Body) NumLocals() int { return b.numLocals }

// ArgCount returns the number of argument locals.
func (b *Body) ArgCount() int { return b.argCount }

// Statement returns statement index of block n.
func (b *Body) Statement(n cfg.Node, index int) *Statement {
	return &b.blocks[n].Statements[index]
}

// Terminator returns the terminator of block n.
func (b *Body) Terminator(n cfg.Node) *Terminator {
	return &b.blocks[n].Terminator
}

// StartNode implements cfg.Graph; the entry block is always block 0.
func (b *Body) StartNode() cfg.Node { return 0 }

// NumNodes implements cfg.Graph.
func (b *Body) NumNodes() int { return len(b.blocks) }

// Predecessors implements cfg.Graph. The body must be finalized.
func (b *Body) Predecessors(n cfg.Node) []Node {
	b.mustBeFinal()
	return b.preds[n]
}

// Successors implements cfg.Graph. The body must be finalized.
func (b *Body) Successors(n cfg.Node) []cfg.Edge {
	b.mustBeFinal()
	return b.succs[n]
}

// NumStatements implements dataflow.Body.
func (b *Body) NumStatements(n cfg.Node) int {
	return len(b.blocks[n].Statements)
}

func (b *Body) mustBeFinal() {
	if !b.final {
		panic("mir: body used before Finalize")
	}
}

// Node is re-exported for the convenience of body builders.
type Node = cfg.Node
