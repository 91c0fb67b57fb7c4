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

package dataflow

import (
	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/config"
	"github.com/awslabs/cfa-go-tools/analysis/lattice"
	"github.com/awslabs/cfa-go-tools/internal/graphutil"
)

// Results holds the converged entry and exit states of one analysis run over
// one immutable body snapshot. It is read-only once computed; at the
// fixpoint, every node's entry state is the merge of its predecessors' exit
// states (or the seed for the start node), and its exit state is the entry
// state with all block effects applied.
type Results[D lattice.JoinSemiLattice[D]] struct {
	analysis Analysis[D]
	body     Body
	entry    []D
	exit     []D
	passes   int
}

// Run drives analysis to a fixpoint over body and returns the converged
// per-node states. A nil logger disables logging. The run is synchronous and
// single-threaded; termination is guaranteed by the finite height of the
// domain lattice and the monotonicity of the effects.
func Run[D lattice.JoinSemiLattice[D]](body Body, analysis Analysis[D], logger *config.LogGroup) *Results[D] {
	if logger == nil {
		logger = config.DefaultLogGroup()
	}
	numNodes := body.NumNodes()
	rpo := cfg.ReversePostorder(body)

	r := &Results[D]{
		analysis: analysis,
		body:     body,
		entry:    make([]D, numNodes),
		exit:     make([]D, numNodes),
	}
	for i := 0; i < numNodes; i++ {
		r.entry[i] = analysis.Bottom(body)
		r.exit[i] = analysis.Bottom(body)
	}
	analysis.InitializeStartBlock(body, r.entry[body.StartNode()])

	// On an acyclic graph a single reverse-postorder sweep reaches the
	// fixpoint, since every predecessor is processed before its successors;
	// the verification pass can be skipped.
	acyclic := graphutil.Acyclic(body)

	for {
		r.passes++
		changed := false
		for _, n := range rpo {
			state := analysis.Clone(r.entry[n])
			for i, m := 0, body.NumStatements(n); i < m; i++ {
				analysis.StatementEffect(state, n, i)
			}
			analysis.TerminatorEffect(state, n)
			r.exit[n] = state

			for _, e := range body.Successors(n) {
				out := state
				switch e.Kind {
				case cfg.EdgeCallReturn:
					out = analysis.Clone(state)
					analysis.CallReturnEffect(out, n, e.To)
				case cfg.EdgeResume:
					out = analysis.Clone(state)
					analysis.ResumeEffect(out, n, e.To)
				}
				if r.entry[e.To].Join(out) {
					changed = true
				}
			}
		}
		logger.Debugf("%s: pass %d, changed=%v", analysis.Name(), r.passes, changed)
		if acyclic || !changed {
			break
		}
	}
	return r
}

// EntryState returns the converged state on entry to block n. The returned
// value is owned by the Results object and must not be mutated.
func (r *Results[D]) EntryState(n cfg.Node) D {
	return r.entry[n]
}

// ExitState returns the converged state on exit from block n, before any
// per-edge augmentation. The returned value is owned by the Results object
// and must not be mutated.
func (r *Results[D]) ExitState(n cfg.Node) D {
	return r.exit[n]
}

// StateBefore returns a fresh state holding the facts right before statement
// index of block n, obtained by cloning the entry state and replaying the
// statement effects up to the offset. Passing NumStatements(n) yields the
// state right before the terminator.
func (r *Results[D]) StateBefore(n cfg.Node, index int) D {
	state := r.analysis.Clone(r.entry[n])
	for i := 0; i < index; i++ {
		r.analysis.StatementEffect(state, n, i)
	}
	return state
}

// Passes returns the number of full sweeps the fixpoint loop performed.
func (r *Results[D]) Passes() int {
	return r.passes
}

// Body returns the body the results were computed over.
func (r *Results[D]) Body() Body {
	return r.body
}
