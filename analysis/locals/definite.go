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

package locals

import (
	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/config"
	"github.com/awslabs/cfa-go-tools/analysis/dataflow"
	"github.com/awslabs/cfa-go-tools/analysis/lattice"
	"github.com/awslabs/cfa-go-tools/analysis/mir"
)

// DefiniteState is the domain of DefinitelyInitializedLocals: the dual of the
// powerset of locals, so that the engine's join intersects the sets and the
// bottom element is "all locals initialized".
type DefiniteState = lattice.Dual[*lattice.BitSet]

// DefinitelyInitializedLocals is the must-counterpart of
// MaybeInitializedLocals: the set of locals guaranteed to hold an initialized
// value on every path reaching a program point. The transfer functions are
// those of the may-analysis; only the merge direction differs.
type DefinitelyInitializedLocals struct {
	body *mir.Body
}

// NewDefinitelyInitializedLocals returns the must-initialization analysis
// over body.
func NewDefinitelyInitializedLocals(body *mir.Body) *DefinitelyInitializedLocals {
	return &DefinitelyInitializedLocals{body: body}
}

// Name implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) Name() string { return "definitely-initialized-locals" }

// Bottom implements dataflow.Analysis. The dual bottom is the full set, so
// that a node's first visited predecessor determines its initial facts.
func (a *DefinitelyInitializedLocals) Bottom(dataflow.Body) *DefiniteState {
	return &DefiniteState{X: lattice.NewFilledBitSet(a.body.NumLocals())}
}

// Clone implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) Clone(state *DefiniteState) *DefiniteState {
	return &DefiniteState{X: state.X.Clone()}
}

// InitializeStartBlock implements dataflow.Analysis; on entry exactly the
// argument locals are initialized.
func (a *DefinitelyInitializedLocals) InitializeStartBlock(_ dataflow.Body, state *DefiniteState) {
	state.X.Clear()
	for l := 0; l < a.body.ArgCount(); l++ {
		state.X.Insert(l)
	}
}

// StatementEffect implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) StatementEffect(state *DefiniteState, n cfg.Node, index int) {
	tf := initTransfer{trans: setTrans{state.X}, deinitOnMove: true}
	tf.statement(a.body.Statement(n, index))
}

// TerminatorEffect implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) TerminatorEffect(state *DefiniteState, n cfg.Node) {
	tf := initTransfer{trans: setTrans{state.X}, deinitOnMove: true}
	tf.terminator(a.body.Terminator(n))
}

// CallReturnEffect implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) CallReturnEffect(state *DefiniteState, call cfg.Node, _ cfg.Node) {
	genDest(state.X, a.body.Terminator(call))
}

// ResumeEffect implements dataflow.Analysis.
func (a *DefinitelyInitializedLocals) ResumeEffect(state *DefiniteState, suspend cfg.Node, _ cfg.Node) {
	genDest(state.X, a.body.Terminator(suspend))
}

// DefiniteLocalsResults answers must-initialization queries from a converged
// run.
type DefiniteLocalsResults struct {
	*dataflow.Results[*DefiniteState]
}

// RunDefinitelyInitializedLocals converges the must-initialization analysis
// over body.
func RunDefinitelyInitializedLocals(body *mir.Body, logger *config.LogGroup) DefiniteLocalsResults {
	return DefiniteLocalsResults{dataflow.Run[*DefiniteState](body, NewDefinitelyInitializedLocals(body), logger)}
}

// IsInitializedAt reports whether l is initialized on every path reaching the
// point right before statement index of block n.
func (r DefiniteLocalsResults) IsInitializedAt(n cfg.Node, index int, l mir.Local) bool {
	return r.StateBefore(n, index).X.Contains(int(l))
}
