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

// MaybeInitializedLocals is a may-analysis computing, per program point, the
// set of locals that may hold an initialized value. On function entry only the
// argument locals are initialized. A call destination becomes initialized only
// on the normal-return edge, never on the unwind edge; a suspension's resume
// place becomes initialized only on the resume edge.
type MaybeInitializedLocals struct {
	body         *mir.Body
	deinitOnMove bool
}

// NewMaybeInitializedLocals returns the initialization analysis over body.
func NewMaybeInitializedLocals(body *mir.Body) *MaybeInitializedLocals {
	return &MaybeInitializedLocals{body: body, deinitOnMove: true}
}

// NewMaybeInitializedLocalsNoDeinitOnMove returns a variant that treats moves
// like copies, for callers that only care whether a value was ever written.
func NewMaybeInitializedLocalsNoDeinitOnMove(body *mir.Body) *MaybeInitializedLocals {
	return &MaybeInitializedLocals{body: body, deinitOnMove: false}
}

// Name implements dataflow.Analysis.
func (a *MaybeInitializedLocals) Name() string { return "maybe-initialized-locals" }

// Bottom implements dataflow.Analysis; no local is initialized.
func (a *MaybeInitializedLocals) Bottom(dataflow.Body) *lattice.BitSet {
	return lattice.NewBitSet(a.body.NumLocals())
}

// Clone implements dataflow.Analysis.
func (a *MaybeInitializedLocals) Clone(state *lattice.BitSet) *lattice.BitSet {
	return state.Clone()
}

// InitializeStartBlock implements dataflow.Analysis; the caller initialized
// the argument locals.
func (a *MaybeInitializedLocals) InitializeStartBlock(_ dataflow.Body, state *lattice.BitSet) {
	for l := 0; l < a.body.ArgCount(); l++ {
		state.Insert(l)
	}
}

// StatementEffect implements dataflow.Analysis.
func (a *MaybeInitializedLocals) StatementEffect(state *lattice.BitSet, n cfg.Node, index int) {
	tf := initTransfer{trans: setTrans{state}, deinitOnMove: a.deinitOnMove}
	tf.statement(a.body.Statement(n, index))
}

// TerminatorEffect implements dataflow.Analysis.
func (a *MaybeInitializedLocals) TerminatorEffect(state *lattice.BitSet, n cfg.Node) {
	tf := initTransfer{trans: setTrans{state}, deinitOnMove: a.deinitOnMove}
	tf.terminator(a.body.Terminator(n))
}

// CallReturnEffect implements dataflow.Analysis; a call that returned
// normally has written its destination.
func (a *MaybeInitializedLocals) CallReturnEffect(state *lattice.BitSet, call cfg.Node, _ cfg.Node) {
	genDest(state, a.body.Terminator(call))
}

// ResumeEffect implements dataflow.Analysis; a resumed suspension has written
// the resumed value into its destination.
func (a *MaybeInitializedLocals) ResumeEffect(state *lattice.BitSet, suspend cfg.Node, _ cfg.Node) {
	genDest(state, a.body.Terminator(suspend))
}

func genDest(state *lattice.BitSet, t *mir.Terminator) {
	if !t.Dest.HasDeref() {
		state.Insert(int(t.Dest.Local))
	}
}

// InitializedLocalsResults answers initialization queries from a converged
// run of either initialization analysis.
type InitializedLocalsResults struct {
	*dataflow.Results[*lattice.BitSet]
}

// RunMaybeInitializedLocals converges the may-initialization analysis over
// body.
func RunMaybeInitializedLocals(body *mir.Body, logger *config.LogGroup) InitializedLocalsResults {
	return InitializedLocalsResults{dataflow.Run[*lattice.BitSet](body, NewMaybeInitializedLocals(body), logger)}
}

// IsInitializedAt reports whether l may be initialized right before statement
// index of block n.
func (r InitializedLocalsResults) IsInitializedAt(n cfg.Node, index int, l mir.Local) bool {
	return r.StateBefore(n, index).Contains(int(l))
}
