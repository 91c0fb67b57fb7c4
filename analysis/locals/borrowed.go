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

// HasBeenBorrowedLocals is a may-analysis computing, per program point, the
// set of locals a reference may have been created to at some earlier point.
// Taking a reference through a dereference does not borrow the base local,
// since the referent lives behind the pointer rather than in the local's
// storage. StorageDead ends the borrow: with the storage gone there is
// nothing left for the reference to point at.
type HasBeenBorrowedLocals struct {
	body *mir.Body
}

// NewHasBeenBorrowedLocals returns the borrow analysis over body.
func NewHasBeenBorrowedLocals(body *mir.Body) *HasBeenBorrowedLocals {
	return &HasBeenBorrowedLocals{body: body}
}

// Name implements dataflow.Analysis.
func (a *HasBeenBorrowedLocals) Name() string { return "has-been-borrowed-locals" }

// Bottom implements dataflow.Analysis; no local is borrowed.
func (a *HasBeenBorrowedLocals) Bottom(dataflow.Body) *lattice.BitSet {
	return lattice.NewBitSet(a.body.NumLocals())
}

// Clone implements dataflow.Analysis.
func (a *HasBeenBorrowedLocals) Clone(state *lattice.BitSet) *lattice.BitSet {
	return state.Clone()
}

// InitializeStartBlock implements dataflow.Analysis. Nothing is borrowed on
// function entry.
func (a *HasBeenBorrowedLocals) InitializeStartBlock(dataflow.Body, *lattice.BitSet) {}

// StatementEffect implements dataflow.Analysis.
func (a *HasBeenBorrowedLocals) StatementEffect(state *lattice.BitSet, n cfg.Node, index int) {
	s := a.body.Statement(n, index)
	switch s.Kind {
	case mir.StmtAssign:
		if s.Rvalue.Kind == mir.RvalueRef && !s.Rvalue.Place.HasDeref() {
			state.Insert(int(s.Rvalue.Place.Local))
		}
	case mir.StmtStorageDead:
		state.Remove(int(s.Place.Local))
	}
}

// TerminatorEffect implements dataflow.Analysis; no terminator creates a
// reference.
func (a *HasBeenBorrowedLocals) TerminatorEffect(*lattice.BitSet, cfg.Node) {}

// CallReturnEffect implements dataflow.Analysis.
func (a *HasBeenBorrowedLocals) CallReturnEffect(*lattice.BitSet, cfg.Node, cfg.Node) {}

// ResumeEffect implements dataflow.Analysis.
func (a *HasBeenBorrowedLocals) ResumeEffect(*lattice.BitSet, cfg.Node, cfg.Node) {}

// BorrowedLocalsResults answers borrow queries from a converged run.
type BorrowedLocalsResults struct {
	*dataflow.Results[*lattice.BitSet]
}

// RunHasBeenBorrowedLocals converges the borrow analysis over body.
func RunHasBeenBorrowedLocals(body *mir.Body, logger *config.LogGroup) BorrowedLocalsResults {
	return BorrowedLocalsResults{dataflow.Run[*lattice.BitSet](body, NewHasBeenBorrowedLocals(body), logger)}
}

// IsBorrowedAt reports whether l may have been borrowed right before
// statement index of block n.
func (r BorrowedLocalsResults) IsBorrowedAt(n cfg.Node, index int, l mir.Local) bool {
	return r.StateBefore(n, index).Contains(int(l))
}
