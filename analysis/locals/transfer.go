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
	"github.com/awslabs/cfa-go-tools/analysis/lattice"
	"github.com/awslabs/cfa-go-tools/analysis/mir"
)

// genKill is the transfer-function capability shared by the initialization
// analyses: gen introduces a fact for a local, kill removes it.
type genKill interface {
	Gen(l mir.Local)
	Kill(l mir.Local)
}

// setTrans applies gen/kill directly to a bit set.
type setTrans struct {
	set *lattice.BitSet
}

func (t setTrans) Gen(l mir.Local)  { t.set.Insert(int(l)) }
func (t setTrans) Kill(l mir.Local) { t.set.Remove(int(l)) }

// initTransfer is the statement/terminator transfer function shared by
// MaybeInitializedLocals and DefinitelyInitializedLocals.
type initTransfer struct {
	trans        genKill
	deinitOnMove bool
}

func (tf initTransfer) statement(s *mir.Statement) {
	switch s.Kind {
	case mir.StmtAssign:
		// Reads happen before the write, mirroring execution order.
		if s.Rvalue.Kind == mir.RvalueUse {
			tf.operand(&s.Rvalue.Operand)
		}
		// A write through the local itself makes it possibly initialized; a
		// write through a dereference mutates the pointee instead.
		if !s.Place.HasDeref() {
			tf.trans.Gen(s.Place.Local)
		}
	case mir.StmtStorageDead:
		tf.trans.Kill(s.Place.Local)
	}
}

func (tf initTransfer) terminator(t *mir.Terminator) {
	switch t.Kind {
	case mir.TermSwitch:
		tf.operand(&t.Discr)
	case mir.TermCall:
		// The destination is gen'd on the return edge, never here.
		for i := range t.Args {
			tf.operand(&t.Args[i])
		}
	}
}

func (tf initTransfer) operand(op *mir.Operand) {
	// Only a full, non-projected move deinitializes the local; a projected
	// move leaves the rest of the local possibly initialized.
	if op.Kind == mir.OperandMove && op.Place.IsLocal() && tf.deinitOnMove {
		tf.trans.Kill(op.Place.Local)
	}
}
