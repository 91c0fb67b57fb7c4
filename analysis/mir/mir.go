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

// Package mir defines a small middle-level IR for function bodies: basic
// blocks of statements over numbered locals, ended by a control-transferring
// terminator. It is the statement model interpreted by the local analyses in
// analysis/locals; the dominator builder and the dataflow engine only ever
// see it through the cfg.Graph and dataflow.Body contracts.
package mir

import "github.com/awslabs/cfa-go-tools/analysis/cfg"

// Local numbers a local variable slot of a function body. Locals
// [0, ArgCount) are the function arguments.
type Local int

// ProjElem is one element of a place's access path.
type ProjElem uint8

const (
	// ProjDeref dereferences the value reached so far; what lies behind it is
	// no longer part of the base local's storage.
	ProjDeref ProjElem = iota
	// ProjField selects a field of the value reached so far.
	ProjField
)

// Place is a memory location reachable from a local through an access path.
type Place struct {
	Local      Local
	Projection []ProjElem
}

// PlaceOf returns the place naming l directly, with no projection.
func PlaceOf(l Local) Place {
	return Place{Local: l}
}

// Deref returns p extended with a dereference.
func (p Place) Deref() Place {
	return p.project(ProjDeref)
}

// Field returns p extended with a field selection.
func (p Place) Field() Place {
	return p.project(ProjField)
}

func (p Place) project(e ProjElem) Place {
	proj := make([]ProjElem, len(p.Projection), len(p.Projection)+1)
	copy(proj, p.Projection)
	return Place{Local: p.Local, Projection: append(proj, e)}
}

// IsLocal reports whether p names its base local directly, with no
// projection.
func (p Place) IsLocal() bool {
	return len(p.Projection) == 0
}

// HasDeref reports whether the access path of p goes through a pointer
// dereference, in which case the place is not rooted in the base local's own
// storage.
func (p Place) HasDeref() bool {
	for _, e := range p.Projection {
		if e == ProjDeref {
			return true
		}
	}
	return false
}

// OperandKind distinguishes how an operand uses its place.
type OperandKind uint8

const (
	// OperandConst is a constant; it uses no place.
	OperandConst OperandKind = iota
	// OperandCopy reads the place, leaving it initialized.
	OperandCopy
	// OperandMove reads the place and deinitializes it.
	OperandMove
)

// Operand is a value usable by statements and terminators.
type Operand struct {
	Kind  OperandKind
	Place Place
}

// Const returns a constant operand.
func Const() Operand {
	return Operand{Kind: OperandConst}
}

// Copy returns an operand copying out of p.
func Copy(p Place) Operand {
	return Operand{Kind: OperandCopy, Place: p}
}

// Move returns an operand moving out of p.
func Move(p Place) Operand {
	return Operand{Kind: OperandMove, Place: p}
}

// RvalueKind distinguishes the right-hand sides of assignments.
type RvalueKind uint8

const (
	// RvalueUse produces the value of an operand.
	RvalueUse RvalueKind = iota
	// RvalueRef produces a reference to a place.
	RvalueRef
)

// Rvalue is the right-hand side of an assignment.
type Rvalue struct {
	Kind    RvalueKind
	Operand Operand // RvalueUse
	Place   Place   // RvalueRef
}

// Use returns an rvalue producing the value of op.
func Use(op Operand) Rvalue {
	return Rvalue{Kind: RvalueUse, Operand: op}
}

// Ref returns an rvalue producing a reference to p.
func Ref(p Place) Rvalue {
	return Rvalue{Kind: RvalueRef, Place: p}
}

// StatementKind distinguishes the statement forms.
type StatementKind uint8

const (
	// StmtAssign writes an rvalue into a place.
	StmtAssign StatementKind = iota
	// StmtStorageLive marks the start of a local's storage.
	StmtStorageLive
	// StmtStorageDead marks the end of a local's storage; afterwards there is
	// no memory associated with the local.
	StmtStorageDead
	// StmtNop has no effect.
	StmtNop
)

// Statement is one straight-line statement of a basic block.
type Statement struct {
	Kind   StatementKind
	Place  Place  // StmtAssign destination; StorageLive/StorageDead name a bare local
	Rvalue Rvalue // StmtAssign
}

// Assign returns a statement writing rv into dest.
func Assign(dest Place, rv Rvalue) Statement {
	return Statement{Kind: StmtAssign, Place: dest, Rvalue: rv}
}

// StorageLive returns a statement starting the storage of l.
func StorageLive(l Local) Statement {
	return Statement{Kind: StmtStorageLive, Place: PlaceOf(l)}
}

// StorageDead returns a statement ending the storage of l.
func StorageDead(l Local) Statement {
	return Statement{Kind: StmtStorageDead, Place: PlaceOf(l)}
}

// Nop returns a statement with no effect.
func Nop() Statement {
	return Statement{Kind: StmtNop}
}

// TerminatorKind distinguishes the control-transferring instruction ending a
// basic block.
type TerminatorKind uint8

const (
	// TermReturn leaves the function; no successors.
	TermReturn TerminatorKind = iota
	// TermGoto transfers to a single successor.
	TermGoto
	// TermSwitch picks one of several successors based on a discriminant.
	TermSwitch
	// TermCall calls a function; the destination place becomes defined only
	// on the normal-return edge, not on the unwind edge.
	TermCall
	// TermSuspend suspends the computation; the resume place becomes defined
	// only on the resume edge.
	TermSuspend
)

// Terminator ends a basic block.
type Terminator struct {
	Kind    TerminatorKind
	Targets []cfg.Node // TermGoto (one), TermSwitch (several)
	Discr   Operand    // TermSwitch discriminant
	Dest    Place      // TermCall destination, TermSuspend resume place
	Args    []Operand  // TermCall arguments
	Return  cfg.Node   // TermCall normal-return target
	Unwind  cfg.Node   // TermCall unwind target, or cfg.None
	Resume  cfg.Node   // TermSuspend resume target
}

// Return returns a function-exit terminator.
func Return() Terminator {
	return Terminator{Kind: TermReturn}
}

// Goto returns an unconditional jump to target.
func Goto(target cfg.Node) Terminator {
	return Terminator{Kind: TermGoto, Targets: []cfg.Node{target}}
}

// Switch returns a multi-way branch on discr.
func Switch(discr Operand, targets ...cfg.Node) Terminator {
	return Terminator{Kind: TermSwitch, Discr: discr, Targets: targets}
}

// Call returns a call terminator writing its result to dest, returning to
// ret, and unwinding to unwind (cfg.None when the call cannot unwind).
func Call(dest Place, args []Operand, ret cfg.Node, unwind cfg.Node) Terminator {
	return Terminator{Kind: TermCall, Dest: dest, Args: args, Return: ret, Unwind: unwind}
}

// Suspend returns a suspension terminator whose resumption writes the resumed
// value into dest and continues at resume.
func Suspend(dest Place, resume cfg.Node) Terminator {
	return Terminator{Kind: TermSuspend, Dest: dest, Resume: resume}
}

// BasicBlock is a maximal straight-line statement sequence ending in one
// terminator.
type BasicBlock struct {
	Statements []Statement
	Terminator Terminator
}
