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

// Package dataflow implements a generic forward monotone dataflow framework:
// given a control-flow graph and an analysis descriptor, it drives the
// analysis to a fixpoint and yields converged entry and exit facts per node.
//
// The framework is forward-only. A backward analysis is obtained by handing
// the engine a transposed view of the graph. "Must" analyses reuse the
// join-based machinery by wrapping their domain in lattice.Dual.
package dataflow

import (
	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/lattice"
)

// Body is the view of a function body consumed by the engine: its
// control-flow graph plus the number of statements per basic block. The
// engine never interprets statement contents; it only drives effect callbacks
// in program order, so the statements themselves are reached through the
// analysis descriptor, which holds its own reference to the function body.
type Body interface {
	cfg.Graph

	// NumStatements returns the number of statements of block n, not counting
	// the terminator.
	NumStatements(n cfg.Node) int
}

// An Analysis describes a gen/kill-style dataflow analysis over domain D. The
// descriptor is immutable and stateless across the fixpoint loop; all
// per-node state lives in the engine.
//
// Effects mutate the state directly (set fact/clear fact) rather than
// accumulating separate gen and kill masks, so the order in which the engine
// applies them within a block is significant and mirrors execution order.
type Analysis[D lattice.JoinSemiLattice[D]] interface {
	// Name identifies the analysis in logs.
	Name() string

	// Bottom returns a fresh minimal element of the domain for one node.
	Bottom(body Body) D

	// Clone returns an independent copy of state.
	Clone(state D) D

	// InitializeStartBlock mutates the entry state of the start node into the
	// seed of the analysis. All other nodes start at bottom.
	InitializeStartBlock(body Body, state D)

	// StatementEffect applies the effect of statement index of block n.
	StatementEffect(state D, n cfg.Node, index int)

	// TerminatorEffect applies the effect of the terminator of block n.
	TerminatorEffect(state D, n cfg.Node)

	// CallReturnEffect applies the extra effect visible only on the edge from
	// a call block to its normal-return successor, typically marking the
	// call's destination as defined.
	CallReturnEffect(state D, call cfg.Node, ret cfg.Node)

	// ResumeEffect applies the extra effect visible only on the edge resuming
	// a suspended computation, typically marking the receiving place as
	// defined.
	ResumeEffect(state D, suspend cfg.Node, resume cfg.Node)
}
