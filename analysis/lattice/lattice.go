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

// Package lattice defines the algebraic merge operators used as the domains
// of dataflow analyses: join- and meet-semilattices, and the canonical
// instances (booleans, products, bit sets, duals and flat sets).
//
// Every instance must satisfy the semilattice laws: the merge operation is
// commutative, associative and idempotent. A single analysis must use only
// one merge direction throughout, all-join or all-meet.
package lattice

// JoinSemiLattice is a partially ordered set that has a least upper bound for
// any pair of elements.
type JoinSemiLattice[T any] interface {
	// Join computes the least upper bound of the receiver and other, storing
	// the result in the receiver and reporting whether the receiver changed.
	Join(other T) bool
}

// MeetSemiLattice is a partially ordered set that has a greatest lower bound
// for any pair of elements.
//
// Dataflow analyses only require their domains to implement JoinSemiLattice,
// not MeetSemiLattice. Domains should implement both so that they can be used
// with Dual.
type MeetSemiLattice[T any] interface {
	// Meet computes the greatest lower bound of the receiver and other,
	// storing the result in the receiver and reporting whether the receiver
	// changed.
	Meet(other T) bool
}

// Lattice is both a join- and a meet-semilattice.
type Lattice[T any] interface {
	JoinSemiLattice[T]
	MeetSemiLattice[T]
}

// Bool is the two-point lattice with true as the top element and false as the
// bottom.
type Bool bool

// Join implements the join of the two-point lattice.
func (b *Bool) Join(other *Bool) bool {
	if !*b && *other {
		*b = true
		return true
	}
	return false
}

// Meet implements the meet of the two-point lattice.
func (b *Bool) Meet(other *Bool) bool {
	if *b && !*other {
		*b = false
		return true
	}
	return false
}

// Product is the componentwise product of a fixed-size sequence of
// sub-lattices: the least upper bound of two products is the sequence of the
// least upper bounds of each component.
type Product[T Lattice[T]] []T

// Join merges other into p componentwise. Both products must have the same
// length.
func (p Product[T]) Join(other Product[T]) bool {
	if len(p) != len(other) {
		panic("lattice: joining products of different lengths")
	}
	changed := false
	for i := range p {
		if p[i].Join(other[i]) {
			changed = true
		}
	}
	return changed
}

// Meet merges other into p componentwise. Both products must have the same
// length.
func (p Product[T]) Meet(other Product[T]) bool {
	if len(p) != len(other) {
		panic("lattice: meeting products of different lengths")
	}
	changed := false
	for i := range p {
		if p[i].Meet(other[i]) {
			changed = true
		}
	}
	return changed
}

// Dual is the counterpart of a lattice under the inverse order: the dual of a
// join-semilattice is a meet-semilattice and vice versa. For example, the
// dual of a powerset has the empty set as its top element and set
// intersection as its join operator. Wrapping a domain in Dual lets a "must"
// analysis reuse the machinery of a "may" analysis.
type Dual[T Lattice[T]] struct {
	X T
}

// Join computes the meet of the underlying lattice.
func (d *Dual[T]) Join(other *Dual[T]) bool {
	return d.X.Meet(other.X)
}

// Meet computes the join of the underlying lattice.
func (d *Dual[T]) Meet(other *Dual[T]) bool {
	return d.X.Join(other.X)
}
