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

package lattice

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// BitSet is a fixed-capacity set of small non-negative integers, packed into
// machine words. As a lattice it is the powerset of {0, ..., size-1} ordered
// by inclusion: join is set union and meet is set intersection. Equivalently,
// it is an efficient product of two-point lattices, which makes it the usual
// domain for per-local gen/kill analyses.
type BitSet struct {
	size  int
	words []uint64
}

// NewBitSet returns an empty bit set with capacity for elements 0 to size-1.
func NewBitSet(size int) *BitSet {
	return &BitSet{
		size:  size,
		words: make([]uint64, (size+wordBits-1)/wordBits),
	}
}

// NewFilledBitSet returns a bit set containing every element of the domain.
func NewFilledBitSet(size int) *BitSet {
	s := NewBitSet(size)
	s.Fill()
	return s
}

// Size returns the capacity of the domain, not the number of elements.
func (s *BitSet) Size() int { return s.size }

func (s *BitSet) check(i int) {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("lattice: bit %d out of range [0, %d)", i, s.size))
	}
}

// Insert adds i to the set and reports whether the set changed.
func (s *BitSet) Insert(i int) bool {
	s.check(i)
	w, mask := i/wordBits, uint64(1)<<(i%wordBits)
	old := s.words[w]
	s.words[w] = old | mask
	return old&mask == 0
}

// Remove deletes i from the set and reports whether the set changed.
func (s *BitSet) Remove(i int) bool {
	s.check(i)
	w, mask := i/wordBits, uint64(1)<<(i%wordBits)
	old := s.words[w]
	s.words[w] = old &^ mask
	return old&mask != 0
}

// Contains reports whether i is in the set.
func (s *BitSet) Contains(i int) bool {
	s.check(i)
	return s.words[i/wordBits]&(uint64(1)<<(i%wordBits)) != 0
}

// Clear removes every element from the set.
func (s *BitSet) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// Fill inserts every element of the domain into the set.
func (s *BitSet) Fill() {
	if len(s.words) == 0 {
		return
	}
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	// Mask out the bits beyond the domain in the last word.
	if rem := s.size % wordBits; rem != 0 {
		s.words[len(s.words)-1] = (uint64(1) << rem) - 1
	}
}

// Union adds every element of other to s and reports whether s changed. The
// two sets must have the same domain size.
func (s *BitSet) Union(other *BitSet) bool {
	s.checkSize(other)
	changed := false
	for i, w := range other.words {
		old := s.words[i]
		s.words[i] = old | w
		changed = changed || s.words[i] != old
	}
	return changed
}

// Intersect removes from s every element not in other and reports whether s
// changed. The two sets must have the same domain size.
func (s *BitSet) Intersect(other *BitSet) bool {
	s.checkSize(other)
	changed := false
	for i, w := range other.words {
		old := s.words[i]
		s.words[i] = old & w
		changed = changed || s.words[i] != old
	}
	return changed
}

// IntersectDest sets s to the intersection of a and b, discarding the
// previous contents of s. All three sets must have the same domain size.
func (s *BitSet) IntersectDest(a *BitSet, b *BitSet) {
	s.checkSize(a)
	s.checkSize(b)
	for i := range s.words {
		s.words[i] = a.words[i] & b.words[i]
	}
}

// Equal reports whether the two sets contain exactly the same elements.
func (s *BitSet) Equal(other *BitSet) bool {
	if s.size != other.size {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s *BitSet) Clone() *BitSet {
	c := NewBitSet(s.size)
	copy(c.words, s.words)
	return c
}

// CopyFrom overwrites s with the contents of other. The two sets must have
// the same domain size.
func (s *BitSet) CopyFrom(other *BitSet) {
	s.checkSize(other)
	copy(s.words, other.words)
}

// Count returns the number of elements in the set.
func (s *BitSet) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// NextAfter returns the smallest element of the set strictly greater than i,
// or -1 when no such element exists.
func (s *BitSet) NextAfter(i int) int {
	s.check(i)
	w := i / wordBits
	// Mask out bits at or below i in the first word.
	cur := s.words[w] &^ ((uint64(1) << (i%wordBits + 1)) - 1)
	for {
		if cur != 0 {
			return w*wordBits + bits.TrailingZeros64(cur)
		}
		w++
		if w >= len(s.words) {
			return -1
		}
		cur = s.words[w]
	}
}

// Join implements the powerset join, set union.
func (s *BitSet) Join(other *BitSet) bool {
	return s.Union(other)
}

// Meet implements the powerset meet, set intersection.
func (s *BitSet) Meet(other *BitSet) bool {
	return s.Intersect(other)
}

func (s *BitSet) checkSize(other *BitSet) {
	if s.size != other.size {
		panic(fmt.Sprintf("lattice: bit set size mismatch: %d != %d", s.size, other.size))
	}
}

func (s *BitSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	sep := ""
	for i := 0; i < s.size; i++ {
		if s.Contains(i) {
			fmt.Fprintf(&b, "%s%d", sep, i)
			sep = ", "
		}
	}
	b.WriteByte('}')
	return b.String()
}
