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

import "fmt"

type flatLevel uint8

const (
	flatBottom flatLevel = iota
	flatElem
	flatTop
)

// FlatSet extends a type T with top and bottom elements to make it a
// three-level lattice in which no two values of T are comparable with each
// other: joining two different elements goes straight to top, meeting them
// goes straight to bottom.
type FlatSet[T comparable] struct {
	level flatLevel
	elem  T
}

// FlatBottom returns the bottom element of the flat lattice.
func FlatBottom[T comparable]() FlatSet[T] {
	return FlatSet[T]{level: flatBottom}
}

// FlatElem returns the flat lattice element holding x.
func FlatElem[T comparable](x T) FlatSet[T] {
	return FlatSet[T]{level: flatElem, elem: x}
}

// FlatTop returns the top element of the flat lattice.
func FlatTop[T comparable]() FlatSet[T] {
	return FlatSet[T]{level: flatTop}
}

// IsBottom reports whether f is the bottom element.
func (f *FlatSet[T]) IsBottom() bool { return f.level == flatBottom }

// IsTop reports whether f is the top element.
func (f *FlatSet[T]) IsTop() bool { return f.level == flatTop }

// Elem returns the element held by f and true, or the zero value and false
// when f is top or bottom.
func (f *FlatSet[T]) Elem() (T, bool) {
	if f.level == flatElem {
		return f.elem, true
	}
	var zero T
	return zero, false
}

// Join merges other into f: bottom joined with an element yields the element,
// equal elements are unchanged, and anything involving top or two different
// elements yields top.
func (f *FlatSet[T]) Join(other *FlatSet[T]) bool {
	switch {
	case f.level == flatTop || other.level == flatBottom:
		return false
	case f.level == flatElem && other.level == flatElem && f.elem == other.elem:
		return false
	case f.level == flatBottom && other.level == flatElem:
		*f = FlatElem(other.elem)
		return true
	default:
		*f = FlatTop[T]()
		return true
	}
}

// Meet merges other into f, mirroring Join: top met with an element yields
// the element, and anything involving bottom or two different elements yields
// bottom.
func (f *FlatSet[T]) Meet(other *FlatSet[T]) bool {
	switch {
	case f.level == flatBottom || other.level == flatTop:
		return false
	case f.level == flatElem && other.level == flatElem && f.elem == other.elem:
		return false
	case f.level == flatTop && other.level == flatElem:
		*f = FlatElem(other.elem)
		return true
	default:
		*f = FlatBottom[T]()
		return true
	}
}

func (f FlatSet[T]) String() string {
	switch f.level {
	case flatBottom:
		return "⊥"
	case flatTop:
		return "⊤"
	default:
		return fmt.Sprintf("%v", f.elem)
	}
}
