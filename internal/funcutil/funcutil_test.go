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

package funcutil

import (
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	want := []string{"1", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Map result = %v, want %v", got, want)
		}
	}
	if out := Map([]int(nil), strconv.Itoa); len(out) != 0 {
		t.Errorf("mapping an empty slice should yield an empty slice")
	}
}

func TestReverse(t *testing.T) {
	a := []int{1, 2, 3, 4}
	Reverse(a)
	want := []int{4, 3, 2, 1}
	for i := range want {
		if a[i] != want[i] {
			t.Errorf("Reverse result = %v, want %v", a, want)
		}
	}
	b := []int{1}
	Reverse(b)
	if b[0] != 1 {
		t.Errorf("reversing a singleton changed it")
	}
}

func TestContains(t *testing.T) {
	a := []string{"x", "y"}
	if !Contains(a, "x") || Contains(a, "z") {
		t.Errorf("Contains misreported membership in %v", a)
	}
}
