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

package ssacfg

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/dominators"
)

const src = `package p

func branchy(b bool, n int) int {
	x := 0
	if b {
		x = 1
	} else {
		x = 2
	}
	for i := 0; i < n; i++ {
		x += i
		if x > 100 {
			break
		}
	}
	switch x {
	case 1:
		x = 10
	case 2:
		x = 20
	default:
		x = 30
	}
	return x
}
`

// buildFunction compiles src in isolation and returns the named function.
func buildFunction(t *testing.T, name string) *ssa.Function {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	pkg, _, err := ssautil.BuildPackage(
		&types.Config{}, fset, types.NewPackage("p", "p"), []*ast.File{file}, ssa.SanityCheckFunctions)
	if err != nil {
		t.Fatalf("failed to build SSA: %v", err)
	}
	f := pkg.Func(name)
	if f == nil {
		t.Fatalf("function %s not found", name)
	}
	return f
}

func TestGraph_mirrorsBlockStructure(t *testing.T) {
	f := buildFunction(t, "branchy")
	g := New(f)
	if g.NumNodes() != len(f.Blocks) {
		t.Fatalf("NumNodes() = %d, want %d", g.NumNodes(), len(f.Blocks))
	}
	if g.StartNode() != 0 {
		t.Errorf("StartNode() = %d, want 0", g.StartNode())
	}
	for _, b := range f.Blocks {
		succs := g.Successors(cfg.Node(b.Index))
		if len(succs) != len(b.Succs) {
			t.Errorf("block %d has %d successors, want %d", b.Index, len(succs), len(b.Succs))
			continue
		}
		for i, s := range b.Succs {
			if int(succs[i].To) != s.Index {
				t.Errorf("block %d successor %d = %d, want %d", b.Index, i, succs[i].To, s.Index)
			}
		}
		if g.NumStatements(cfg.Node(b.Index)) != len(b.Instrs) {
			t.Errorf("block %d statement count mismatch", b.Index)
		}
		if g.Block(cfg.Node(b.Index)) != b {
			t.Errorf("Block(%d) does not round-trip", b.Index)
		}
	}
}

func TestCompute_agreesWithSsaDominators(t *testing.T) {
	// The ssa package computes dominators with the Lengauer-Tarjan algorithm;
	// the bit-set builder must produce the identical tree.
	f := buildFunction(t, "branchy")
	g := New(f)
	d := dominators.Compute(g)
	for _, b := range f.Blocks {
		n := cfg.Node(b.Index)
		if b.Idom() == nil {
			if !d.IsReachable(n) {
				continue
			}
			// The entry block is its own immediate dominator in our convention.
			idom, err := d.ImmediateDominator(n)
			if err != nil || idom != n {
				t.Errorf("entry block %d: idom = %d, %v, want itself", b.Index, idom, err)
			}
			continue
		}
		idom, err := d.ImmediateDominator(n)
		if err != nil {
			t.Errorf("ImmediateDominator(%d) failed: %v", b.Index, err)
			continue
		}
		if int(idom) != b.Idom().Index {
			t.Errorf("block %d: idom = %d, ssa says %d", b.Index, idom, b.Idom().Index)
		}
	}
}

func TestGraph_emptyFunctionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for a function without blocks")
		}
	}()
	New(&ssa.Function{})
}
