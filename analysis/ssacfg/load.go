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
	"fmt"
	"go/token"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// PkgLoadMode is the default loading mode. We load all the information needed
// to build SSA.
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes

// LoadProgram loads, type checks and builds SSA for the packages matching
// args. To understand how to specify the args, look at the documentation of
// packages.Load.
func LoadProgram(config *packages.Config, buildmode ssa.BuilderMode, args []string) (*ssa.Program, error) {
	if config == nil {
		config = &packages.Config{
			Mode:  PkgLoadMode,
			Tests: false,
			Fset:  token.NewFileSet(),
		}
	}

	initialPackages, err := packages.Load(config, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %v", err)
	}
	if len(initialPackages) == 0 {
		return nil, fmt.Errorf("no packages")
	}
	if packages.PrintErrors(initialPackages) > 0 {
		return nil, fmt.Errorf("errors found, exiting")
	}

	program, ssaPackages := ssautil.AllPackages(initialPackages, buildmode)
	for i, p := range ssaPackages {
		if p == nil {
			return nil, fmt.Errorf("cannot build SSA for package %s", initialPackages[i])
		}
	}
	program.Build()
	return program, nil
}

// SourceFunctions returns the source-level functions of program with at least
// one basic block, sorted by their printed name for deterministic iteration.
func SourceFunctions(program *ssa.Program) []*ssa.Function {
	var funcs []*ssa.Function
	for f := range ssautil.AllFunctions(program) {
		if len(f.Blocks) > 0 && f.Synthetic == "" {
			funcs = append(funcs, f)
		}
	}
	slices.SortFunc(funcs, func(a, b *ssa.Function) bool {
		return a.String() < b.String()
	})
	return funcs
}
