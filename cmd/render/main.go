// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.

// render: a tool for rendering control-flow structure of Go programs.
// For each analyzed function it writes the control-flow graph as a .dot file,
// and optionally the dominator tree and a report of the elementary cycles.
// With -edgelist, it renders a hand-written graph instead of Go packages.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/ssa"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/config"
	"github.com/awslabs/cfa-go-tools/analysis/dominators"
	render "github.com/awslabs/cfa-go-tools/analysis/rendering"
	"github.com/awslabs/cfa-go-tools/analysis/ssacfg"
	"github.com/awslabs/cfa-go-tools/internal/formatutil"
	"github.com/awslabs/cfa-go-tools/internal/funcutil"
	"github.com/awslabs/cfa-go-tools/internal/graphutil"
)

var (
	configPath   = flag.String("config", "", "Config file")
	outFlag      = flag.String("output", "", "Output directory for .dot files (overrides config)")
	domTreeFlag  = flag.Bool("domtree", false, "Also render the dominator tree of each function")
	loopsFlag    = flag.Bool("loops", false, "Report the elementary cycles of each function")
	edgeListFlag = flag.String("edgelist", "", "Render a graph given as an edge-list file instead of packages")
)

func init() {
	flag.Var(&buildmode, "build", ssa.BuilderModeDoc)
}

var (
	buildmode = ssa.BuilderMode(0)
)

const usage = ` Render control-flow graphs and dominator trees of your packages.
Usage:
    render [options] <package path(s)>
Examples:
Render the CFG and dominator tree of every function of a package
% render -domtree -output out package...
Report the loops of the functions matching a config filter
% render -config config.yaml -loops package...
Render a hand-written graph
% render -domtree -edgelist graph.txt
`

func main() {
	flag.Parse()

	if flag.NArg() == 0 && *edgeListFlag == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
		os.Exit(2)
	}

	renderConfig := config.NewDefault()
	if *configPath != "" {
		config.SetGlobalConfig(*configPath)
		cfgFromFile, err := config.LoadGlobal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		renderConfig = cfgFromFile
	}
	if *outFlag != "" {
		renderConfig.OutputDir = *outFlag
	}
	if *domTreeFlag {
		renderConfig.RenderDomTree = true
	}
	if *loopsFlag {
		renderConfig.ReportLoops = true
	}
	logger := config.NewLogGroup(renderConfig)

	outDir := renderConfig.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Could not create directory %s: %v\n", outDir, err)
		os.Exit(1)
	}

	if *edgeListFlag != "" {
		g, err := parseEdgeList(*edgeListFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		name := strings.TrimSuffix(filepath.Base(*edgeListFlag), filepath.Ext(*edgeListFlag))
		if err := renderGraph(renderConfig, logger, name, g, outDir); err != nil {
			fmt.Fprintf(os.Stderr, formatutil.Red(fmt.Sprintf("Could not render %s: %v", name, err))+"\n")
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, formatutil.Faint("Reading sources")+"\n")

	program, err := ssacfg.LoadProgram(nil, buildmode, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load program: %v\n", err)
		os.Exit(1)
	}

	for _, f := range ssacfg.SourceFunctions(program) {
		if !renderConfig.MatchFunc(f.String()) {
			continue
		}
		if err := renderGraph(renderConfig, logger, f.String(), ssacfg.New(f), outDir); err != nil {
			fmt.Fprintf(os.Stderr, formatutil.Red(fmt.Sprintf("Could not render %s: %v", f, err))+"\n")
			os.Exit(1)
		}
	}
}

func renderGraph(c *config.Config, logger *config.LogGroup, name string, g cfg.Graph, outDir string) error {
	base := filepath.Join(outDir, fileSafe(name))

	logger.Infof("rendering %s (%d blocks)", name, g.NumNodes())
	if err := render.GraphvizToFile(g, name, base+".cfg.dot"); err != nil {
		return err
	}

	if c.RenderDomTree {
		dt := dominators.Compute(g)
		if err := render.DomTreeToFile(dt, g, name, base+".dom.dot"); err != nil {
			return err
		}
	}

	if c.ReportLoops {
		reportLoops(logger, name, g)
	}
	return nil
}

func reportLoops(logger *config.LogGroup, name string, g cfg.Graph) {
	cycles := graphutil.FindAllElementaryCycles(g)
	if len(cycles) == 0 {
		logger.Infof("%s: no loops", name)
		return
	}
	for _, cycle := range cycles {
		parts := funcutil.Map(cycle, func(n cfg.Node) string { return fmt.Sprintf("b%d", n) })
		logger.Infof("%s: loop %s", name, strings.Join(parts, " -> "))
	}
}

// fileSafe maps a function's printed name to a usable file name.
func fileSafe(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "*", "", "(", "", ")", "", " ", "")
	return r.Replace(name)
}
