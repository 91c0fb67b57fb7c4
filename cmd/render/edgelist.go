// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
)

// parseEdgeList reads a hand-written graph description: the first
// non-comment line is "<numNodes> <startNode>", every following line one
// "<from> <to>" edge. Lines starting with '#' are comments.
func parseEdgeList(filename string) (*cfg.Mutable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open edge list: %w", err)
	}
	defer f.Close()

	var g *cfg.Mutable
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if g == nil {
			var numNodes int
			var start cfg.Node
			if _, err := fmt.Sscanf(line, "%d %d", &numNodes, &start); err != nil {
				return nil, fmt.Errorf("%s:%d: expected \"<numNodes> <startNode>\": %w", filename, lineno, err)
			}
			if numNodes <= 0 || int(start) < 0 || int(start) >= numNodes {
				return nil, fmt.Errorf("%s:%d: invalid header %q", filename, lineno, line)
			}
			g = cfg.NewMutable(numNodes)
			g.SetStart(start)
			continue
		}
		var from, to cfg.Node
		if _, err := fmt.Sscanf(line, "%d %d", &from, &to); err != nil {
			return nil, fmt.Errorf("%s:%d: expected \"<from> <to>\": %w", filename, lineno, err)
		}
		if int(from) < 0 || int(from) >= g.NumNodes() || int(to) < 0 || int(to) >= g.NumNodes() {
			return nil, fmt.Errorf("%s:%d: edge %d -> %d out of range [0, %d)", filename, lineno, from, to, g.NumNodes())
		}
		g.AddEdge(from, to)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read edge list: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("%s: empty edge list", filename)
	}
	return g, nil
}
