// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("could not write temp file: %v", err)
	}
	return path
}

func TestParseEdgeList(t *testing.T) {
	path := writeTemp(t, `# diamond
4 0
0 1
0 2
1 3
2 3
`)
	g, err := parseEdgeList(path)
	if err != nil {
		t.Fatalf("parseEdgeList failed: %v", err)
	}
	if g.NumNodes() != 4 || g.StartNode() != 0 {
		t.Errorf("graph has %d nodes, start %d; want 4, 0", g.NumNodes(), g.StartNode())
	}
	if len(g.Successors(0)) != 2 || len(g.Predecessors(3)) != 2 {
		t.Errorf("edges not parsed: succs(0)=%v preds(3)=%v", g.Successors(0), g.Predecessors(3))
	}
}

func TestParseEdgeList_errors(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"bad header":      "x y\n",
		"zero nodes":      "0 0\n",
		"start oor":       "2 5\n",
		"edge oor":        "2 0\n0 7\n",
		"malformed edge":  "2 0\n0\n",
		"negative header": "-1 0\n",
	}
	for name, content := range cases {
		if _, err := parseEdgeList(writeTemp(t, content)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestFileSafe(t *testing.T) {
	got := fileSafe("(*example.com/pkg.T).Method")
	if got != "example.com_pkg.T.Method" {
		t.Errorf("fileSafe = %q", got)
	}
}
