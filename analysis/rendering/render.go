package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/awslabs/cfa-go-tools/analysis/cfg"
	"github.com/awslabs/cfa-go-tools/analysis/dominators"
	"github.com/awslabs/cfa-go-tools/internal/graphutil"
)

// WriteGraphviz writes a graphviz representation of the control-flow graph
// to w.
func WriteGraphviz(g cfg.Graph, name string, w io.Writer) error {
	b, err := dot.Marshal(graphutil.New(g), name, "", "  ")
	if err != nil {
		return fmt.Errorf("error while encoding graph: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}

// GraphvizToFile writes the graphviz representation of the control-flow graph
// to filename.
func GraphvizToFile(g cfg.Graph, name string, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	if err := WriteGraphviz(g, name, w); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// WriteDomTree writes a graphviz representation of the dominator tree of g
// to w. Unreachable nodes are omitted; the entry node's self-edge is not
// drawn.
func WriteDomTree(d *dominators.Dominators, g cfg.Graph, name string, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", name); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	for i := 0; i < g.NumNodes(); i++ {
		n := cfg.Node(i)
		idom, err := d.ImmediateDominator(n)
		if err != nil {
			continue
		}
		if idom == n {
			continue
		}
		if _, err := fmt.Fprintf(w, "  \"b%d\" -> \"b%d\";\n", idom, n); err != nil {
			return fmt.Errorf("error while writing in file: %w", err)
		}
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}

// DomTreeToFile writes the graphviz representation of the dominator tree of g
// to filename.
func DomTreeToFile(d *dominators.Dominators, g cfg.Graph, name string, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	if err := WriteDomTree(d, g, name, w); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}
