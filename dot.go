package makeultra

import (
	"fmt"
	"io"
)

// WriteDOT renders graph as a DOT digraph with edges but no edge labels
// (spec §6: "-d <file>, --dot <file> ... edges without labels").
func WriteDOT(w io.Writer, graph *FileGraph) error {
	if _, err := fmt.Fprintln(w, "digraph makeultra {"); err != nil {
		return err
	}
	for _, id := range graph.Nodes() {
		src := graph.Path(id)
		for _, e := range graph.OutgoingEdges(id) {
			dst := graph.Path(e.Target)
			if _, err := fmt.Fprintf(w, "\t%q -> %q;\n", src, dst); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
