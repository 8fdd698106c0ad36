package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes the NFA in Graphviz DOT format. Epsilon edges are labeled
// "ε" and accepting states are drawn as double circles.
func (n *NFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	fmt.Fprintln(bw, "    _start [shape=point];")
	fmt.Fprintf(bw, "    _start -> n%d;\n", n.start)

	for i := range n.states {
		s := &n.states[i]
		shape := "circle"
		if s.kind == StateMatch {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    n%d [shape=%s];\n", s.id, shape)

		switch s.kind {
		case StateRune:
			fmt.Fprintf(bw, "    n%d -> n%d [label=%s];\n", s.id, s.next, dotLabel(string(s.r)))
		case StateClass:
			fmt.Fprintf(bw, "    n%d -> n%d [label=%s];\n", s.id, s.next, dotLabel(s.class.String()))
		case StateEpsilon:
			fmt.Fprintf(bw, "    n%d -> n%d [label=\"ε\"];\n", s.id, s.next)
		case StateSplit:
			fmt.Fprintf(bw, "    n%d -> n%d [label=\"ε\"];\n", s.id, s.left)
			fmt.Fprintf(bw, "    n%d -> n%d [label=\"ε\"];\n", s.id, s.right)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// dotLabel quotes a label for DOT. strconv quoting escapes '"', '\\' and
// control characters, which DOT accepts in quoted strings.
func dotLabel(s string) string {
	return strconv.Quote(s)
}
