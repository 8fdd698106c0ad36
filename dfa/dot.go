package dfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Dophin2009/regexp2/internal/conv"
	"github.com/Dophin2009/regexp2/syntax"
)

// WriteDOT writes the DFA in Graphviz DOT format. The dead state and the
// edges into it are left out; parallel edges are merged into one edge
// labeled with a character class.
func (d *DFA) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph DFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	fmt.Fprintln(bw, "    _start [shape=point];")
	fmt.Fprintf(bw, "    _start -> d%d;\n", d.start)

	for id := 1; id < d.States(); id++ {
		shape := "circle"
		if d.accept[id] {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    d%d [shape=%s];\n", id, shape)

		// Edges are emitted in order of first class so output is stable.
		var order []StateID
		ranges := make(map[StateID][]syntax.Range)
		for c := 0; c < d.stride; c++ {
			next := d.table[id*d.stride+c]
			if next == DeadState {
				continue
			}
			if _, ok := ranges[next]; !ok {
				order = append(order, next)
			}
			lo, hi := d.alphabet.Range(conv.IntToUint32(c))
			ranges[next] = append(ranges[next], syntax.Range{Lo: lo, Hi: hi})
		}
		for _, next := range order {
			label := syntax.NewCharClass(ranges[next], false).String()
			fmt.Fprintf(bw, "    d%d -> d%d [label=%s];\n", id, next, strconv.Quote(label))
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
