package typestate

import (
	"bytes"
	"fmt"
)

// DOT renders the compiled surface as Graphviz DOT source: one node per
// state (initial states double-circled), one edge per capability. Useful for
// reviewing what the compiler actually admitted.
func (mt *MachineType) DOT() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", mt.name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=circle, fontsize=10];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	for i, s := range mt.states {
		shape := "circle"
		if mt.initial[i] {
			shape = "doublecircle"
		}
		fmt.Fprintf(&buf, "  %q [shape=%s];\n", s, shape)
	}

	for from := range mt.outgoing {
		for _, c := range mt.outgoing[from] {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n",
				mt.states[c.from], mt.states[c.to], mt.events[c.event])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
