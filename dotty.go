package segtree

import (
	"fmt"
	"io"
	"strings"
)

// Tree2Dot outputs the top levels of the internal structure of a Tree in
// Graphviz DOT format (for debugging purposes). Nodes deeper than depth levels
// below the root are omitted; depth ≤ 0 outputs the complete tree.
//
// Tree2Dot does not push down pending updates. Nodes carrying a pending update
// are highlighted and show the update, their descendents show stale summaries.
func Tree2Dot(t *Tree, w io.Writer, depth int) error {
	if t == nil || t.n == 0 {
		return fmt.Errorf("%w: no tree to output", ErrInvalidInput)
	}
	var nodelist, edgelist strings.Builder
	var walk func(i, lo, hi, level int)
	walk = func(i, lo, hi, level int) {
		nd := t.nodes[i]
		nodelist.WriteString(fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", i, dotLabel(nd, lo, hi),
			nodeDotStyles(nd, lo == hi)))
		if lo == hi || (depth > 0 && level+1 >= depth) {
			return
		}
		mid := lo + (hi-lo)/2
		edgelist.WriteString(fmt.Sprintf("\"%d\" -> \"%d\";\n", i, 2*i+1))
		edgelist.WriteString(fmt.Sprintf("\"%d\" -> \"%d\";\n", i, 2*i+2))
		walk(2*i+1, lo, mid, level+1)
		walk(2*i+2, mid+1, hi, level+1)
	}
	walk(0, 0, t.n-1, 0)
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodelist.String())
	write(edgelist.String())
	write("}\n")
	if err != nil {
		T().Errorf("segtree DOT: %s", err.Error())
	}
	return err
}

func dotLabel(nd node, lo, hi int) string {
	var label string
	if lo == hi {
		label = fmt.Sprintf("day %d", lo)
	} else {
		label = fmt.Sprintf("days %d…%d", lo, hi)
	}
	s := nd.sum
	if s.IsEmpty() {
		label += "\\nno data"
	} else {
		label += fmt.Sprintf("\\nmax %g @%d\\nmin %g @%d\\nsum %g", s.Max, s.MaxDay,
			s.Min, s.MinDay, s.Sum)
	}
	if !nd.lazy.IsEmpty() {
		label += "\\npending " + nd.lazy.String()
	}
	return label
}

func nodeDotStyles(nd node, isleaf bool) string {
	s := ",shape=box"
	if isleaf {
		s += ",style=filled"
	} else {
		s += ",color=black,style=\"rounded,filled\""
	}
	switch {
	case !nd.lazy.IsEmpty():
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexhlcolors[4])
	case nd.sum.IsEmpty():
		s += ",fillcolor=white"
	default:
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[2])
	}
	return s
}

var hexhlcolors = [...]string{"#FFEEDD", "#FFDDCC", "#FFCCAA", "#FFBB88", "#FFAA66",
	"#FF9944", "#FF8822", "#FF7700", "#ff6600"}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
