package layout

import (
	"fmt"
	"strings"

	"github.com/i3keep/i3keep/internal/model"
)

const indentUnit = "    "

// writer accumulates the indented lines of a document.
type writer struct {
	b      strings.Builder
	indent int
}

func (w *writer) prefix() {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString(indentUnit)
	}
}

func (w *writer) line(s string) {
	w.prefix()
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

// commented writes a line with the comment marker inserted right after the
// indentation.
func (w *writer) commented(s string) {
	w.prefix()
	w.b.WriteString("// ")
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) String() string { return w.b.String() }

// emitNode renders one node as a self-contained block. Scalar and structured
// fields come first, then the child arrays; the closing brace takes a comma
// unless the node is the last sibling of its parent array.
func emitNode(w *writer, n model.Node, keys []string, last bool) {
	w.line("{")
	w.indent++

	if desc := describe(n); desc != "" {
		w.commented(desc)
	}

	entries := nodeEntries(n, keys)
	hasChildren := len(n.Nodes) > 0 || len(n.FloatingNodes) > 0
	for i, e := range entries {
		writeEntry(w, e.key, e.val, i == len(entries)-1 && !hasChildren)
	}

	if len(n.Nodes) > 0 {
		w.line(`"nodes": [`)
		w.indent++
		for i := range n.Nodes {
			emitNode(w, n.Nodes[i], keys, i == len(n.Nodes)-1)
		}
		w.indent--
		if len(n.FloatingNodes) > 0 {
			w.line("],")
		} else {
			w.line("]")
		}
	}
	if len(n.FloatingNodes) > 0 {
		w.line(`"floating_nodes": [`)
		w.indent++
		for i := range n.FloatingNodes {
			emitNode(w, n.FloatingNodes[i], keys, i == len(n.FloatingNodes)-1)
		}
		w.indent--
		w.line("]")
	}

	w.indent--
	if last {
		w.line("}")
	} else {
		w.line("},")
	}
}

// writeEntry renders one "key": value pair. last suppresses the trailing
// comma. Advisory scalars are commented out, comma included, so
// uncommenting a criterion needs no further edits.
func writeEntry(w *writer, key string, val fieldValue, last bool) {
	comma := ","
	if last {
		comma = ""
	}
	switch val.kind {
	case scalarValue:
		s := fmt.Sprintf("%q: %s%s", key, val.scalar, comma)
		if val.advisory {
			w.commented(s)
		} else {
			w.line(s)
		}
	case mapValue:
		w.line(fmt.Sprintf("%q: {", key))
		w.indent++
		for i, e := range val.entries {
			writeEntry(w, e.key, e.val, i == len(val.entries)-1)
		}
		w.indent--
		w.line("}" + comma)
	case seqValue:
		w.line(fmt.Sprintf("%q: [", key))
		w.indent++
		for i, item := range val.items {
			writeItem(w, item, i == len(val.items)-1)
		}
		w.indent--
		w.line("]" + comma)
	}
}

// writeItem renders one array element.
func writeItem(w *writer, item fieldValue, last bool) {
	comma := ","
	if last {
		comma = ""
	}
	switch item.kind {
	case scalarValue:
		if item.advisory {
			w.commented(item.scalar + comma)
		} else {
			w.line(item.scalar + comma)
		}
	case mapValue:
		w.line("{")
		w.indent++
		for i, e := range item.entries {
			writeEntry(w, e.key, e.val, i == len(item.entries)-1)
		}
		w.indent--
		w.line("}" + comma)
	case seqValue:
		w.line("[")
		w.indent++
		for i, nested := range item.items {
			writeItem(w, nested, i == len(item.items)-1)
		}
		w.indent--
		w.line("]" + comma)
	}
}
