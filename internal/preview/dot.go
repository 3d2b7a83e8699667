// Package preview renders layout trees as graphs and raster thumbnails.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/i3keep/i3keep/internal/model"
)

// ToDOT converts a layout tree to Graphviz DOT format. The resulting DOT
// string can be piped to the dot tool or rendered with [RenderSVG].
//
// Tiling containment is drawn with solid edges, floating containment with
// dashed ones.
func ToDOT(root model.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	writeNodes(&buf, root)
	buf.WriteString("\n")
	writeEdges(&buf, root)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, n model.Node) {
	fmt.Fprintf(buf, "  %q [%s];\n", nodeID(n), strings.Join(fmtAttrs(n), ", "))
	for _, child := range n.Nodes {
		writeNodes(buf, child)
	}
	for _, child := range n.FloatingNodes {
		writeNodes(buf, child)
	}
}

func writeEdges(buf *bytes.Buffer, n model.Node) {
	for _, child := range n.Nodes {
		fmt.Fprintf(buf, "  %q -> %q;\n", nodeID(n), nodeID(child))
		writeEdges(buf, child)
	}
	for _, child := range n.FloatingNodes {
		fmt.Fprintf(buf, "  %q -> %q [style=dashed];\n", nodeID(n), nodeID(child))
		writeEdges(buf, child)
	}
}

func nodeID(n model.Node) string {
	return strconv.FormatInt(n.ID, 10)
}

func fmtLabel(n model.Node) string {
	label := n.Kind
	switch {
	case n.Name != nil && *n.Name != "":
		label += "\n" + *n.Name
	case n.Layout != "":
		label += "\n" + n.Layout
	}
	return label
}

func fmtAttrs(n model.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n))}
	switch {
	case n.Kind == model.KindFloatingCon:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Kind == model.KindWorkspace:
		attrs = append(attrs, "fillcolor=lightyellow")
	case n.IsLeaf():
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
