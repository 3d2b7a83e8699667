package model

// Normalize returns a trimmed copy of the subtree holding only the fields
// needed to recreate the layout. The input is never mutated and the result
// shares no memory with it.
//
// Per node:
//   - layout is dropped on leaves, where it is meaningless
//   - name and window identity attributes are kept only on leaves; internal
//     container names are generated debug artifacts
//   - rect is kept only on floating containers; tiling containers get their
//     rect from the layout
//   - ids, workspace numbers and focus state are dropped
//   - empty marks are dropped
//
// fullscreen_mode 0, current_border_width -1 and the all-zero geometry pass
// through unchanged: they are the "absent" encodings the emitter elides.
// Normalize is idempotent.
func Normalize(n Node) Node {
	leaf := n.IsLeaf()

	out := Node{
		Kind:               n.Kind,
		Border:             n.Border,
		CurrentBorderWidth: n.CurrentBorderWidth,
		Floating:           n.Floating,
		FullscreenMode:     n.FullscreenMode,
		Geometry:           n.Geometry,
	}
	if !leaf {
		out.Layout = n.Layout
	}
	if leaf {
		if n.Name != nil {
			name := *n.Name
			out.Name = &name
		}
		if len(n.WindowProperties) > 0 {
			props := make(WindowProperties, len(n.WindowProperties))
			for k, v := range n.WindowProperties {
				props[k] = v
			}
			out.WindowProperties = props
		}
	}
	if n.Percent != nil {
		percent := *n.Percent
		out.Percent = &percent
	}
	if n.Kind == KindFloatingCon {
		out.Rect = n.Rect
	}
	if len(n.Marks) > 0 {
		out.Marks = append([]string(nil), n.Marks...)
	}
	if len(n.Nodes) > 0 {
		out.Nodes = make([]Node, len(n.Nodes))
		for i, c := range n.Nodes {
			out.Nodes[i] = Normalize(c)
		}
	}
	if len(n.FloatingNodes) > 0 {
		out.FloatingNodes = make([]Node, len(n.FloatingNodes))
		for i, c := range n.FloatingNodes {
			out.FloatingNodes[i] = Normalize(c)
		}
	}
	return out
}
