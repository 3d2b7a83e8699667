package model

import "strconv"

// Find walks the tree in preorder — the node itself, then tiling children,
// then floating children — and returns the first node for which pred
// returns true. A matching node is returned as-is, not descended into.
// Find returns nil when nothing matches.
func Find(root *Node, pred func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	if pred(root) {
		return root
	}
	for i := range root.Nodes {
		if n := Find(&root.Nodes[i], pred); n != nil {
			return n
		}
	}
	for i := range root.FloatingNodes {
		if n := Find(&root.FloatingNodes[i], pred); n != nil {
			return n
		}
	}
	return nil
}

// ByWorkspace matches a workspace by name. When target is numeric it also
// matches on the workspace number, so "2" finds the workspace named
// "2: mail".
func ByWorkspace(target string) func(*Node) bool {
	num, err := strconv.Atoi(target)
	numeric := err == nil
	return func(n *Node) bool {
		if n.Kind != KindWorkspace {
			return false
		}
		if n.Name != nil && *n.Name == target {
			return true
		}
		return numeric && n.Num == num
	}
}

// ByOutput matches an output by name.
func ByOutput(target string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Kind == KindOutput && n.Name != nil && *n.Name == target
	}
}

// Content returns the content area of an output: the first direct child of
// plain container kind. Dock areas (status bars) sit alongside it and are
// skipped. Returns nil when the output has no content container.
func Content(output *Node) *Node {
	if output == nil {
		return nil
	}
	for i := range output.Nodes {
		if output.Nodes[i].Kind == KindCon {
			return &output.Nodes[i]
		}
	}
	return nil
}
