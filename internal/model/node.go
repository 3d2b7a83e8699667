// Package model defines the window manager's layout tree and the transforms
// i3keep applies to it.
package model

import "encoding/json"

// Node kinds as reported by the i3 IPC protocol. The wire strings are kept
// verbatim so a decoded tree re-emits byte-compatibly.
const (
	KindRoot        = "root"
	KindOutput      = "output"
	KindWorkspace   = "workspace"
	KindCon         = "con"
	KindFloatingCon = "floating_con"
)

// Rect is a rectangle as reported by the window manager.
type Rect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// IsZero reports whether all four fields are zero. A zero rectangle carries
// no position information.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// WindowProperties holds the X11 identity attributes of a window, keyed by
// attribute name (class, instance, title, ...).
type WindowProperties map[string]string

// UnmarshalJSON keeps only string-valued attributes. i3 reports some
// attributes with non-string values (transient_for is null or a window id);
// those cannot serve as match criteria and are dropped.
func (wp *WindowProperties) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	props := make(WindowProperties)
	for k, v := range raw {
		if s, ok := v.(string); ok {
			props[k] = s
		}
	}
	if len(props) == 0 {
		*wp = nil
		return nil
	}
	*wp = props
	return nil
}

// Node is one container in the layout tree. The tree is strictly owned:
// children belong to exactly one parent and there are no cycles, so plain
// recursive values suffice.
//
// Present/absent conventions mirror the IPC wire format: Name and Percent
// are null-able and use pointers, CurrentBorderWidth uses the protocol's -1
// "not set" sentinel, FullscreenMode 0 and the all-zero Rect are the
// "nothing to say" defaults.
type Node struct {
	ID                 int64            `yaml:"id,omitempty"             json:"id,omitempty"`
	Kind               string           `yaml:"type"                     json:"type"`
	Name               *string          `yaml:"name,omitempty"           json:"name,omitempty"`
	Num                int              `yaml:"num,omitempty"            json:"num,omitempty"`
	Border             string           `yaml:"border,omitempty"         json:"border,omitempty"`
	CurrentBorderWidth int              `yaml:"current_border_width"     json:"current_border_width"`
	Layout             string           `yaml:"layout,omitempty"         json:"layout,omitempty"`
	Floating           string           `yaml:"floating,omitempty"       json:"floating,omitempty"`
	Percent            *float64         `yaml:"percent,omitempty"        json:"percent,omitempty"`
	Rect               Rect             `yaml:"rect,omitempty"           json:"rect,omitempty"`
	Geometry           Rect             `yaml:"geometry,omitempty"       json:"geometry,omitempty"`
	FullscreenMode     int              `yaml:"fullscreen_mode,omitempty" json:"fullscreen_mode,omitempty"`
	Focused            bool             `yaml:"focused,omitempty"        json:"focused,omitempty"`
	Marks              []string         `yaml:"marks,omitempty"          json:"marks,omitempty"`
	WindowProperties   WindowProperties `yaml:"window_properties,omitempty" json:"window_properties,omitempty"`
	Nodes              []Node           `yaml:"nodes,omitempty"          json:"nodes,omitempty"`
	FloatingNodes      []Node           `yaml:"floating_nodes,omitempty" json:"floating_nodes,omitempty"`
}

// IsLeaf reports whether the node stands for a single window: a plain
// container with no tiling or floating children. Outputs and workspaces are
// never leaves even when empty.
func (n Node) IsLeaf() bool {
	return n.Kind == KindCon && len(n.Nodes) == 0 && len(n.FloatingNodes) == 0
}

// CountLeaves returns the number of leaf containers in the subtree rooted at
// n, counting n itself when it is a leaf.
func CountLeaves(n Node) int {
	if n.IsLeaf() {
		return 1
	}
	count := 0
	for _, c := range n.Nodes {
		count += CountLeaves(c)
	}
	for _, c := range n.FloatingNodes {
		count += CountLeaves(c)
	}
	return count
}
