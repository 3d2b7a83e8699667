package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/i3keep/i3keep/internal/model"
)

type valueKind int

const (
	scalarValue valueKind = iota
	mapValue
	seqValue
)

// fieldValue is one value in the document tree: a pre-encoded JSON scalar,
// an object of ordered entries, or an array of values. advisory marks a
// scalar that renders commented out.
type fieldValue struct {
	kind     valueKind
	scalar   string
	entries  []mapEntry
	items    []fieldValue
	advisory bool
}

type mapEntry struct {
	key string
	val fieldValue
}

func scalarOf(v any) fieldValue {
	return fieldValue{kind: scalarValue, scalar: jsonScalar(v)}
}

// jsonScalar encodes a single value as JSON without HTML escaping, so window
// titles like "<Untitled>" survive a save/restore round trip unmangled.
func jsonScalar(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// nodeEntries builds the field list of one node, everything except the child
// arrays. Fields are appended in lexicographic key order, which keeps the
// document diff-stable. A field whose value is the protocol's "absent"
// encoding is skipped entirely.
func nodeEntries(n model.Node, keys []string) []mapEntry {
	var entries []mapEntry
	add := func(key string, val fieldValue) {
		entries = append(entries, mapEntry{key: key, val: val})
	}

	if n.Border != "" {
		add("border", scalarOf(n.Border))
	}
	if n.CurrentBorderWidth != -1 {
		add("current_border_width", scalarOf(n.CurrentBorderWidth))
	}
	if n.Floating != "" {
		add("floating", scalarOf(n.Floating))
	}
	if n.FullscreenMode != 0 {
		add("fullscreen_mode", scalarOf(n.FullscreenMode))
	}
	if !n.Geometry.IsZero() {
		add("geometry", rectValue(n.Geometry))
	}
	if n.Layout != "" {
		add("layout", scalarOf(n.Layout))
	}
	if len(n.Marks) > 0 {
		items := make([]fieldValue, len(n.Marks))
		for i, m := range n.Marks {
			items[i] = scalarOf(m)
		}
		add("marks", fieldValue{kind: seqValue, items: items})
	}
	if n.Name != nil {
		add("name", scalarOf(*n.Name))
	}
	if n.Percent != nil {
		add("percent", scalarOf(*n.Percent))
	}
	if !n.Rect.IsZero() {
		add("rect", rectValue(n.Rect))
	}
	if n.IsLeaf() {
		if sw, ok := swallowValue(n.WindowProperties, keys); ok {
			add("swallows", sw)
		}
	}
	add("type", scalarOf(n.Kind))
	return entries
}

func rectValue(r model.Rect) fieldValue {
	return fieldValue{kind: mapValue, entries: []mapEntry{
		{key: "height", val: scalarOf(r.Height)},
		{key: "width", val: scalarOf(r.Width)},
		{key: "x", val: scalarOf(r.X)},
		{key: "y", val: scalarOf(r.Y)},
	}}
}

// swallowValue derives the swallow criteria from a leaf's window identity
// attributes: a one-element array holding a mapping from attribute name to
// an exact-match pattern, the literal value regex-escaped and anchored. The
// criteria render commented out. Reports false when no requested attribute
// is present.
func swallowValue(props model.WindowProperties, keys []string) (fieldValue, bool) {
	var entries []mapEntry
	for _, key := range keys {
		v, ok := props[key]
		if !ok {
			continue
		}
		pattern := "^" + regexp.QuoteMeta(v) + "$"
		entries = append(entries, mapEntry{
			key: key,
			val: fieldValue{kind: scalarValue, scalar: jsonScalar(pattern), advisory: true},
		})
	}
	if len(entries) == 0 {
		return fieldValue{}, false
	}
	mapping := fieldValue{kind: mapValue, entries: entries}
	return fieldValue{kind: seqValue, items: []fieldValue{mapping}}, true
}

// describe returns the summary comment of a non-leaf node, or "" for leaves.
func describe(n model.Node) string {
	if n.IsLeaf() {
		return ""
	}
	children := len(n.Nodes) + len(n.FloatingNodes)
	if n.Kind == model.KindCon {
		return fmt.Sprintf("%s split container with %d children", n.Layout, children)
	}
	return fmt.Sprintf("%s with %d children", n.Kind, children)
}
