// Package layout renders a normalized layout subtree as the commented,
// human-editable document the window manager's append_layout command
// consumes.
//
// The document looks like JSON but is not: non-leaf containers carry a
// summary line comment, and the synthesized swallow criteria are emitted
// commented out because they are suggestions a human confirms by
// uncommenting. Output is deterministic — fields appear in lexicographic key
// order and repeated renders are byte-identical.
package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/i3keep/i3keep/internal/model"
)

// Header declares the editing conventions of saved layout files. It is the
// first line of every rendered document.
const Header = "// vim:ts=4:sw=4:et"

// DefaultSwallowKeys are the window attributes turned into swallow criteria
// when the configuration does not restrict them.
var DefaultSwallowKeys = []string{"class", "instance", "machine", "title", "window_role"}

// Options controls rendering. The zero value synthesizes swallow criteria
// from every attribute in DefaultSwallowKeys.
type Options struct {
	// SwallowKeys restricts which window attributes become swallow
	// criteria. Empty means all defaults.
	SwallowKeys []string
}

// Render produces the document for a selected, normalized subtree. Each
// direct child of root — tiling children first, then floating ones — becomes
// one self-contained top-level block, separated by blank lines so a human
// editor can navigate container boundaries. The root's own wrapper is not
// emitted: append_layout recreates the children inside whatever container is
// focused at restore time.
func Render(root model.Node, opts Options) string {
	keys := append([]string(nil), opts.SwallowKeys...)
	if len(keys) == 0 {
		keys = append(keys, DefaultSwallowKeys...)
	}
	sort.Strings(keys)

	var w writer
	w.line(Header)
	for i := range root.Nodes {
		emitNode(&w, root.Nodes[i], keys, true)
		w.line("")
	}
	for i := range root.FloatingNodes {
		emitNode(&w, root.FloatingNodes[i], keys, true)
		w.line("")
	}
	return w.String()
}

// swallowLine matches a commented swallow criterion produced by Render,
// capturing the indentation and the criterion itself.
var swallowLine = regexp.MustCompile(`^(\s*)// ("(?:` + strings.Join(DefaultSwallowKeys, "|") + `)": )`)

// ActivateSwallows uncomments the swallow criteria of a rendered document so
// the window manager matches them as-is, skipping the manual editing step.
// The header and container summary comments are left untouched.
func ActivateSwallows(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = swallowLine.ReplaceAllString(line, "$1$2")
	}
	return strings.Join(lines, "\n")
}
