package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/i3keep/i3keep/internal/errdefs"
)

func TestRunGraph_DOTToStdout(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	setFlag(t, graphCmd, "workspace", "1")

	got, err := captureStdout(t, func() error {
		return runForTest(t, graphCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(got, "digraph layout {") {
		t.Errorf("output is not a DOT graph:\n%s", got)
	}
	for _, want := range []string{`label="workspace\n1"`, `label="con\nvim"`, `"5" -> "6";`} {
		if !strings.Contains(got, want) {
			t.Errorf("graph missing %s:\n%s", want, got)
		}
	}
}

func TestRunGraph_DOTToFile(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)

	path := filepath.Join(t.TempDir(), "layout.dot")
	setFlag(t, graphCmd, "out", path)

	if err := runForTest(t, graphCmd, nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph layout {") {
		t.Errorf("file is not a DOT graph:\n%s", data)
	}
}

func TestRunGraph_SVGRequiresOut(t *testing.T) {
	setFlag(t, graphCmd, "svg", "true")

	err := runForTest(t, graphCmd, nil)
	if !errdefs.Is(err, errdefs.CodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRunGraph_SVGToFile(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)

	path := filepath.Join(t.TempDir(), "layout.svg")
	setFlag(t, graphCmd, "workspace", "1")
	setFlag(t, graphCmd, "svg", "true")
	setFlag(t, graphCmd, "out", path)

	if err := runForTest(t, graphCmd, nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("file is not SVG:\n%.200s", data)
	}
}
