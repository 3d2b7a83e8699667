package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/model"
	"github.com/i3keep/i3keep/internal/output"
)

func TestRunDump_WholeTree(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	swapFormat(t, output.FormatJSON)

	got, err := captureStdout(t, func() error {
		return runForTest(t, dumpCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	var root model.Node
	if err := json.Unmarshal([]byte(got), &root); err != nil {
		t.Fatalf("output is not a JSON tree: %v", err)
	}
	if root.Kind != model.KindRoot {
		t.Errorf("root kind = %q, want %q", root.Kind, model.KindRoot)
	}
	// Dumps are raw: ids survive, unlike in saved documents.
	if root.ID != 1 {
		t.Errorf("root id = %d, want 1", root.ID)
	}
}

func TestRunDump_Workspace(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	swapFormat(t, output.FormatJSON)
	setFlag(t, dumpCmd, "workspace", "2")

	got, err := captureStdout(t, func() error {
		return runForTest(t, dumpCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	var ws model.Node
	if err := json.Unmarshal([]byte(got), &ws); err != nil {
		t.Fatalf("output is not a JSON tree: %v", err)
	}
	if ws.Kind != model.KindWorkspace || ws.Num != 2 {
		t.Errorf("dumped %s num %d, want workspace 2", ws.Kind, ws.Num)
	}
	if strings.Contains(got, `"vim"`) {
		t.Errorf("dump leaks another workspace:\n%s", got)
	}
}

func TestRunDump_ConflictingSelection(t *testing.T) {
	setFlag(t, dumpCmd, "workspace", "1")
	setFlag(t, dumpCmd, "output", "HDMI-A-1")

	err := runForTest(t, dumpCmd, nil)
	if !errdefs.Is(err, errdefs.CodeConflictingSelection) {
		t.Errorf("error = %v, want CONFLICTING_SELECTION", err)
	}
}
