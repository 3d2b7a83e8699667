package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/i3keep/i3keep/internal/archive"
	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/layout"
)

func TestSaveFlags(t *testing.T) {
	for _, name := range []string{"workspace", "output", "archive", "name"} {
		if saveCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
}

func TestRunSave_FocusedWorkspace(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)

	got, err := captureStdout(t, func() error {
		return runForTest(t, saveCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	// The fixture focuses workspace "1", which holds a single terminal.
	if !strings.HasPrefix(got, layout.Header+"\n") {
		t.Errorf("document does not start with the header:\n%s", got)
	}
	for _, want := range []string{
		`"name": "vim",`,
		`// "class": "^URxvt$",`,
		`// "instance": "^urxvt$",`,
		`// "title": "^vim$"`,
		`"type": "con"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "mutt") {
		t.Errorf("document leaks the unfocused workspace:\n%s", got)
	}
	if strings.Contains(got, "transient_for") {
		t.Errorf("document leaks a non-string window property:\n%s", got)
	}
}

func TestRunSave_WorkspaceByNumber(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	setFlag(t, saveCmd, "workspace", "2")

	got, err := captureStdout(t, func() error {
		return runForTest(t, saveCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"name": "mutt",`) {
		t.Errorf("workspace 2 should resolve to \"2: mail\":\n%s", got)
	}
}

func TestRunSave_ConflictingSelection(t *testing.T) {
	setFlag(t, saveCmd, "workspace", "1")
	setFlag(t, saveCmd, "output", "HDMI-A-1")

	err := runForTest(t, saveCmd, nil)
	if !errdefs.Is(err, errdefs.CodeConflictingSelection) {
		t.Errorf("error = %v, want CONFLICTING_SELECTION", err)
	}
}

func TestRunSave_WorkspaceNotFound(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	setFlag(t, saveCmd, "workspace", "mail")

	err := runForTest(t, saveCmd, nil)
	if !errdefs.Is(err, errdefs.CodeSelectionNotFound) {
		t.Errorf("error = %v, want SELECTION_NOT_FOUND", err)
	}
}

func TestRunSave_ConnectionFailure(t *testing.T) {
	t.Setenv("I3SOCK", filepath.Join(t.TempDir(), "absent.sock"))

	err := runForTest(t, saveCmd, nil)
	if !errdefs.Is(err, errdefs.CodeConnectionFailure) {
		t.Errorf("error = %v, want CONNECTION_FAILURE", err)
	}
}

func TestRunSave_Archive(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)

	dbPath := filepath.Join(t.TempDir(), "archive.db")
	swapConfig(t, func() { cfg.Archive.Path = dbPath })
	setFlag(t, saveCmd, "archive", "true")
	setFlag(t, saveCmd, "name", "desk")

	doc, err := captureStdout(t, func() error {
		return runForTest(t, saveCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	store, err := archive.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	l, err := store.Get(context.Background(), "desk")
	if err != nil {
		t.Fatal(err)
	}
	if l.Body != doc {
		t.Error("archived body differs from the printed document")
	}
	if l.Target != `workspace "1"` {
		t.Errorf("target = %q, want the focused workspace", l.Target)
	}
	if l.Leaves != 1 {
		t.Errorf("leaves = %d, want 1", l.Leaves)
	}
}

func TestRunSave_SwallowCriteriaFromConfig(t *testing.T) {
	fake := newFakeWM()
	fake.start(t)
	swapConfig(t, func() { cfg.Save.SwallowCriteria = []string{"class"} })

	got, err := captureStdout(t, func() error {
		return runForTest(t, saveCmd, nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `// "class": "^URxvt$"`) {
		t.Errorf("document missing the class criterion:\n%s", got)
	}
	if strings.Contains(got, `"instance"`) || strings.Contains(got, `"title"`) {
		t.Errorf("criteria not restricted to class:\n%s", got)
	}
}
