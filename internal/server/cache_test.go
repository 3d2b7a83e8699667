package server

import (
	"errors"
	"testing"
	"time"

	"github.com/i3keep/i3keep/internal/model"
	"github.com/i3keep/i3keep/internal/wm"
)

// fakeSource implements TreeSource in memory and counts tree fetches.
type fakeSource struct {
	tree      *model.Node
	treeErr   error
	treeCalls int

	workspaces []wm.Workspace
	outputs    []wm.Output
	version    wm.Version

	commands  []string
	results   []wm.CommandResult
	onCommand func(command string)
}

func (f *fakeSource) GetTree() (*model.Node, error) {
	f.treeCalls++
	if f.treeErr != nil {
		return nil, f.treeErr
	}
	return f.tree, nil
}

func (f *fakeSource) GetWorkspaces() ([]wm.Workspace, error) { return f.workspaces, nil }
func (f *fakeSource) GetOutputs() ([]wm.Output, error)       { return f.outputs, nil }
func (f *fakeSource) GetVersion() (wm.Version, error)        { return f.version, nil }

func (f *fakeSource) RunCommand(command string) ([]wm.CommandResult, error) {
	f.commands = append(f.commands, command)
	if f.onCommand != nil {
		f.onCommand(command)
	}
	if f.results != nil {
		return f.results, nil
	}
	return []wm.CommandResult{{Success: true}}, nil
}

func TestSnapshotCache_ServesWithinTTL(t *testing.T) {
	source := &fakeSource{tree: &model.Node{ID: 1, Kind: model.KindRoot}}
	cache := NewSnapshotCache(time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := cache.Tree(source); err != nil {
			t.Fatal(err)
		}
	}
	if source.treeCalls != 1 {
		t.Errorf("tree fetched %d times, want 1", source.treeCalls)
	}
}

func TestSnapshotCache_ZeroTTLDisables(t *testing.T) {
	source := &fakeSource{tree: &model.Node{ID: 1, Kind: model.KindRoot}}
	cache := NewSnapshotCache(0)

	cache.Tree(source)
	cache.Tree(source)
	if source.treeCalls != 2 {
		t.Errorf("tree fetched %d times, want 2", source.treeCalls)
	}
}

func TestSnapshotCache_Expiry(t *testing.T) {
	source := &fakeSource{tree: &model.Node{ID: 1, Kind: model.KindRoot}}
	cache := NewSnapshotCache(time.Nanosecond)

	cache.Tree(source)
	time.Sleep(time.Millisecond)
	cache.Tree(source)
	if source.treeCalls != 2 {
		t.Errorf("tree fetched %d times, want 2", source.treeCalls)
	}
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	source := &fakeSource{tree: &model.Node{ID: 1, Kind: model.KindRoot}}
	cache := NewSnapshotCache(time.Hour)

	cache.Tree(source)
	cache.Invalidate()
	cache.Tree(source)
	if source.treeCalls != 2 {
		t.Errorf("tree fetched %d times, want 2", source.treeCalls)
	}
}

func TestSnapshotCache_ErrorNotCached(t *testing.T) {
	source := &fakeSource{treeErr: errors.New("socket closed")}
	cache := NewSnapshotCache(time.Hour)

	if _, err := cache.Tree(source); err == nil {
		t.Fatal("expected the fetch error to propagate")
	}

	source.treeErr = nil
	source.tree = &model.Node{ID: 1, Kind: model.KindRoot}
	if _, err := cache.Tree(source); err != nil {
		t.Fatalf("recovery fetch failed: %v", err)
	}
	if source.treeCalls != 2 {
		t.Errorf("tree fetched %d times, want 2", source.treeCalls)
	}
}
