package server

import (
	"sync"
	"time"

	"github.com/i3keep/i3keep/internal/model"
)

// SnapshotCache is a TTL-based cache for the layout tree, so a burst of MCP
// calls does not hammer the window manager socket. One entry suffices: the
// tree is global and every tool works from the same snapshot.
type SnapshotCache struct {
	mu        sync.Mutex
	tree      *model.Node
	timestamp time.Time
	ttl       time.Duration
}

// NewSnapshotCache creates a new cache. A ttl of 0 disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl}
}

// Tree returns the cached tree if within TTL, otherwise fetches fresh.
func (c *SnapshotCache) Tree(source TreeSource) (*model.Node, error) {
	if c.ttl == 0 {
		return source.GetTree()
	}

	c.mu.Lock()
	if c.tree != nil && time.Since(c.timestamp) < c.ttl {
		tree := c.tree
		c.mu.Unlock()
		return tree, nil
	}
	c.mu.Unlock()

	tree, err := source.GetTree()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tree = tree
	c.timestamp = time.Now()
	c.mu.Unlock()

	return tree, nil
}

// Invalidate clears the cached snapshot. Called after any command that
// mutates the layout.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = nil
}
