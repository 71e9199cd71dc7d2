package blog

import (
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
)

type snapshotKey struct {
	modTime    time.Time
	generation uint64
}

// snapshotCache keeps the last catalog built for a content root. Entries are
// keyed by the root's modification time plus an invalidation generation
// bumped by the content watcher, since editing a file in place does not
// touch the directory's modification time.
type snapshotCache struct {
	mu         sync.Mutex
	generation uint64
	key        snapshotKey
	snapshot   *catalog.Catalog
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{}
}

// get returns the cached catalog when modTime and the generation still
// match, otherwise it rebuilds with load. Concurrent callers share a build.
func (c *snapshotCache) get(modTime time.Time, load func() (*catalog.Catalog, error)) (*catalog.Catalog, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := snapshotKey{modTime: modTime, generation: c.generation}
	if c.snapshot != nil && c.key.generation == key.generation && c.key.modTime.Equal(key.modTime) {
		return c.snapshot, true, nil
	}

	snapshot, err := load()
	if err != nil {
		return nil, false, err
	}
	c.key = key
	c.snapshot = snapshot
	return snapshot, false, nil
}

// invalidate drops the cached catalog.
func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	c.generation++
	c.snapshot = nil
	c.mu.Unlock()
}
