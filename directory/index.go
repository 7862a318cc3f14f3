// Package directory holds the restaurant directory for the lifetime of a
// server process.
package directory

import (
	"sync"

	"dishfinder/models"
)

// Index owns the current directory. The value is swapped as a whole by
// Replace and handed out read-only; nothing edits it in place.
type Index struct {
	mu         sync.RWMutex
	dir        models.Directory
	loaded     bool
	loadFailed bool
}

// New returns an empty index that has not been loaded yet.
func New() *Index {
	return &Index{dir: models.Directory{}}
}

// Replace installs dir as the current directory. A non-nil loadErr marks the
// index as degraded; dir is still installed (normally empty).
func (x *Index) Replace(dir models.Directory, loadErr error) {
	if dir == nil {
		dir = models.Directory{}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.dir = dir
	x.loaded = true
	x.loadFailed = loadErr != nil
}

// Snapshot returns the current directory. Callers must not modify it.
func (x *Index) Snapshot() models.Directory {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dir
}

// Find looks up a restaurant by id inside the named county.
func (x *Index) Find(id, county string) (models.Restaurant, bool) {
	return x.Snapshot().Find(id, county)
}

func (x *Index) Loaded() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.loaded
}

func (x *Index) LoadFailed() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.loadFailed
}
