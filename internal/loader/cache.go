package loader

import (
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk.
type fileStamp struct {
	modTime time.Time
	size    int64
}

type cacheEntry struct {
	stamp fileStamp
	docs  []document
}

// Cache keeps decoded documents per file path, valid while the file's
// modification time and size are unchanged.
type Cache struct {
	data sync.Map
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(path string, stamp fileStamp) ([]document, bool) {
	v, ok := c.data.Load(path)
	if !ok {
		return nil, false
	}
	e := v.(cacheEntry)
	if !e.stamp.modTime.Equal(stamp.modTime) || e.stamp.size != stamp.size {
		return nil, false
	}
	return e.docs, true
}

func (c *Cache) Set(path string, stamp fileStamp, docs []document) {
	c.data.Store(path, cacheEntry{stamp: stamp, docs: docs})
}

// Forget drops paths that are not in keep, so deleted files do not pin
// memory across watch cycles.
func (c *Cache) Forget(keep map[string]bool) {
	c.data.Range(func(k, _ any) bool {
		if !keep[k.(string)] {
			c.data.Delete(k)
		}
		return true
	})
}
