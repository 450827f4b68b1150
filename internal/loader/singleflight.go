package loader

import (
	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent parses of the same file version.
type Group struct {
	g singleflight.Group
}

func (g *Group) Do(key string, fn func() ([]document, error)) ([]document, error, bool) {
	v, err, shared := g.g.Do(key, func() (interface{}, error) {
		return fn()
	})
	docs, _ := v.([]document)
	return docs, err, shared
}
