package projection

import "sync/atomic"

// Cache holds the published projection. Readers never block and always see
// a complete snapshot.
type Cache struct {
	current atomic.Pointer[Projection]
}

// NewCache creates a cache holding an empty projection.
func NewCache() *Cache {
	c := &Cache{}
	c.current.Store(Empty())
	return c
}

// Get returns the current snapshot.
func (c *Cache) Get() *Projection {
	return c.current.Load()
}

// Publish replaces the snapshot. A nil projection publishes an empty one.
func (c *Cache) Publish(p *Projection) {
	if p == nil {
		p = Empty()
	}
	c.current.Store(p)
}
