package reuse

import "sync"

// Kind partitions the cache by entity class.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindPerson       Kind = "person"
	KindBrand        Kind = "brand"
	KindPlace        Kind = "place"
)

// Cache maps natural keys to graph identifiers, per kind.
// It never expires; entries live until Clear or until the owning
// Manager is dropped.
type Cache struct {
	mu      sync.RWMutex
	entries map[Kind]map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Kind]map[string]string)}
}

// Get returns the identifier cached for key.
func (c *Cache) Get(kind Kind, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	iri, ok := c.entries[kind][key]
	return iri, ok
}

// Put records the identifier for key.
func (c *Cache) Put(kind Kind, key, iri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	part, ok := c.entries[kind]
	if !ok {
		part = make(map[string]string)
		c.entries[kind] = part
	}
	part[key] = iri
}

// Len returns the number of entries cached for kind.
func (c *Cache) Len(kind Kind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries[kind])
}

// Clear drops every entry of every kind.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Kind]map[string]string)
	c.mu.Unlock()
}
