// Package caching provides the in-memory content cache backing the
// cache-first repository pattern. Nodes are cached per collection by ID,
// alongside the master ID list per collection, with a TTL sweep on reads.
package caching

import (
	"sync"
	"time"

	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

// ContentCache defines the cache operations repositories rely on.
type ContentCache interface {
	GetNode(collection, id string) (any, bool)
	SetNode(collection, id string, node any)
	GetAllIDs(collection string) ([]string, bool)
	SetAllIDs(collection string, ids []string)
	InvalidateNode(collection, id string)
	InvalidateCollection(collection string)
	InvalidateAll()
}

type collectionCache struct {
	nodes       map[string]any
	allIDs      []string
	hasAllIDs   bool
	lastUpdated time.Time
}

// ContentStore is the in-memory ContentCache implementation.
type ContentStore struct {
	collections map[string]*collectionCache
	ttl         time.Duration
	mu          sync.RWMutex
}

// NewContentStore creates a new content cache store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		collections: make(map[string]*collectionCache),
		ttl:         config.ContentCacheTTL,
	}
}

func (cs *ContentStore) collection(name string) *collectionCache {
	if cache, exists := cs.collections[name]; exists {
		return cache
	}
	cache := &collectionCache{
		nodes:       make(map[string]any),
		lastUpdated: time.Now().UTC(),
	}
	cs.collections[name] = cache
	return cache
}

func (cs *ContentStore) expired(cache *collectionCache) bool {
	return cs.ttl > 0 && time.Since(cache.lastUpdated) > cs.ttl
}

// GetNode retrieves a cached node by collection and ID.
func (cs *ContentStore) GetNode(collection, id string) (any, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	cache, exists := cs.collections[collection]
	if !exists || cs.expired(cache) {
		return nil, false
	}

	node, found := cache.nodes[id]
	return node, found
}

// SetNode caches a node under its collection and ID.
func (cs *ContentStore) SetNode(collection, id string, node any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cache := cs.collection(collection)
	cache.nodes[id] = node
	cache.lastUpdated = time.Now().UTC()
}

// GetAllIDs retrieves the master ID list for a collection, if warmed.
func (cs *ContentStore) GetAllIDs(collection string) ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	cache, exists := cs.collections[collection]
	if !exists || !cache.hasAllIDs || cs.expired(cache) {
		return nil, false
	}

	ids := make([]string, len(cache.allIDs))
	copy(ids, cache.allIDs)
	return ids, true
}

// SetAllIDs stores the master ID list for a collection.
func (cs *ContentStore) SetAllIDs(collection string, ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cache := cs.collection(collection)
	cache.allIDs = make([]string, len(ids))
	copy(cache.allIDs, ids)
	cache.hasAllIDs = true
	cache.lastUpdated = time.Now().UTC()
}

// InvalidateNode removes a single node and drops the master ID list, since
// membership may have changed.
func (cs *ContentStore) InvalidateNode(collection, id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cache, exists := cs.collections[collection]; exists {
		delete(cache.nodes, id)
		cache.allIDs = nil
		cache.hasAllIDs = false
	}
}

// InvalidateCollection drops everything cached for one collection.
func (cs *ContentStore) InvalidateCollection(collection string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.collections, collection)
}

// InvalidateAll drops the entire cache.
func (cs *ContentStore) InvalidateAll() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.collections = make(map[string]*collectionCache)
}
