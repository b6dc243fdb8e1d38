package scoring

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// DefaultCacheSize bounds the number of analyzed job descriptions retained.
const DefaultCacheSize = 100

// ContextCache memoizes Analyze results keyed by a content hash of the
// lowercased job description. Analysis is pure, so sharing a context across
// requests is safe; the cache is purely an optimization. Eviction is true
// LRU and all access is serialized.
type ContextCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type cacheEntry struct {
	key string
	ctx *JobContext
}

// NewContextCache creates a cache holding at most maxSize contexts.
// A non-positive maxSize falls back to DefaultCacheSize.
func NewContextCache(maxSize int) *ContextCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &ContextCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Analyze returns the cached context for the job description, analyzing and
// caching it on a miss.
func (c *ContextCache) Analyze(jobDescription string) *JobContext {
	key := contextKey(jobDescription)

	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		ctx := elem.Value.(*cacheEntry).ctx
		c.mu.Unlock()
		return ctx
	}
	c.mu.Unlock()

	// Analyze outside the lock; concurrent misses may analyze twice, but the
	// result is identical either way.
	ctx := Analyze(jobDescription)

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).ctx
	}
	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, ctx: ctx})
	return ctx
}

// Len returns the number of cached contexts.
func (c *ContextCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops all cached contexts and returns how many were removed.
func (c *ContextCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.order.Len()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return n
}

func contextKey(jobDescription string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(jobDescription)))
	return hex.EncodeToString(sum[:])
}
