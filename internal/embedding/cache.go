package embedding

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"github.com/hyperjump/vekta/internal/models"
)

// DefaultCacheSize is the number of responses kept by a CachingEmbedder when no
// capacity is given.
const DefaultCacheSize = 1024

type cacheKey [sha256.Size]byte

// ResponseCache is an LRU cache of vectorize responses keyed by request content.
type ResponseCache struct {
	capacity int
	cache    map[cacheKey]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   cacheKey
	value models.VectorizeResponse
}

// NewResponseCache creates a new cache with the given capacity.
func NewResponseCache(capacity int) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &ResponseCache{
		capacity: capacity,
		cache:    make(map[cacheKey]*list.Element),
		lru:      list.New(),
	}
}

// get returns the cached response for key if present.
func (c *ResponseCache) get(key cacheKey) (*models.VectorizeResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		resp := elem.Value.(*cacheEntry).value
		return &resp, true
	}
	return nil, false
}

// set stores the response for key, evicting the oldest entry if at capacity.
func (c *ResponseCache) set(key cacheKey, value *models.VectorizeResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = *value
		return
	}

	entry := &cacheEntry{key: key, value: *value}
	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CachingEmbedder memoizes another Embedder. Vectors are never mutated after
// they are produced, so cached responses share their backing arrays.
type CachingEmbedder struct {
	next  Embedder
	cache *ResponseCache
}

// NewCachingEmbedder wraps next with an LRU cache holding up to capacity responses.
func NewCachingEmbedder(next Embedder, capacity int) *CachingEmbedder {
	return &CachingEmbedder{next: next, cache: NewResponseCache(capacity)}
}

// Vectorize returns the cached response for an identical request or computes it.
func (e *CachingEmbedder) Vectorize(req *models.VectorizeRequest) *models.VectorizeResponse {
	if req == nil {
		return e.next.Vectorize(req)
	}
	key := requestKey(req)
	if resp, ok := e.cache.get(key); ok {
		return resp
	}
	resp := e.next.Vectorize(req)
	e.cache.set(key, resp)
	return resp
}

// Dimensions returns the wrapped embedder's vector length.
func (e *CachingEmbedder) Dimensions() int {
	return e.next.Dimensions()
}

// Cache exposes the underlying cache.
func (e *CachingEmbedder) Cache() *ResponseCache {
	return e.cache
}

// requestKey hashes the length-prefixed fields so field boundaries cannot collide.
func requestKey(req *models.VectorizeRequest) cacheKey {
	h := sha256.New()
	var n [8]byte
	for _, field := range [][]byte{[]byte(req.Text), req.Graph, []byte(req.ImageBase64)} {
		binary.BigEndian.PutUint64(n[:], uint64(len(field)))
		h.Write(n[:])
		h.Write(field)
	}
	var key cacheKey
	copy(key[:], h.Sum(nil))
	return key
}
