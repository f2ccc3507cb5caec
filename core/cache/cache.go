// Package cache provides LRU caching for computed block alignments.
package cache

import (
	"container/list"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/JuniperAlign/core/align"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration

	// OnEvict is called when an entry is evicted.
	OnEvict func(key, value interface{})
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: 256,
	}
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config) Cache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}

	return &lruCache[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}

	e := ent.Value.(*entry[K, V])
	if c.config.TTL > 0 && time.Now().After(e.expiresAt) {
		c.removeElement(ent)
		c.stats.Misses++
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.value, true
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.config.TTL > 0 {
		expires = time.Now().Add(c.config.TTL)
	}

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expires
		return
	}

	c.entries[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expires})

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.stats.Evictions++
		}
	}
}

func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *lruCache[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*entry[K, V])
	delete(c.entries, e.key)

	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
}

// AlignmentCache memoises block alignments by a digest of their inputs.
// Cached pair slices are shared and must not be modified.
type AlignmentCache struct {
	cache Cache[string, []align.Pair]
}

// NewAlignmentCache creates a new alignment cache.
func NewAlignmentCache(config Config) *AlignmentCache {
	return &AlignmentCache{
		cache: NewLRUCache[string, []align.Pair](config),
	}
}

// NewDefaultAlignmentCache creates an alignment cache with default configuration.
func NewDefaultAlignmentCache() *AlignmentCache {
	return NewAlignmentCache(DefaultConfig())
}

// Get retrieves the pairs stored under key.
func (c *AlignmentCache) Get(key string) ([]align.Pair, bool) {
	return c.cache.Get(key)
}

// Put stores pairs under key.
func (c *AlignmentCache) Put(key string, pairs []align.Pair) {
	c.cache.Put(key, pairs)
}

// Clear removes all cached alignments.
func (c *AlignmentCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached alignments.
func (c *AlignmentCache) Len() int {
	return c.cache.Len()
}

// Stats returns cache statistics.
func (c *AlignmentCache) Stats() Stats {
	return c.cache.Stats()
}

// Key returns the BLAKE3 hex digest identifying one alignment call.
func Key(method align.Method, model align.Model, left, right []float64) string {
	h := blake3.New()
	h.Write([]byte(method))
	h.Write([]byte{0})

	var buf [8]byte
	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	putFloat(model.Ratio)
	putFloat(model.Variance)
	putFloat(float64(model.PenaltyIndel))
	putFloat(float64(model.PenaltyExpand))
	putFloat(float64(model.PenaltyMeld))
	putFloat(float64(model.MaxCost))

	// Lengths keep ([a], [b c]) distinct from ([a b], [c]).
	putFloat(float64(len(left)))
	for _, w := range left {
		putFloat(w)
	}
	putFloat(float64(len(right)))
	for _, w := range right {
		putFloat(w)
	}
	return hex.EncodeToString(h.Sum(nil))
}
