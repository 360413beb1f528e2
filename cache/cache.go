// Package cache memoizes the pipeline as a pure function of (source text,
// configuration) using an LRU eviction policy, grounded on the teacher's
// own ppl/archive/immcache.LocalCache — the same "wrap a fixed-size cache
// in front of an otherwise-recomputed value" shape, ported to the v2
// generic API instead of the teacher's ARCCache so the entry type doesn't
// need an interface{} cast at every call site.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/config"
)

// Entry holds everything MDXToDAX produces for one (text, config) pair,
// so a cache hit can skip parsing, lowering, linting, and emission
// entirely.
type Entry struct {
	IR          *ir.Query
	Dax         string
	Explanation string
}

// Cache is a fixed-capacity, concurrency-safe (via the underlying LRU's
// own locking) memo table. A nil *Cache is valid and behaves as an
// always-miss cache, so callers can pass one through unconditionally
// when global.enable_caching is false.
type Cache struct {
	lru *lru.Cache[string, Entry]
}

// DefaultSize matches the teacher's LocalCache default of a few hundred
// entries — small MDX queries and their DAX/explanation text are cheap to
// hold in memory, but an unbounded cache would let a query-generation
// fuzzer or REPL loop grow it without limit.
const DefaultSize = 256

// New returns a Cache with room for size entries (DefaultSize if size <=
// 0).
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	l, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Key digests source text plus every field of cfg that can change the
// pipeline's output into one lookup key. Config's Logger field is
// excluded from JSON via its own json:"-" tag, so two configs that only
// differ by logger still hit the same cache entry.
func Key(source string, cfg config.Config) string {
	h := sha256.New()
	h.Write([]byte(source))
	if b, err := json.Marshal(cfg); err == nil {
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) Get(key string) (Entry, bool) {
	if c == nil || c.lru == nil {
		return Entry{}, false
	}
	return c.lru.Get(key)
}

func (c *Cache) Put(key string, e Entry) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key, e)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	if c == nil || c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
