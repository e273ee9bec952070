// Package cache is the time-bucketed memo layer: a thin wrapper over an
// expirable LRU so repeated interactions inside the TTL window never
// re-issue network calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Cache struct {
	lru *expirable.LRU[string, any]
}

// New builds a cache holding up to size entries, each expiring after ttl.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

func (c *Cache) Set(key string, value any) {
	c.lru.Add(key, value)
}

func (c *Cache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

// Key hashes the exact input parameters of a memoized call.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
