// Package cache provides a bounded, expiring key/value cache safe for concurrent use.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 1000
	DefaultTTL  = 2 * time.Hour
)

// TTL keeps at most size entries, each for at most ttl. Adding beyond size evicts the
// least recently used entry.
type TTL[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// New creates a cache. Non-positive arguments fall back to DefaultSize and DefaultTTL.
func New[K comparable, V any](size int, ttl time.Duration) *TTL[K, V] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTL[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

// Get returns the cached value and whether it was present and fresh.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Put stores a value, reporting whether another entry was evicted to make room.
func (c *TTL[K, V]) Put(key K, value V) bool {
	return c.lru.Add(key, value)
}

// Len counts entries, including expired ones not yet swept.
func (c *TTL[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *TTL[K, V]) Purge() {
	c.lru.Purge()
}
