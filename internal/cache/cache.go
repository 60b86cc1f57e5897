// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache holds uploaded PDF payloads in memory between requests, so a
// serving layer can accept one upload and extract pages or sections from it
// on demand without re-sending the file.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/points-engine/pkg/types"
)

const (
	defaultTTL             = 30 * time.Minute
	defaultMaxBytes        = 500 << 20
	defaultCleanupInterval = time.Minute
)

// Entry is one cached PDF session.
type Entry struct {
	// Data is the raw PDF payload.
	Data []byte

	// TotalPages is the page count recorded at store time.
	TotalPages int

	// CreatedAt is when the session was stored.
	CreatedAt time.Time

	lastAccess time.Time
}

// Cache is a TTL-bounded, size-capped session store. Sessions are renewed on
// access and the least recently used ones are evicted when the byte cap is
// reached. Safe for concurrent use.
type Cache struct {
	ttl      time.Duration
	maxBytes int64

	mu      sync.Mutex
	entries map[string]*Entry
	total   int64

	stop chan struct{}
	once sync.Once

	// now is replaceable so tests can control expiry.
	now func() time.Time
}

// New creates a cache and starts its sweep goroutine. Call Close when done.
func New(cfg types.CacheConfig) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	c := &Cache{
		ttl:      ttl,
		maxBytes: maxBytes,
		entries:  make(map[string]*Entry),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go c.sweep(interval)
	return c
}

// Close stops the sweep goroutine and drops all sessions.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.total = 0
}

// Store caches a PDF payload and returns its session id. A payload larger
// than the configured byte cap is rejected.
func (c *Cache) Store(data []byte, totalPages int) (string, error) {
	size := int64(len(data))
	if size > c.maxBytes {
		return "", fmt.Errorf("payload of %d bytes exceeds cache capacity of %d bytes", size, c.maxBytes)
	}

	id := uuid.NewString()
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.total+size > c.maxBytes {
		c.evictOldestLocked()
	}
	c.entries[id] = &Entry{
		Data:       data,
		TotalPages: totalPages,
		CreatedAt:  now,
		lastAccess: now,
	}
	c.total += size
	return id, nil
}

// Get returns the session for id, renewing its TTL. The second result is
// false when the session does not exist or has expired.
func (c *Cache) Get(id string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	now := c.now()
	if now.Sub(entry.lastAccess) > c.ttl {
		c.removeLocked(id)
		return nil, false
	}
	entry.lastAccess = now
	return entry, true
}

// Delete drops a session if present.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

// Len reports the number of live sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(id string) {
	if entry, ok := c.entries[id]; ok {
		c.total -= int64(len(entry.Data))
		delete(c.entries, id)
	}
}

func (c *Cache) evictOldestLocked() {
	oldestID := ""
	var oldest time.Time
	for id, entry := range c.entries {
		if oldestID == "" || entry.lastAccess.Before(oldest) {
			oldestID = id
			oldest = entry.lastAccess
		}
	}
	if oldestID == "" {
		return
	}
	c.removeLocked(oldestID)
}

func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweepExpired()
		}
	}
}

func (c *Cache) sweepExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, entry := range c.entries {
		if now.Sub(entry.lastAccess) > c.ttl {
			c.removeLocked(id)
		}
	}
}
