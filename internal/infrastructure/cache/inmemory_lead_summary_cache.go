package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
)

type summaryEntry struct {
	summary   lead.Summary
	expiresAt time.Time
}

// InMemoryLeadSummaryCache implements lead.SummaryCache with a process-local map.
// It suits single-instance deployments and tests.
type InMemoryLeadSummaryCache struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]summaryEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryLeadSummaryCache creates the cache and starts a background
// goroutine that evicts expired entries every cleanupInterval. Call Close to stop it.
func NewInMemoryLeadSummaryCache(cleanupInterval time.Duration) *InMemoryLeadSummaryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	c := &InMemoryLeadSummaryCache{
		entries:  make(map[uuid.UUID]summaryEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(cleanupInterval)

	return c
}

// Get returns the cached summary, or nil on a miss
func (c *InMemoryLeadSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*lead.Summary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tenantID]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, nil
	}
	s := e.summary
	return &s, nil
}

// Set stores the summary with a TTL
func (c *InMemoryLeadSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary lead.Summary, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tenantID] = summaryEntry{summary: summary, expiresAt: c.now().Add(ttl)}
	return nil
}

// Invalidate drops the tenant's cached summary
func (c *InMemoryLeadSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, tenantID)
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *InMemoryLeadSummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine
func (c *InMemoryLeadSummaryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryLeadSummaryCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemoryLeadSummaryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

// Ensure InMemoryLeadSummaryCache implements lead.SummaryCache
var _ lead.SummaryCache = (*InMemoryLeadSummaryCache)(nil)
