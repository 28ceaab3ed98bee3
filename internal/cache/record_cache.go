package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"moneytrail/internal/domain"
)

// KeyPrefix namespaces the per-user record set
const KeyPrefix = "financial-records:"

// Key returns the invalidation key of a user's record set
func Key(userID uuid.UUID) string {
	return KeyPrefix + userID.String()
}

type entry struct {
	records   []*domain.FinancialRecord
	expiresAt time.Time
}

// RecordCache holds each user's record set in memory until it expires or a
// write invalidates it. It is safe for concurrent use.
//
// Every write to a key bumps its generation. Readers that fill the cache from
// the store capture the generation first and only store their result if no
// write happened in between.
type RecordCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	gens    map[string]uint64
	now     func() time.Time
}

// NewRecordCache creates a cache whose entries live for ttl
func NewRecordCache(ttl time.Duration) *RecordCache {
	return &RecordCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
}

// Get returns a copy of the cached record set
func (c *RecordCache) Get(userID uuid.UUID) ([]*domain.FinancialRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[Key(userID)]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return cloneRecords(e.records), true
}

// Generation returns the current generation of the user's key
func (c *RecordCache) Generation(userID uuid.UUID) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gens[Key(userID)]
}

// Set stores a copy of records for the user
func (c *RecordCache) Set(userID uuid.UUID, records []*domain.FinancialRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(Key(userID), cloneRecords(records))
}

// SetIfUnchanged stores a copy of records only if the key is still at gen.
// It reports whether the records were stored.
func (c *RecordCache) SetIfUnchanged(userID uuid.UUID, gen uint64, records []*domain.FinancialRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(userID)
	if c.gens[key] != gen {
		return false
	}
	c.store(key, cloneRecords(records))
	return true
}

// Invalidate drops the user's record set so the next read hits the store
func (c *RecordCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(userID)
	delete(c.entries, key)
	c.gens[key]++
}

// Remove optimistically drops one record from the cached set. It returns the
// set as it was before and the generation Restore must still find.
// ok is false when nothing was cached.
func (c *RecordCache) Remove(userID, recordID uuid.UUID) (previous []*domain.FinancialRecord, gen uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(userID)
	e, ok := c.entries[key]
	if !ok {
		return nil, 0, false
	}

	kept := make([]*domain.FinancialRecord, 0, len(e.records))
	for _, r := range e.records {
		if r.ID != recordID {
			kept = append(kept, r)
		}
	}
	c.entries[key] = entry{records: kept, expiresAt: e.expiresAt}
	c.gens[key]++

	return e.records, c.gens[key], true
}

// Restore puts back a record set previously returned by Remove, unless the
// key was written since. It reports whether the set was restored.
func (c *RecordCache) Restore(userID uuid.UUID, gen uint64, previous []*domain.FinancialRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(userID)
	if c.gens[key] != gen {
		return false
	}
	c.store(key, previous)
	return true
}

// store writes an entry and bumps the key's generation; c.mu must be held
func (c *RecordCache) store(key string, records []*domain.FinancialRecord) {
	c.entries[key] = entry{
		records:   records,
		expiresAt: c.now().Add(c.ttl),
	}
	c.gens[key]++
}

// Sweep removes expired entries and returns how many were dropped
func (c *RecordCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached record sets, expired or not
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func cloneRecords(records []*domain.FinancialRecord) []*domain.FinancialRecord {
	out := make([]*domain.FinancialRecord, len(records))
	for i, r := range records {
		rc := *r
		out[i] = &rc
	}
	return out
}
