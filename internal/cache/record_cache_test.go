package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"moneytrail/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(ttl time.Duration) (*RecordCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewRecordCache(ttl)
	c.now = clock.now
	return c, clock
}

func sampleRecords(n int) []*domain.FinancialRecord {
	out := make([]*domain.FinancialRecord, n)
	for i := range out {
		out[i] = &domain.FinancialRecord{ID: uuid.New(), RecordValues: domain.RecordValues{Currency: "usd", Cash: float64(i)}}
	}
	return out
}

func TestRecordCache_SetGetInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	user := uuid.New()

	if _, ok := c.Get(user); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(user, sampleRecords(2))
	got, ok := c.Get(user)
	if !ok || len(got) != 2 {
		t.Fatalf("Get = %d records, ok=%v; want 2, true", len(got), ok)
	}

	c.Invalidate(user)
	if _, ok := c.Get(user); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestRecordCache_IsolatedPerUser(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	alice, bob := uuid.New(), uuid.New()

	c.Set(alice, sampleRecords(3))
	c.Set(bob, sampleRecords(1))
	c.Invalidate(bob)

	if got, ok := c.Get(alice); !ok || len(got) != 3 {
		t.Errorf("alice's set affected by bob's invalidation: %d, %v", len(got), ok)
	}
}

func TestRecordCache_ReturnsCopies(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	user := uuid.New()
	records := sampleRecords(1)
	c.Set(user, records)

	records[0].Cash = 999
	got, _ := c.Get(user)
	got[0].Currency = "eur"

	again, _ := c.Get(user)
	if again[0].Cash != 0 || again[0].Currency != "usd" {
		t.Errorf("cached record mutated: %+v", again[0].RecordValues)
	}
}

func TestRecordCache_Expiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	user := uuid.New()
	c.Set(user, sampleRecords(1))

	clock.t = clock.t.Add(2 * time.Minute)

	if _, ok := c.Get(user); ok {
		t.Error("expected expired entry to miss")
	}
	if removed := c.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestRecordCache_RemoveAndRestore(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	user := uuid.New()
	records := sampleRecords(3)
	c.Set(user, records)

	previous, gen, ok := c.Remove(user, records[1].ID)
	if !ok {
		t.Fatal("Remove reported nothing cached")
	}
	got, _ := c.Get(user)
	if len(got) != 2 {
		t.Fatalf("after Remove: %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.ID == records[1].ID {
			t.Error("removed record still cached")
		}
	}

	if !c.Restore(user, gen, previous) {
		t.Fatal("Restore refused with no write in between")
	}
	got, _ = c.Get(user)
	if len(got) != 3 || got[1].ID != records[1].ID {
		t.Errorf("Restore did not bring back the original order: %v", got)
	}
}

func TestRecordCache_RemoveWithoutEntry(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if _, _, ok := c.Remove(uuid.New(), uuid.New()); ok {
		t.Error("Remove on empty cache should report ok=false")
	}
}

func TestRecordCache_SetIfUnchanged(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	user := uuid.New()

	gen := c.Generation(user)
	c.Invalidate(user)
	if c.SetIfUnchanged(user, gen, sampleRecords(1)) {
		t.Error("stored a set read before Invalidate")
	}
	if _, ok := c.Get(user); ok {
		t.Error("stale set cached")
	}

	gen = c.Generation(user)
	if !c.SetIfUnchanged(user, gen, sampleRecords(2)) {
		t.Fatal("refused a set with no write in between")
	}
	if got, _ := c.Get(user); len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}
	if c.SetIfUnchanged(user, gen, sampleRecords(3)) {
		t.Error("the same generation was accepted twice")
	}
}

func TestRecordCache_RestoreAfterWrite(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	user := uuid.New()
	records := sampleRecords(3)
	c.Set(user, records)

	previous, gen, _ := c.Remove(user, records[0].ID)
	c.Invalidate(user)

	if c.Restore(user, gen, previous) {
		t.Error("Restore overwrote a newer write")
	}
	if _, ok := c.Get(user); ok {
		t.Error("stale snapshot cached after Restore")
	}
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("7f1c9c1e-5d0a-4c52-9f57-3f2f1b6f2a10")
	if got := Key(id); got != "financial-records:7f1c9c1e-5d0a-4c52-9f57-3f2f1b6f2a10" {
		t.Errorf("Key() = %q", got)
	}
}
