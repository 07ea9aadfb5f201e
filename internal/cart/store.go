package cart

import (
	"context"
	"sync"
	"time"
)

// Line is one live-cart entry: priced at capture time, no modifiers yet.
type Line struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Snapshot is the most recent live running cart for one call.
type Snapshot struct {
	CallID     string    `json:"call_id"`
	Items      []Line    `json:"items"`
	CapturedAt time.Time `json:"captured_at"`
}

// Store keeps at most one snapshot per call ID, last write wins. A snapshot
// older than the retention window reads as a miss.
type Store interface {
	Put(ctx context.Context, snap Snapshot) error
	Get(ctx context.Context, callID string) (*Snapshot, bool, error)
}

// DefaultRetention is how long a live cart stays usable after capture.
const DefaultRetention = time.Hour

// DefaultCapacity bounds the in-memory store; the oldest entry is evicted on
// overflow.
const DefaultCapacity = 1000

// MemoryStore is the in-process Store: a bounded map with read-time expiry.
// The clock is injectable so merge logic tests never sleep.
type MemoryStore struct {
	mu        sync.Mutex
	snapshots map[string]Snapshot
	order     []string
	capacity  int
	retention time.Duration
	now       func() time.Time
}

func NewMemoryStore(capacity int, retention time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
		capacity:  capacity,
		retention: retention,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Test hook.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Put(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snapshots[snap.CallID]; exists {
		s.remove(snap.CallID)
	}
	for len(s.order) >= s.capacity {
		s.remove(s.order[0])
	}
	s.snapshots[snap.CallID] = snap
	s.order = append(s.order, snap.CallID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, callID string) (*Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[callID]
	if !ok {
		return nil, false, nil
	}
	if s.now().Sub(snap.CapturedAt) > s.retention {
		s.remove(callID)
		return nil, false, nil
	}
	return &snap, true, nil
}

// remove must be called with the lock held.
func (s *MemoryStore) remove(callID string) {
	delete(s.snapshots, callID)
	for i, id := range s.order {
		if id == callID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
