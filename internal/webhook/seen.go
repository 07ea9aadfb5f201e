package webhook

import (
	"sync"
	"time"
)

// seenCalls remembers which call IDs already produced an order, so a
// redelivered webhook does not double-submit. Bounded like the cart store:
// capacity-evicted on overflow, expiry checked on read.
type seenCalls struct {
	mu        sync.Mutex
	calls     map[string]time.Time
	order     []string
	capacity  int
	retention time.Duration
	now       func() time.Time
}

func newSeenCalls(capacity int, retention time.Duration) *seenCalls {
	return &seenCalls{
		calls:     make(map[string]time.Time),
		capacity:  capacity,
		retention: retention,
		now:       time.Now,
	}
}

// markSeen records the ID and reports whether it was already present and
// fresh.
func (s *seenCalls) markSeen(callID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at, ok := s.calls[callID]; ok {
		if s.now().Sub(at) <= s.retention {
			return true
		}
		s.remove(callID)
	}
	for len(s.order) >= s.capacity {
		s.remove(s.order[0])
	}
	s.calls[callID] = s.now()
	s.order = append(s.order, callID)
	return false
}

func (s *seenCalls) remove(callID string) {
	delete(s.calls, callID)
	for i, id := range s.order {
		if id == callID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
