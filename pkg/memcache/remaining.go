package mem

import (
	"context"
	"sync"
	"time"
)

// RemainingSnapshot is the per-session projection of a student's remaining daily budget.
// It is derived from the intake log and may be dropped at any time.
type RemainingSnapshot struct {
	StudentID string   `json:"student_id"`
	Day       string   `json:"day"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Fat       float64  `json:"fat"`
	Carbs     float64  `json:"carbs"`
	Eaten     []string `json:"eaten"`
}

type RemainingStore interface {
	Get(ctx context.Context, sessionID string) (*RemainingSnapshot, bool)
	Set(ctx context.Context, sessionID string, snapshot RemainingSnapshot, ttl time.Duration)

	// Update applies fn to a stored, unexpired snapshot. Returns false when there is none.
	Update(ctx context.Context, sessionID string, fn func(*RemainingSnapshot)) bool

	Delete(ctx context.Context, sessionID string)
}

type entry struct {
	snapshot  RemainingSnapshot
	expiresAt time.Time
}

// RemainingSnapshots is the in-process RemainingStore.
type RemainingSnapshots struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewRemainingSnapshots() *RemainingSnapshots {
	return &RemainingSnapshots{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *RemainingSnapshots) Get(ctx context.Context, sessionID string) (*RemainingSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[sessionID]
	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	snap := cloneSnapshot(e.snapshot)
	return &snap, true
}

func (s *RemainingSnapshots) Set(ctx context.Context, sessionID string, snapshot RemainingSnapshot, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sessionID] = entry{
		snapshot:  cloneSnapshot(snapshot),
		expiresAt: s.now().Add(ttl),
	}
	s.evictExpiredLocked()
}

func (s *RemainingSnapshots) Update(ctx context.Context, sessionID string, fn func(*RemainingSnapshot)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[sessionID]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, sessionID)
		return false
	}
	fn(&e.snapshot)
	s.data[sessionID] = e
	return true
}

func (s *RemainingSnapshots) Delete(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
}

func (s *RemainingSnapshots) evictExpiredLocked() {
	if len(s.data) < 1024 {
		return
	}
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}

func cloneSnapshot(s RemainingSnapshot) RemainingSnapshot {
	s.Eaten = append([]string(nil), s.Eaten...)
	return s
}
