package domain

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one mounted list view together with the state it owns: the fetched
// collection and criteria (in View), the cart and the detail tracker.
// Callers hold Lock while reading or mutating View or Cart.
type Session struct {
	sync.Mutex

	ID     string
	View   *ListView
	Cart   Cart
	Detail DetailTracker
	Notice string

	lastSeen atomic.Int64
}

// NewSession mounts a list view over products
func NewSession(id string, products []Product, now time.Time) *Session {
	s := &Session{
		ID:   id,
		View: NewListView(products),
	}
	s.Touch(now)
	return s
}

// Touch records activity on the session. Safe without holding the lock.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the latest Touch
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// TakeNotice returns the pending flash notice and clears it
func (s *Session) TakeNotice() string {
	n := s.Notice
	s.Notice = ""
	return n
}
