package domain

import (
	"context"
	"sync"
)

// DetailFailureMessage is the only failure text the detail view ever shows
const DetailFailureMessage = "Failed to fetch product details"

// DetailStatus is the outcome of a detail fetch
type DetailStatus string

const (
	DetailPending DetailStatus = "pending"
	DetailSuccess DetailStatus = "success"
	DetailFailure DetailStatus = "failure"
)

// DetailState is the single renderable representation of a detail fetch.
// Product is set only on success and Message only on failure.
type DetailState struct {
	ID      string       `json:"id"`
	Status  DetailStatus `json:"status"`
	Product *Product     `json:"product,omitempty"`
	Message string       `json:"error,omitempty"`
}

// DetailTicket identifies one fetch started by DetailTracker.Begin
type DetailTicket struct {
	ID         string
	generation uint64
}

// DetailTracker holds the detail view state. A newer Begin supersedes and cancels
// the in-flight fetch, and Complete drops results carrying a stale ticket.
type DetailTracker struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      DetailState
}

// Begin starts a fetch for id and returns the context the fetch must run under
func (t *DetailTracker) Begin(ctx context.Context, id string) (context.Context, DetailTicket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.generation++
	fetchCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.state = DetailState{ID: id, Status: DetailPending}

	return fetchCtx, DetailTicket{ID: id, generation: t.generation}
}

// Complete settles the fetch identified by ticket and returns the state it settled.
// When a newer fetch has superseded the ticket the tracker is left untouched and
// the result is the ticket's own pending state with ok false.
func (t *DetailTracker) Complete(ticket DetailTicket, product *Product, err error) (DetailState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket.generation != t.generation {
		return DetailState{ID: ticket.ID, Status: DetailPending}, false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	if err != nil || product == nil {
		t.state = DetailState{ID: ticket.ID, Status: DetailFailure, Message: DetailFailureMessage}
		return t.state, true
	}
	p := *product
	t.state = DetailState{ID: ticket.ID, Status: DetailSuccess, Product: &p}
	return t.state, true
}

// State returns the current representation
func (t *DetailTracker) State() DetailState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop cancels any in-flight fetch
func (t *DetailTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
