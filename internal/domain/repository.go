package domain

import (
	"context"
	"time"
)

// ProductSource is the read-only collaborator that serves product records
type ProductSource interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchByID(ctx context.Context, id string) (*Product, error)
}

// SessionRepository defines the contract for view-session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteIdle(ctx context.Context, idleSince time.Time) (int, error)
}
