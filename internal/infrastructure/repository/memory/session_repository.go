package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mrops-br/catalog-viewer/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionRepository is an in-memory implementation of domain.SessionRepository
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewSessionRepository creates a new in-memory session repository
func NewSessionRepository(tracer trace.Tracer, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.Session),
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", session.ID))

	r.mu.Lock()
	r.sessions[session.ID] = session
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "Session stored",
		slog.String("session_id", session.ID),
		slog.Int("sessions", count),
	)

	span.SetStatus(codes.Ok, "Session created")
	return nil
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	_, span := r.tracer.Start(ctx, "SessionRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("session.id", id))

	r.mu.RLock()
	session, exists := r.sessions[id]
	r.mu.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "Session not found")
		return nil, domain.ErrSessionNotFound
	}

	span.SetStatus(codes.Ok, "Session found")
	return session, nil
}

// Delete removes a session and cancels its in-flight detail fetch
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, span := r.tracer.Start(ctx, "SessionRepository.Delete")
	defer span.End()

	r.mu.Lock()
	session, exists := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !exists {
		return domain.ErrSessionNotFound
	}
	session.Detail.Stop()
	return nil
}

// DeleteIdle removes sessions not seen since idleSince and returns how many were dropped
func (r *SessionRepository) DeleteIdle(ctx context.Context, idleSince time.Time) (int, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.DeleteIdle")
	defer span.End()

	var expired []*domain.Session

	r.mu.Lock()
	for id, session := range r.sessions {
		if session.LastSeen().Before(idleSince) {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, session := range expired {
		session.Detail.Stop()
	}

	span.SetAttributes(attribute.Int("session.expired", len(expired)))
	if len(expired) > 0 {
		r.logger.InfoContext(ctx, "Idle sessions expired", slog.Int("count", len(expired)))
	}
	return len(expired), nil
}

// Len reports the number of live sessions
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
