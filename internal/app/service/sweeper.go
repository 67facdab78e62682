package service

import (
	"context"
	"log/slog"
	"time"
)

// ExpireSessions drops view sessions idle for longer than ttl
func (s *CatalogService) ExpireSessions(ctx context.Context, ttl time.Duration) (int, error) {
	return s.sessions.DeleteIdle(ctx, s.now().Add(-ttl))
}

// RunSweeper expires idle sessions every interval until ctx is done
func (s *CatalogService) RunSweeper(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ExpireSessions(ctx, ttl); err != nil {
				s.logger.ErrorContext(ctx, "Session sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
