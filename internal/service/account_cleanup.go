package service

import (
	"context"
	"time"

	"whispr/feedback-api/db"

	"go.uber.org/zap"
)

// AccountCleanup periodically deletes unverified accounts whose code
// expired more than retention ago. An abandoned sign-up never blocks a
// username, this just keeps the collection from filling up with them.
func AccountCleanup(tick, retention time.Duration, s db.Store) {
	ticker := time.NewTicker(tick)

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", tick))

	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

			n, err := s.DeleteStaleUnverified(ctx, time.Now().Add(-retention))
			cancel()
			if err != nil {
				zap.L().Error("Failed to clean up stale unverified accounts", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Cleaned up stale unverified accounts", zap.Int64("count", n))
			}
		}
	}()
}
