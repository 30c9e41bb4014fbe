package game

import (
	"context"
	"time"
)

// StartProgressTracking launches the play-time tracker: once per second it
// increments the elapsed-time counter and re-evaluates time-based
// achievements. The goroutine stops when ctx is cancelled. Ticks touch only
// in-memory state; no save happens per tick.
func (s *Store) StartProgressTracking(ctx context.Context) {
	s.startProgressTracking(ctx, time.Second)
}

func (s *Store) startProgressTracking(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				s.progress.TimeSpent++
				s.checkAchievementsLocked()
				s.mu.Unlock()
			}
		}
	}()
}
