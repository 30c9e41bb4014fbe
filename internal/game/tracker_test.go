package game

import (
	"context"
	"testing"
	"time"
)

func TestProgressTrackerTicks(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	s.startProgressTracking(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if p := s.Progress(); p.TimeSpent >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Tracker never accumulated time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	before := s.Progress().TimeSpent
	time.Sleep(30 * time.Millisecond)
	after := s.Progress().TimeSpent
	if before != after {
		t.Errorf("Tracker kept ticking after cancel: %d -> %d", before, after)
	}
}

func TestTimeAchievements(t *testing.T) {
	s, _ := newTestStore(t)

	s.mu.Lock()
	s.progress.TimeSpent = 599
	s.checkAchievementsLocked()
	s.mu.Unlock()
	if p := s.Progress(); contains(p.Achievements, "dedicated_learner") {
		t.Errorf("Unexpected dedicated_learner at 599s: %v", p.Achievements)
	}

	s.mu.Lock()
	s.progress.TimeSpent = 600
	s.checkAchievementsLocked()
	s.mu.Unlock()
	if p := s.Progress(); !contains(p.Achievements, "dedicated_learner") {
		t.Errorf("Expected dedicated_learner at 600s, got %v", p.Achievements)
	}

	s.mu.Lock()
	s.progress.TimeSpent = 3600
	s.checkAchievementsLocked()
	s.mu.Unlock()
	if p := s.Progress(); !contains(p.Achievements, "marathon_session") {
		t.Errorf("Expected marathon_session at 3600s, got %v", p.Achievements)
	}
}
