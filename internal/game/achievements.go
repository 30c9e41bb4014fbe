package game

import "github.com/laicwew/LexiQuest/internal/models"

// achievementRules define when each achievement unlocks. Achievements are
// monotonic: once unlocked they are never re-evaluated or removed.
var achievementRules = []struct {
	ID  string
	Met func(p models.Progress, learnedWords int) bool
}{
	{"first_word", func(p models.Progress, n int) bool { return n >= 1 }},
	{"word_collector", func(p models.Progress, n int) bool { return n >= 10 }},
	{"vocabulary_master", func(p models.Progress, n int) bool { return n >= 50 }},
	{"busy_adventurer", func(p models.Progress, n int) bool { return p.ActionsTaken >= 25 }},
	{"dedicated_learner", func(p models.Progress, n int) bool { return p.TimeSpent >= 600 }},
	{"marathon_session", func(p models.Progress, n int) bool { return p.TimeSpent >= 3600 }},
}

func (s *Store) checkAchievementsLocked() {
	for _, rule := range achievementRules {
		if s.hasAchievementLocked(rule.ID) {
			continue
		}
		if rule.Met(s.progress, len(s.vocabulary.Learned)) {
			s.progress.Achievements = append(s.progress.Achievements, rule.ID)
		}
	}
}

func (s *Store) hasAchievementLocked(id string) bool {
	for _, unlocked := range s.progress.Achievements {
		if unlocked == id {
			return true
		}
	}
	return false
}
