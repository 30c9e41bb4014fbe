package game

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/laicwew/LexiQuest/internal/models"
	"github.com/laicwew/LexiQuest/internal/narrative"
	"github.com/laicwew/LexiQuest/internal/storage"
)

// Store owns all mutable session state: character, story, vocabulary,
// progress, settings and game history. Every mutating operation persists the
// full state tree to the backing key-value store.
//
// There is one logical writer (whatever client drives the game) but the
// progress tracker ticks on its own goroutine and server handlers may call in
// concurrently, so all state access goes through the mutex.
type Store struct {
	mu sync.Mutex

	character           models.Character
	currentModule       models.ModuleInfo
	story               models.Story
	vocabulary          models.VocabularyState
	progress            models.Progress
	settings            models.Settings
	activeTab           string
	generatedContent    string
	rawGeneratedContent string
	gameHistory         []models.HistoryEntry

	// Shared immutable reference data.
	modules   map[string]models.Module
	responses ResponseTable
	levels    []LevelRequirement

	kv  storage.KV
	now func() time.Time
}

// NewStore creates a store with default session state backed by kv.
func NewStore(kv storage.KV) (*Store, error) {
	modules, responses, err := LoadContent()
	if err != nil {
		return nil, err
	}
	s := &Store{
		modules:   modules,
		responses: responses,
		levels:    DefaultLevelTable,
		kv:        kv,
		now:       time.Now,
	}
	s.resetLocked()
	return s, nil
}

// resetLocked restores the fixed session-start defaults.
func (s *Store) resetLocked() {
	s.character = models.Character{
		Name:          "Adventurer",
		Level:         1,
		HP:            100,
		MaxHP:         100,
		Energy:        50,
		MaxEnergy:     50,
		Experience:    0,
		MaxExperience: 100,
	}
	s.currentModule = models.ModuleInfo{
		ID:          DefaultModuleID,
		Title:       s.modules[DefaultModuleID].Title,
		Description: "Learn shopping vocabulary",
		Progress:    25,
	}
	s.story = models.Story{CurrentScene: DefaultScene}
	s.vocabulary = models.VocabularyState{Learned: models.LearnedVocabulary{}}
	s.progress = models.Progress{}
	s.settings = models.Settings{
		NativeLanguage:    "zh",
		TargetLanguage:    "en",
		Difficulty:        "normal",
		SoundEnabled:      true,
		AnimationsEnabled: true,
	}
	s.activeTab = TabGenerated
	s.generatedContent = ""
	s.rawGeneratedContent = ""
	s.gameHistory = nil
}

// SelectWord sets the selected-word pointer. Words outside the active scene
// are not rejected here; they simply resolve to default responses later.
func (s *Store) SelectWord(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary.SelectedWord = word
}

// ClearSelectedWord clears the pointer. Idempotent.
func (s *Store) ClearSelectedWord() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary.SelectedWord = ""
}

// SelectedWord returns the currently selected word, or "" when none is.
func (s *Store) SelectedWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocabulary.SelectedWord
}

// PerformAction resolves an action against the selected word and returns the
// narrative response. With no word selected this is a silent no-op returning
// "": the UI disables action buttons in that state, so no error is reported.
func (s *Store) PerformAction(action Action) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	word := s.vocabulary.SelectedWord
	if word == "" {
		return ""
	}

	s.progress.ActionsTaken++

	response := s.responses.Lookup(action, word)

	if action == ActionImitate {
		s.learnWordLocked(word)
	}

	s.applyActionStatsLocked(action)
	s.checkAchievementsLocked()

	narrativeText := s.rawGeneratedContent
	if narrativeText == "" {
		narrativeText = s.story.Text
	}
	s.gameHistory = append(s.gameHistory, models.HistoryEntry{
		GMNarrative:  narrativeText,
		PlayerAction: fmt.Sprintf("%s %s", action, word),
		ActionResult: response,
	})

	s.vocabulary.SelectedWord = ""
	s.saveLocked()

	return response
}

// applyActionStatsLocked applies the per-action stat deltas and fires a
// level-up once experience reaches the cap.
func (s *Store) applyActionStatsLocked(action Action) {
	c := &s.character
	switch action {
	case ActionEat:
		c.Energy = min(c.MaxEnergy, c.Energy+5)
		c.Experience += 2
	case ActionAttack:
		c.Energy = max(0, c.Energy-2)
		c.Experience += 1
	case ActionTalk:
		c.Experience += 3
	case ActionImitate:
		c.Experience += 5
	}

	if c.Experience >= c.MaxExperience {
		s.levelUpLocked()
	}
}

// LearnWord records a word in the learned dictionary. Words are case-folded;
// relearning an already known word changes nothing.
func (s *Store) LearnWord(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.learnWordLocked(word)
}

func (s *Store) learnWordLocked(word string) {
	key := strings.ToLower(word)
	if _, ok := s.vocabulary.Learned[key]; ok {
		return
	}
	s.vocabulary.Learned[key] = models.VocabularyEntry{
		Word:      key,
		LearnedAt: s.now().UnixMilli(),
	}
	s.progress.WordsLearnedToday++
	s.checkAchievementsLocked()
	s.saveLocked()
}

// LevelUp advances the character one level on the fixed increment schedule.
func (s *Store) LevelUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levelUpLocked()
}

func (s *Store) levelUpLocked() {
	c := &s.character
	c.Level++
	c.Experience = 0
	c.MaxExperience += 50
	c.MaxHP += 20
	c.HP = c.MaxHP
	c.MaxEnergy += 10
	c.Energy = c.MaxEnergy
}

// UpdateGeneratedContent stores the highlighted display text. While the
// GENERATED tab is active it is also what the story view shows.
func (s *Store) UpdateGeneratedContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generatedContent = content
	if s.activeTab == TabGenerated {
		s.story.Text = content
	}
}

// UpdateRawGeneratedContent stores the unprocessed generated text. History
// entries and continuation contexts are built from this, never from the
// highlighted form.
func (s *Store) UpdateRawGeneratedContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawGeneratedContent = content
}

// RecordOpeningScene appends the opening turn produced by the start-journey
// prompt and makes it the current generated content.
func (s *Store) RecordOpeningScene(raw, display string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawGeneratedContent = raw
	s.generatedContent = display
	if s.activeTab == TabGenerated {
		s.story.Text = display
	}
	s.gameHistory = append(s.gameHistory, models.HistoryEntry{
		GMNarrative:  raw,
		PlayerAction: "START_JOURNEY",
		ActionResult: raw,
	})
	s.saveLocked()
}

// SwitchTab changes which text source the story view shows.
func (s *Store) SwitchTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	switch tab {
	case TabGenerated:
		if s.generatedContent != "" {
			s.story.Text = s.generatedContent
		} else {
			s.story.Text = s.modules[EmptyModuleID].Scenes[DefaultScene].Text
		}
	case TabDummy:
		// The static view derives its own text from the module.
		s.story.Text = ""
	}
}

// ClearDictionary empties the learned dictionary and resets the daily
// counter. Idempotent.
func (s *Store) ClearDictionary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary.Learned = models.LearnedVocabulary{}
	s.progress.WordsLearnedToday = 0
	s.saveLocked()
}

// ClearHistory drops the game history and all generated content.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameHistory = nil
	s.rawGeneratedContent = ""
	s.generatedContent = ""
	s.story.Text = ""
	s.saveLocked()
}

// SaveGame persists the full state tree to the save slot, overwriting any
// prior value.
func (s *Store) SaveGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	state := s.snapshotLocked()
	data, err := state.Encode()
	if err != nil {
		log.Printf("save game: %v", err)
		return err
	}
	if err := s.kv.Set(models.SaveKey, data); err != nil {
		log.Printf("save game: %v", err)
		return err
	}
	return nil
}

// LoadGame restores state from the save slot. A missing save initializes
// defaults (carrying over a separately stored username, if any); a malformed
// save is logged and defaults are kept. Neither case is an error the player
// sees.
func (s *Store) LoadGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(models.SaveKey)
	if err == storage.ErrNotFound {
		if name, err := s.kv.Get(models.UserNameKey); err == nil && len(name) > 0 {
			s.character.Name = string(name)
		}
		s.activeTab = TabGenerated
		s.story.Text = s.modules[EmptyModuleID].Scenes[DefaultScene].Text
		return
	}
	if err != nil {
		log.Printf("load game: %v", err)
		return
	}

	state, err := models.DecodeSaveState(data)
	if err != nil {
		log.Printf("load game: %v", err)
		return
	}
	s.applySaveStateLocked(state)
}

// applySaveStateLocked copies a decoded save into the store, substituting
// defaults for substructures older saves may lack.
func (s *Store) applySaveStateLocked(state *models.SaveState) {
	s.character = state.Character
	s.currentModule = state.CurrentModule
	s.story = state.Story
	s.vocabulary = state.Vocabulary
	if s.vocabulary.Learned == nil {
		s.vocabulary.Learned = models.LearnedVocabulary{}
	}
	s.progress = state.Progress
	if state.Settings != (models.Settings{}) {
		s.settings = state.Settings
	}
	s.activeTab = state.ActiveTab
	if s.activeTab == "" {
		s.activeTab = TabGenerated
	}
	s.generatedContent = state.GeneratedContent
	s.rawGeneratedContent = state.RawGeneratedContent
	s.gameHistory = state.GameHistory

	// Re-derive the visible text from the restored tab.
	switch s.activeTab {
	case TabGenerated:
		if s.generatedContent != "" {
			s.story.Text = s.generatedContent
		} else {
			s.story.Text = s.modules[EmptyModuleID].Scenes[DefaultScene].Text
		}
	case TabDummy:
		s.story.Text = s.modules[DefaultModuleID].Scenes[DefaultScene].Text
	}
}

// Snapshot returns a deep copy of the observable state tree.
func (s *Store) Snapshot() models.SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.SaveState {
	learned := make(models.LearnedVocabulary, len(s.vocabulary.Learned))
	for word, entry := range s.vocabulary.Learned {
		learned[word] = entry
	}
	vocabulary := s.vocabulary
	vocabulary.Learned = learned
	vocabulary.Dictionary = append([]models.VocabularyEntry(nil), s.vocabulary.Dictionary...)

	story := s.story
	story.History = append([]string(nil), s.story.History...)

	progress := s.progress
	progress.Achievements = append([]string(nil), s.progress.Achievements...)

	return models.SaveState{
		Character:           s.character,
		CurrentModule:       s.currentModule,
		Story:               story,
		Vocabulary:          vocabulary,
		Progress:            progress,
		Settings:            s.settings,
		ActiveTab:           s.activeTab,
		GeneratedContent:    s.generatedContent,
		RawGeneratedContent: s.rawGeneratedContent,
		GameHistory:         append([]models.HistoryEntry(nil), s.gameHistory...),
	}
}

// ContextForContinuation builds the prompt context for requesting the next
// generated scene.
func (s *Store) ContextForContinuation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return narrative.BuildContinuationContext(s.gameHistory)
}

// DictionaryData lists the learned words ordered by when they were learned.
func (s *Store) DictionaryData() []models.VocabularyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]models.VocabularyEntry, 0, len(s.vocabulary.Learned))
	for _, entry := range s.vocabulary.Learned {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LearnedAt != entries[j].LearnedAt {
			return entries[i].LearnedAt < entries[j].LearnedAt
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// SceneVocabulary returns the word list of the active scene.
func (s *Store) SceneVocabulary() []models.VocabularyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	module, ok := s.modules[s.currentModule.ID]
	if !ok {
		return nil
	}
	scene, ok := module.Scenes[s.story.CurrentScene]
	if !ok {
		return nil
	}
	return append([]models.VocabularyEntry(nil), scene.Vocabulary...)
}

// SceneText returns the static text of the active scene.
func (s *Store) SceneText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modules[s.currentModule.ID].Scenes[s.story.CurrentScene].Text
}

// SetLevelTable replaces the rank table, normally with the fetched external
// resource.
func (s *Store) SetLevelTable(table []LevelRequirement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(table) > 0 {
		s.levels = table
	}
}

// Rank returns the highest rank tier the learned-word count has reached.
func (s *Store) Rank() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.vocabulary.Learned)
	rank := 0
	for _, tier := range s.levels {
		if count >= tier.WordsRequired {
			rank = tier.Level
		}
	}
	return rank
}

// WordsToNextRank returns how many more words the next rank tier needs, or 0
// at the top tier.
func (s *Store) WordsToNextRank() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.vocabulary.Learned)
	for _, tier := range s.levels {
		if tier.WordsRequired > count {
			return tier.WordsRequired - count
		}
	}
	return 0
}

// Derived display values.

func (s *Store) Character() models.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.character
}

func (s *Store) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress
	p.Achievements = append([]string(nil), s.progress.Achievements...)
	return p
}

func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Store) StoryText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.story.Text
}

func (s *Store) RawGeneratedContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawGeneratedContent
}

func (s *Store) GameHistory() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry(nil), s.gameHistory...)
}

func (s *Store) VocabCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vocabulary.Learned)
}

func (s *Store) HPPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.character.HP) / float64(s.character.MaxHP) * 100
}

func (s *Store) EnergyPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.character.Energy) / float64(s.character.MaxEnergy) * 100
}

func (s *Store) XPPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.character.Experience) / float64(s.character.MaxExperience) * 100
}

// SetUserName updates the character name and records it under the separate
// username key so a fresh session can carry it over.
func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.character.Name = name
	if err := s.kv.Set(models.UserNameKey, []byte(name)); err != nil {
		log.Printf("save username: %v", err)
	}
	s.saveLocked()
}
