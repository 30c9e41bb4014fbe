package models

// Character represents the player avatar and its progression stats.
type Character struct {
	Name          string `yaml:"name" json:"name"`
	Level         int    `yaml:"level" json:"level"`
	HP            int    `yaml:"hp" json:"hp"`
	MaxHP         int    `yaml:"maxHp" json:"maxHp"`
	Energy        int    `yaml:"energy" json:"energy"`
	MaxEnergy     int    `yaml:"maxEnergy" json:"maxEnergy"`
	Experience    int    `yaml:"experience" json:"experience"`
	MaxExperience int    `yaml:"maxExperience" json:"maxExperience"`
}

// ModuleInfo identifies the learning module the player is currently in.
type ModuleInfo struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Progress    int    `yaml:"progress" json:"progress"`
}

// Story holds the visible narrative state.
type Story struct {
	CurrentScene string   `yaml:"currentScene" json:"currentScene"`
	Text         string   `yaml:"text" json:"text"`
	History      []string `yaml:"history,omitempty" json:"history,omitempty"`
}

// VocabularyEntry is a single word, either from a scene's static word list
// (word/translation/pos/difficulty) or from the learned dictionary
// (word/learnedAt/reviewCount). Unused fields are omitted when serialized.
type VocabularyEntry struct {
	Word        string `yaml:"word" json:"word"`
	Translation string `yaml:"translation,omitempty" json:"translation,omitempty"`
	POS         string `yaml:"pos,omitempty" json:"pos,omitempty"`
	Difficulty  int    `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	LearnedAt   int64  `yaml:"learnedAt,omitempty" json:"learnedAt,omitempty"`
	ReviewCount int    `yaml:"reviewCount" json:"reviewCount"`
	Mastery     int    `yaml:"mastery,omitempty" json:"mastery,omitempty"`
}

// LearnedVocabulary is the dictionary of words the player has imitated
// successfully, keyed by the lowercase word. It serializes as an ordered
// list of (word, entry) pairs; see persistence.go.
type LearnedVocabulary map[string]VocabularyEntry

// VocabularyState groups the word-selection pointer, the scene dictionary
// and the learned dictionary.
type VocabularyState struct {
	SelectedWord string            `yaml:"selectedWord" json:"selectedWord"`
	Dictionary   []VocabularyEntry `yaml:"dictionary,omitempty" json:"dictionary,omitempty"`
	Learned      LearnedVocabulary `yaml:"learned" json:"learned"`
}

// Progress tracks per-session learning counters. Counters only grow, except
// via an explicit reset.
type Progress struct {
	WordsLearnedToday int      `yaml:"wordsLearnedToday" json:"wordsLearnedToday"`
	TimeSpent         int      `yaml:"timeSpent" json:"timeSpent"` // seconds
	ActionsTaken      int      `yaml:"actionsTaken" json:"actionsTaken"`
	Achievements      []string `yaml:"achievements,omitempty" json:"achievements,omitempty"`
}

// Settings holds player configuration.
type Settings struct {
	NativeLanguage    string `yaml:"nativeLanguage" json:"nativeLanguage"`
	TargetLanguage    string `yaml:"targetLanguage" json:"targetLanguage"`
	Difficulty        string `yaml:"difficulty" json:"difficulty"`
	SoundEnabled      bool   `yaml:"soundEnabled" json:"soundEnabled"`
	AnimationsEnabled bool   `yaml:"animationsEnabled" json:"animationsEnabled"`
}

// HistoryEntry represents one completed turn: what the game master narrated,
// what the player did, and how it resolved. GMNarrative always holds the raw
// generated text, never the highlighted display form.
type HistoryEntry struct {
	GMNarrative  string `yaml:"gm_narrative" json:"gm_narrative"`
	PlayerAction string `yaml:"player_action" json:"player_action"`
	ActionResult string `yaml:"action_result,omitempty" json:"action_result,omitempty"`
}

// Scene is a static narrative unit inside a module.
type Scene struct {
	Text         string            `yaml:"text" json:"text"`
	Vocabulary   []VocabularyEntry `yaml:"vocabulary" json:"vocabulary"`
	Interactions []string          `yaml:"interactions" json:"interactions"`
}

// NPC is a non-player character in a module.
type NPC struct {
	Name     string   `yaml:"name" json:"name"`
	Dialogue []string `yaml:"dialogue" json:"dialogue"`
}

// Module is a static learning module: scenes, their vocabulary, and NPCs.
// Not mutated at runtime.
type Module struct {
	Title       string           `yaml:"title" json:"title"`
	Description string           `yaml:"description" json:"description"`
	Scenes      map[string]Scene `yaml:"scenes" json:"scenes"`
	NPCs        map[string]NPC   `yaml:"npcs" json:"npcs"`
}

// SaveState is the full observable state tree written to the save slot.
type SaveState struct {
	Character           Character       `yaml:"character" json:"character"`
	CurrentModule       ModuleInfo      `yaml:"currentModule" json:"currentModule"`
	Story               Story           `yaml:"story" json:"story"`
	Vocabulary          VocabularyState `yaml:"vocabulary" json:"vocabulary"`
	Progress            Progress        `yaml:"progress" json:"progress"`
	Settings            Settings        `yaml:"settings" json:"settings"`
	ActiveTab           string          `yaml:"activeTab" json:"activeTab"`
	GeneratedContent    string          `yaml:"generatedContent" json:"generatedContent"`
	RawGeneratedContent string          `yaml:"rawGeneratedContent" json:"rawGeneratedContent"`
	GameHistory         []HistoryEntry  `yaml:"gameHistory,omitempty" json:"gameHistory,omitempty"`
	UserName            string          `yaml:"userName,omitempty" json:"userName,omitempty"`
}
