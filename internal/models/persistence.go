package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Keys in the underlying key-value store. UserNameKey is written by the
// account flow independently of the main save and is only consulted when no
// save exists yet.
const (
	SaveKey     = "lexiquest-save"
	UserNameKey = "lexiquest-username"
)

// Encode serializes the full state tree into the save blob.
func (s *SaveState) Encode() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeSaveState parses a save blob. It tolerates blobs written by older
// schemas: missing substructures simply stay at their zero value and the
// caller substitutes defaults.
func DecodeSaveState(data []byte) (*SaveState, error) {
	var s SaveState
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode save state: %w", err)
	}
	if s.Vocabulary.Learned == nil {
		s.Vocabulary.Learned = LearnedVocabulary{}
	}
	return &s, nil
}

// sortedWords returns the dictionary keys in lexical order so that the
// flattened pair list is deterministic.
func (lv LearnedVocabulary) sortedWords() []string {
	words := make([]string, 0, len(lv))
	for w := range lv {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// MarshalYAML flattens the dictionary into an ordered list of (word, entry)
// pairs. The store has no native representation for an associative container,
// so the map round-trips through this pair-list form.
func (lv LearnedVocabulary) MarshalYAML() (interface{}, error) {
	pairs := make([][]interface{}, 0, len(lv))
	for _, w := range lv.sortedWords() {
		pairs = append(pairs, []interface{}{w, lv[w]})
	}
	return pairs, nil
}

// UnmarshalYAML rebuilds the dictionary from its flattened pair-list form.
func (lv *LearnedVocabulary) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("learned vocabulary: expected a pair list")
	}
	out := make(LearnedVocabulary, len(value.Content))
	for _, item := range value.Content {
		if item.Kind != yaml.SequenceNode || len(item.Content) != 2 {
			return fmt.Errorf("learned vocabulary: malformed pair")
		}
		var word string
		if err := item.Content[0].Decode(&word); err != nil {
			return fmt.Errorf("learned vocabulary key: %w", err)
		}
		var entry VocabularyEntry
		if err := item.Content[1].Decode(&entry); err != nil {
			return fmt.Errorf("learned vocabulary entry %q: %w", word, err)
		}
		out[word] = entry
	}
	*lv = out
	return nil
}

// MarshalJSON mirrors the yaml pair-list form for the JSON wire.
func (lv LearnedVocabulary) MarshalJSON() ([]byte, error) {
	pairs := make([][]interface{}, 0, len(lv))
	for _, w := range lv.sortedWords() {
		pairs = append(pairs, []interface{}{w, lv[w]})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON rebuilds the dictionary from the JSON pair-list form.
func (lv *LearnedVocabulary) UnmarshalJSON(data []byte) error {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("learned vocabulary: %w", err)
	}
	out := make(LearnedVocabulary, len(pairs))
	for _, pair := range pairs {
		var word string
		if err := json.Unmarshal(pair[0], &word); err != nil {
			return fmt.Errorf("learned vocabulary key: %w", err)
		}
		var entry VocabularyEntry
		if err := json.Unmarshal(pair[1], &entry); err != nil {
			return fmt.Errorf("learned vocabulary entry %q: %w", word, err)
		}
		out[word] = entry
	}
	*lv = out
	return nil
}
