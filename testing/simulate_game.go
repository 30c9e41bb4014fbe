package main

import (
	"context"
	"fmt"
	"log"
	"reflect"

	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/narrative"
	"github.com/laicwew/LexiQuest/internal/storage"
)

// A scripted offline playthrough: drives the store through an opening scene,
// a round of actions on each vocabulary word, and a save/load round trip,
// printing the state after each step. Useful for eyeballing the progression
// numbers without a terminal UI or an AI backend.

// scriptedProvider returns canned scenes in order.
type scriptedProvider struct {
	scenes []string
	next   int
}

func (p *scriptedProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	if p.next >= len(p.scenes) {
		return p.scenes[len(p.scenes)-1], nil
	}
	scene := p.scenes[p.next]
	p.next++
	return scene, nil
}

func main() {
	ctx := context.Background()

	kv := storage.NewMemStore()
	store, err := game.NewStore(kv)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	store.LoadGame()

	provider := &scriptedProvider{scenes: []string{
		"You stand at the edge of a dense forest. A narrow **path** winds between the towering **trees**, and somewhere ahead you hear a **stream**.",
		"The path opens into a sunlit glade. An old **lantern** hangs from a low branch beside a moss-covered **stone**.",
	}}

	// 1. Opening scene via the start-journey prompt.
	fmt.Println("--- Step 1: Opening scene ---")
	prompt := store.ContextForContinuation()
	fmt.Printf("Prompt:\n%s\n\n", prompt)
	raw, err := provider.Generate(ctx, narrative.SystemPrompt, prompt)
	if err != nil {
		log.Fatalf("Failed to generate opening: %v", err)
	}
	store.RecordOpeningScene(raw, narrative.HighlightHTML(raw))
	fmt.Printf("Scene: %s\n", raw)
	fmt.Printf("Interactables: %v\n\n", narrative.ExtractInteractables(raw))

	// 2. A round of actions on the generated words.
	fmt.Println("--- Step 2: Actions ---")
	for i, word := range narrative.ExtractInteractables(raw) {
		action := game.Actions[i%len(game.Actions)]
		store.SelectWord(word)
		result := store.PerformAction(action)
		fmt.Printf("%s %s -> %s\n", action, word, result)
	}
	c := store.Character()
	fmt.Printf("Character: Lv %d, HP %d/%d, Energy %d/%d, XP %d/%d\n",
		c.Level, c.HP, c.MaxHP, c.Energy, c.MaxEnergy, c.Experience, c.MaxExperience)
	fmt.Printf("Learned words: %d, rank %d, %d to next rank\n\n",
		store.VocabCount(), store.Rank(), store.WordsToNextRank())

	// 3. Continue the story from the recorded history.
	fmt.Println("--- Step 3: Continuation context ---")
	fmt.Printf("%s\n\n", store.ContextForContinuation())

	// 4. Save/load round trip into a fresh store.
	fmt.Println("--- Step 4: Save/load round trip ---")
	if err := store.SaveGame(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	restored, err := game.NewStore(kv)
	if err != nil {
		log.Fatalf("Failed to create second store: %v", err)
	}
	restored.LoadGame()
	if !reflect.DeepEqual(store.Snapshot(), restored.Snapshot()) {
		log.Fatal("Round trip mismatch: restored state differs")
	}
	fmt.Println("Round trip OK: restored state matches")
}
