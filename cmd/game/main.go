package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/laicwew/LexiQuest/internal/config"
	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/narrative"
	"github.com/laicwew/LexiQuest/internal/storage"
	"github.com/laicwew/LexiQuest/internal/tui"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	kv, err := openStorage(cfg)
	if err != nil {
		fmt.Printf("Error opening save storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store, err := game.NewStore(kv)
	if err != nil {
		fmt.Printf("Error creating game store: %v\n", err)
		os.Exit(1)
	}
	store.LoadGame()

	if cfg.LevelTableURL != "" {
		store.SetLevelTable(game.FetchLevelTable(ctx, http.DefaultClient, cfg.LevelTableURL))
	}

	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		fmt.Printf("Error creating narrative provider: %v\n", err)
		os.Exit(1)
	}
	defer closeProvider()

	trackCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	store.StartProgressTracking(trackCtx)

	if err := tui.Run(store, provider); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if err := store.SaveGame(); err != nil {
		log.Printf("final save: %v", err)
	}
}

func openStorage(cfg *config.Config) (storage.KV, error) {
	if cfg.SaveDBPath != "" {
		return storage.OpenSQLite(cfg.SaveDBPath)
	}
	return storage.NewFileStore(cfg.SaveDir)
}

// newProvider picks the narrative backend from whatever is configured:
// direct Gemini, a chat-completion credential, or the key-holding proxy.
// With none of those the game still runs, just without AI continuation.
func newProvider(ctx context.Context, cfg *config.Config) (narrative.Provider, func(), error) {
	switch {
	case cfg.GeminiAPIKey != "":
		gemini, err := narrative.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	case cfg.ChatAPIKey != "":
		return narrative.NewChatCompletion(cfg.ChatBaseURL, cfg.ChatAPIKey, cfg.ChatModel), func() {}, nil
	case cfg.ProxyURL != "":
		return narrative.NewProxyClient(cfg.ProxyURL), func() {}, nil
	}
	return nil, func() {}, nil
}
