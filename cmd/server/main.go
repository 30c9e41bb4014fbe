package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/laicwew/LexiQuest/internal/config"
	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/server"
	"github.com/laicwew/LexiQuest/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	var kv storage.KV
	var err error
	if cfg.SaveDBPath != "" {
		kv, err = storage.OpenSQLite(cfg.SaveDBPath)
	} else {
		kv, err = storage.NewFileStore(cfg.SaveDir)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()

	store, err := game.NewStore(kv)
	if err != nil {
		log.Fatal(err)
	}
	store.LoadGame()

	if cfg.LevelTableURL != "" {
		store.SetLevelTable(game.FetchLevelTable(ctx, http.DefaultClient, cfg.LevelTableURL))
	}

	trackCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	store.StartProgressTracking(trackCtx)

	hub := server.NewHub()
	go hub.Run()

	srv := server.New(store, hub, cfg.ChatAPIKey, cfg.ChatBaseURL, cfg.ChatModel)

	log.Printf("Listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, srv.Routes()))
}
