// Command server is the process entrypoint: it loads configuration,
// connects to Postgres, hydrates the dictionary, and serves the room
// registry over HTTP/WebSocket until told to stop.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scythe504/yeet-backend/internal/auth"
	"github.com/scythe504/yeet-backend/internal/config"
	"github.com/scythe504/yeet-backend/internal/dictionary"
	"github.com/scythe504/yeet-backend/internal/registry"
	"github.com/scythe504/yeet-backend/internal/server"
	"github.com/scythe504/yeet-backend/internal/store"
	"github.com/scythe504/yeet-backend/internal/tilebag"
	"github.com/scythe504/yeet-backend/internal/ws"
)

func main() {
	cfg := config.Load()
	tilebag.LoadKoreanWeights(cfg.KoreanWeightsPath)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[main] could not connect to postgres: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("[main] could not ensure schema: %v", err)
	}

	dict, err := dictionary.Load(ctx, db)
	if err != nil {
		log.Fatalf("[main] could not load dictionary: %v", err)
	}

	reg := registry.New(dict, db)
	handler := &ws.Handler{Registry: reg, Verifier: auth.NewJWTVerifier(cfg.JWTSecret)}
	router := server.New(reg, handler)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
