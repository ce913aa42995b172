package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/solacehq/solace/backend/internal/config"
	"github.com/solacehq/solace/backend/internal/handler"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
	chatservice "github.com/solacehq/solace/backend/internal/service/chat"
	"github.com/solacehq/solace/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// A malformed lexicon would make selector states unreachable, so it is
	// fatal before any message is processed.
	tables, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		log.Fatalf("failed to load lexicon: %v", err)
	}
	if cfg.Lexicon.Path != "" {
		log.Printf("lexicon loaded from %s", cfg.Lexicon.Path)
	} else {
		log.Println("using built-in lexicon tables")
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open mood store: %v", err)
	}
	defer store.Close()

	chatService, err := chatservice.NewService(tables, store, nil, cfg.Chat.MoodLimit)
	if err != nil {
		log.Fatalf("failed to initialize chat service: %v", err)
	}

	router := handler.NewRouter(chatService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Solace backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
