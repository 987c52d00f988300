package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zappabad/poketrade/internal/api/apitest"
	"github.com/zappabad/poketrade/internal/logger"
)

// fakeapi serves the in-memory trading API so the client can be tried
// without a backend.
func main() {
	addr := flag.String("addr", ":8000", "listen address")
	seed := flag.Bool("seed", true, "create demo trainers, Pokémon and one open trade")
	level := flag.String("level", "info", "log level")
	flag.Parse()

	logger.Initialize(*level, os.Stderr)
	log := logger.Service("fakeapi")

	srv := apitest.New()
	if *seed {
		srv.Seed()
		fmt.Printf("Seeded trainers ash, misty and brock (password %q)\n", apitest.DemoPassword)
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown failed", "err", err)
		}
	}()

	fmt.Printf("Fake API listening on %s\n", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error", "err", err)
	}
}
