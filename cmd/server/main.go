package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahulm-dev/inkwell/internal/api"
	"github.com/rahulm-dev/inkwell/internal/config"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// @title Inkwell CMS API
// @version 1.0
// @description Content-management backend: registration/login with JWT token pairs, CRUD plus keyword search over content items.
// @BasePath /api/v1
func main() {
	// Connect to database
	repositories.ConnectDatabase()

	if err := repositories.InitStorage(config.Envs.Storage); err != nil {
		log.Fatalf("Could not initialize document storage: %v", err)
	}

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting Inkwell server on port: %s", config.Envs.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
