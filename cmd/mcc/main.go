// Package main implements the Map Console Container entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/map-console/mcc/internal/api"
	"github.com/map-console/mcc/internal/auth"
	"github.com/map-console/mcc/internal/bridge"
	"github.com/map-console/mcc/internal/config"
	"github.com/map-console/mcc/internal/console"
	"github.com/map-console/mcc/internal/diag"
	"github.com/map-console/mcc/internal/metrics"
	"github.com/map-console/mcc/internal/session"
)

const Version = "1.0.0"

func main() {
	log.Printf("Starting Map Console Container v%s", Version)

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// Step 2: Initialize diagnostic sinks
	sinks, err := diag.NewFactory(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to initialize diagnostic sinks: %v", err)
	}
	log.Println("Diagnostic sinks initialized")

	// Step 3: Initialize metrics
	m := metrics.New()

	// Step 4: Initialize bridge hub and session manager
	hub := bridge.NewHub(cfg.Timing, m)
	sessions := session.NewManager()
	log.Println("Bridge hub initialized")

	// Step 5: Create intent dispatcher
	dispatcher := console.NewDispatcher(hub, sessions, sinks, cfg.Timing, m)

	// Step 6: Optional auth middleware
	var authMiddleware *auth.Middleware
	if cfg.AuthSecret != "" {
		verifier, err := auth.NewVerifier(cfg.AuthSecret)
		if err != nil {
			log.Fatalf("Failed to initialize auth: %v", err)
		}
		authMiddleware = auth.NewMiddleware(verifier)
		log.Println("Auth middleware enabled")
	} else {
		log.Println("Auth disabled (no MCC_AUTH_SECRET); development mode")
	}

	// Step 7: Create API server
	server := api.NewServer(dispatcher, m.Handler(), authMiddleware, 30*time.Second, 120*time.Second)
	log.Println("API server created")

	// Step 8: Start HTTP server
	log.Printf("Starting HTTP server on %s", cfg.Addr)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.Addr); err != nil {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	log.Printf("Map Console Container started successfully")
	log.Printf("Health endpoint: http://localhost%s/api/v1/health", cfg.Addr)
	log.Printf("Bridge endpoint: ws://localhost%s/api/v1/bridge", cfg.Addr)

	// Graceful shutdown on SIGINT/SIGTERM
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		log.Printf("Received signal %v, initiating graceful shutdown...", sig)
	case err := <-serverErr:
		log.Printf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()
	log.Println("Bridge hub stopped")

	if err := sinks.Close(); err != nil {
		log.Printf("Error closing diagnostic sinks: %v", err)
	}

	if err := server.Stop(ctx); err != nil {
		log.Printf("Error stopping HTTP server: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	log.Println("Map Console Container shutdown complete")
}
