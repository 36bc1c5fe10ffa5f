// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Command edlserve serves edit list parsing, scene lists and the edit list
// catalog over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrjoshuak/cmx3600/internal/api"
	"github.com/mrjoshuak/cmx3600/internal/catalog"
	"github.com/mrjoshuak/cmx3600/internal/config"
	applog "github.com/mrjoshuak/cmx3600/internal/log"
)

var Version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to config file")
	addr := flag.String("addr", "", "listen address (default from config)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run(configPath, addr string) error {
	startTime := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := applog.Init(cfg.Logging.LogOptions())
	logger.Info("starting edlserve", "version", Version, "addr", cfg.Server.Addr)

	srvCfg := api.ServerConfig{
		Addr:         cfg.Server.Addr,
		Logger:       logger,
		StartTime:    startTime,
		Version:      Version,
		Tolerant:     cfg.Parse.Tolerant,
		ScenePattern: cfg.Scenes.Pattern,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}

	if cfg.Catalog.Path != "" {
		store, err := catalog.Open(cfg.Catalog.Path, applog.WithComponent(logger, "catalog"))
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer store.Close()
		srvCfg.Catalog = store
	} else {
		logger.Info("catalog disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(srvCfg)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
