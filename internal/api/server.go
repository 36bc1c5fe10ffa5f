// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package api serves edit list parsing, scene lists and the catalog over
// HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrjoshuak/cmx3600"
	"github.com/mrjoshuak/cmx3600/internal/catalog"
	applog "github.com/mrjoshuak/cmx3600/internal/log"
	"github.com/mrjoshuak/cmx3600/internal/scenelist"
)

// Catalog stores parsed edit lists. *catalog.Store implements it.
type Catalog interface {
	SaveEditList(ctx context.Context, name string, edl *cmx3600.EditList) (int64, error)
	GetEditList(ctx context.Context, id int64) (*catalog.EditList, error)
	ListEditLists(ctx context.Context) ([]*catalog.EditList, error)
	ListEdits(ctx context.Context, listID int64) ([]*catalog.Edit, error)
	DeleteEditList(ctx context.Context, id int64) error
}

const defaultMaxBodyBytes = 10 << 20

type ServerConfig struct {
	Addr string
	// Catalog may be nil, in which case the /lists routes answer 503.
	Catalog      Catalog
	Logger       *slog.Logger
	StartTime    time.Time
	Version      string
	Tolerant     bool
	ScenePattern string
	MaxBodyBytes int64
}

func (cfg ServerConfig) withDefaults() ServerConfig {
	if cfg.Logger == nil {
		cfg.Logger = applog.Discard()
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}
	if cfg.ScenePattern == "" {
		cfg.ScenePattern = scenelist.DefaultPattern
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	return cfg
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	cfg = cfg.withDefaults()
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(cfg),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
