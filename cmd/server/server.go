package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	http   *http.Server
	logger *slog.Logger
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(newHealth(cfg, infra.Lifecycle.Ready))
	modules.Mount(router)

	logger := infra.Logger.With("system", "server")
	logger.Info("server initialized", startupAttrs(cfg)...)

	return &Server{
		cfg:   cfg,
		infra: infra,
		http: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
			BaseContext: func(net.Listener) context.Context {
				return infra.Lifecycle.Context()
			},
		},
		logger: logger,
	}, nil
}

// startupAttrs summarizes the categorization defaults a run inherits when
// its request leaves them unset.
func startupAttrs(cfg *config.Config) []any {
	return []any{
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"oracle_provider", cfg.Oracle.Provider,
		"oracle_model", cfg.Oracle.Model,
		"max_categories", cfg.Taxonomy.MaxCategories,
		"concurrency", cfg.Taxonomy.Concurrency,
		"container", cfg.Storage.ContainerName,
	}
}

// Start brings up the infrastructure, binds the listener, and serves in the
// background. A bind failure is returned from Start.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}

	go s.serve(ln)
	s.infra.Lifecycle.OnShutdown(s.drain)

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) serve(ln net.Listener) {
	s.logger.Info("server listening", "addr", ln.Addr().String())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("serve failed", "error", err)
	}
}

// drain waits for lifecycle cancellation, then lets in-flight runs finish
// within the shutdown timeout.
func (s *Server) drain() {
	<-s.infra.Lifecycle.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("http drain failed", "error", err)
		return
	}
	s.logger.Info("http drained")
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
