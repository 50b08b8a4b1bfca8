package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/bizz/internal/config"
	"github.com/JaimeStill/bizz/internal/infrastructure"
)

// Server wires the infrastructure, the mounted modules, and the HTTP
// listener for the directory service.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("infrastructure: %w", err)
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}

	router := buildRouter(infra)
	modules.Mount(router)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, wrapRouter(router, infra, cfg), infra.Logger),
	}, nil
}

// Start launches the subsystems and the listener. Readiness flips once
// every subsystem startup hook has returned; /readyz reports 503 until
// then.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return fmt.Errorf("start infrastructure: %w", err)
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("directory ready", "subsystems", s.infra.Lifecycle.Status())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
