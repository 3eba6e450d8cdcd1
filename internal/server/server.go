package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers

	// stop cancels the run context; set while RunServer is active.
	mu   sync.Mutex
	stop context.CancelFunc

	logger *logger.Logger
}

// NewServer creates the server. A nil bg runs no background workers.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	if bg == nil {
		bg = workers.NewWorkers()
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    bg,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.mu.Lock()
	s.stop = stop
	s.mu.Unlock()

	s.run(ctx)
}

func (s *server) Shutdown() {
	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (s *server) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Info().Msg("Launching background workers")
		s.workers.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Info().Msg("Launching HTTP server")
		if err := s.httpServer.RunServer(); err != nil {
			s.logger.Err(err).Msg("HTTP server stopped with error")
			// a dead listener takes the workers down as well
			cancel()
		}
	}()

	<-ctx.Done()
	s.logger.Info().Msg("stop requested, shutting down")
	s.httpServer.Shutdown()

	wg.Wait()
	s.logger.Info().Msg("server Shutdown gracefully")
}
