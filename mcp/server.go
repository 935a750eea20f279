package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/calculator-mcp/internal/config"
	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/mycelian/calculator-mcp/internal/health"
	"github.com/mycelian/calculator-mcp/mcp/internal/handlers"
	"github.com/rs/zerolog"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
	Tools() []mcp.Tool
}

// Server is the calculator MCP server with its tools registered.
type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	mcp      *server.MCPServer
	router   *Router
	tools    []mcp.Tool
	health   *health.ServiceHealthChecker
	sessions server.SessionIdManager
	registry []toolRegisterer
}

// NewServer builds the MCP server and registers every tool handler.
func NewServer(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	s := &Server{
		cfg: cfg,
		log: log,
		mcp: server.NewMCPServer(
			cfg.ServerName,
			cfg.ServerVersion,
			server.WithToolCapabilities(true),
		),
		// shared by every Streamable HTTP server and the router
		sessions: &server.InsecureStatefulSessionIdManager{},
	}

	s.registry = []toolRegisterer{
		handlers.NewSumHandler(log, decimalsum.Validator{MaxDecimalPlaces: cfg.MaxDecimalPlaces}),
	}
	for _, h := range s.registry {
		if err := h.RegisterTools(s.mcp); err != nil {
			return nil, fmt.Errorf("register tools: %w", err)
		}
		s.tools = append(s.tools, h.Tools()...)
	}

	names := make([]string, 0, len(s.tools))
	for _, t := range s.tools {
		names = append(names, t.Name)
	}
	s.router = NewRouter(s.mcp, names, log)

	s.health = health.NewServiceHealthChecker(log,
		health.NewEngineChecker(log, decimalsum.Sum),
	)
	return s, nil
}

// MCP exposes the underlying mark3labs server, e.g. for in-process clients.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// Router returns the message router that fronts the MCP server.
func (s *Server) Router() *Router { return s.router }

// Tools returns the discovery listing in registration order.
func (s *Server) Tools() []mcp.Tool { return append([]mcp.Tool(nil), s.tools...) }

// Health returns the aggregated service health checker.
func (s *Server) Health() *health.ServiceHealthChecker { return s.health }

// ServeStdio answers newline-delimited JSON-RPC on in/out until EOF or ctx is
// done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info().Msg("Starting calculator MCP server (stdio transport)")

	errCh := make(chan error, 1)
	go func() { errCh <- s.router.ServeStdio(ctx, in, out) }()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("stdio transport stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

// ServeHTTP serves the Streamable HTTP transport plus /metrics and /healthz
// until ctx is done, then shuts down within cfg.ShutdownTimeout.
func (s *Server) ServeHTTP(ctx context.Context) error {
	streamSrv := s.newStreamableServer()
	srv := &http.Server{
		Addr:         s.cfg.GetHTTPAddr(),
		Handler:      s.httpHandler(streamSrv),
		ReadTimeout:  s.cfg.HTTPReadTimeout,
		WriteTimeout: 0, // No deadline - required for SSE streaming
		IdleTimeout:  s.cfg.HTTPIdleTimeout,
	}

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go s.health.Start(healthCtx, s.cfg.HealthInterval)

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.log.Info().Msg("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Stack().Err(err).Msg("Error during HTTP server shutdown")
		}
		s.log.Info().Msg("Shutting down MCP streamable server...")
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Stack().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	s.log.Info().
		Str("addr", srv.Addr).
		Str("endpoint", s.cfg.EndpointPath).
		Msg("Starting calculator MCP server (Streamable HTTP)")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	s.log.Info().Msg("MCP server shutdown complete")
	return nil
}

// RunMCPServer starts the server on the configured transport and blocks until
// SIGINT/SIGTERM, EOF on stdio, or a fatal serve error.
func RunMCPServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := NewServer(cfg, log)
	if err != nil {
		return err
	}

	if shouldUseStdio(cfg.Transport) {
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	}
	return s.ServeHTTP(ctx)
}

// shouldUseStdio resolves the auto transport: stdio if stdin is not a
// terminal (launched by another process), HTTP otherwise.
func shouldUseStdio(t config.Transport) bool {
	switch t {
	case config.TransportStdio:
		return true
	case config.TransportHTTP:
		return false
	}

	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}

	// Default to HTTP if detection fails
	return false
}
