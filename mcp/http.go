package mcp

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/calculator-mcp/internal/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) newStreamableServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithEndpointPath(s.cfg.EndpointPath),
		server.WithHeartbeatInterval(s.cfg.HeartbeatInterval),
		server.WithSessionIdManager(s.sessions),
	)
}

// httpHandler routes the MCP endpoint, Prometheus metrics and health.
func (s *Server) httpHandler(streamSrv http.Handler) http.Handler {
	r := mux.NewRouter()
	r.Handle(s.cfg.EndpointPath, s.router.WrapHTTP(streamSrv, s.sessions, s.cfg.MaxRequestBytes))
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Handle("/healthz", health.Handler(s.health)).Methods(http.MethodGet)
	return r
}

// HTTPHandler returns the full HTTP surface backed by a fresh Streamable
// HTTP server. ServeHTTP uses the same routing.
func (s *Server) HTTPHandler() http.Handler {
	return s.httpHandler(s.newStreamableServer())
}
