package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/calculator-mcp/mcp/internal/handlers"
	"github.com/rs/zerolog"
)

const headerSessionID = "Mcp-Session-Id"

// Router fronts an MCPServer. tools/call for a registered tool and every
// other method go to the server unchanged. tools/call naming an unregistered
// tool is answered here with an "Unknown tool" tool result instead of the
// server's JSON-RPC invalid-params error.
type Router struct {
	srv   *server.MCPServer
	known map[string]struct{}
	log   zerolog.Logger
}

func NewRouter(srv *server.MCPServer, toolNames []string, log zerolog.Logger) *Router {
	known := make(map[string]struct{}, len(toolNames))
	for _, n := range toolNames {
		known[n] = struct{}{}
	}
	return &Router{srv: srv, known: known, log: log}
}

// toolCallResponse mirrors a JSON-RPC success response. The id is echoed
// verbatim so string and numeric ids both round-trip.
type toolCallResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      json.RawMessage     `json:"id"`
	Result  *mcp.CallToolResult `json:"result"`
}

// HandleMessage processes one JSON-RPC message and returns the response, or
// nil for notifications.
func (r *Router) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	if resp, ok := r.unknownToolCall(raw, true); ok {
		return resp
	}
	return r.srv.HandleMessage(ctx, raw)
}

// unknownToolCall answers tools/call for an unregistered name. When
// answerable is false the message is always left to the server.
func (r *Router) unknownToolCall(raw []byte, answerable bool) (*toolCallResponse, bool) {
	if !answerable {
		return nil, false
	}

	var msg struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
		Params struct {
			Name string `json:"name"`
		} `json:"params"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, false
	}
	if msg.Method != string(mcp.MethodToolsCall) || len(msg.ID) == 0 {
		return nil, false
	}
	if _, ok := r.known[msg.Params.Name]; ok {
		return nil, false
	}

	r.log.Debug().Str("tool", msg.Params.Name).Msg("tools/call for unknown tool")
	return &toolCallResponse{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      msg.ID,
		Result:  handlers.UnknownToolResult(msg.Params.Name),
	}, true
}

// ServeStdio reads newline-delimited messages from in and writes one response
// line per request to out. Each message is handled to completion before the
// next is read.
func (r *Router) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	enc := json.NewEncoder(out)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, readErr := reader.ReadBytes('\n')
		if msg := bytes.TrimSpace(line); len(msg) > 0 {
			if resp := r.HandleMessage(ctx, json.RawMessage(msg)); resp != nil {
				if err := enc.Encode(resp); err != nil {
					return fmt.Errorf("write response: %w", err)
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read request: %w", readErr)
		}
	}
}

// WrapHTTP applies the unknown-tool routing to a Streamable HTTP handler.
// POST bodies larger than maxBytes are refused. A request carrying a session
// id that sessions rejects or reports terminated is forwarded to next so the
// streamable server answers it exactly as it answers registered tools. A nil
// sessions skips the check.
func (r *Router) WrapHTTP(next http.Handler, sessions server.SessionIdManager, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			next.ServeHTTP(w, req)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		sid := req.Header.Get(headerSessionID)
		if resp, ok := r.unknownToolCall(body, sessionUsable(sessions, sid)); ok {
			if sid != "" {
				w.Header().Set(headerSessionID, sid)
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(resp); err != nil {
				r.log.Error().Err(err).Msg("failed to write unknown tool response")
			}
			return
		}

		req.Body = io.NopCloser(bytes.NewReader(body))
		req.ContentLength = int64(len(body))
		next.ServeHTTP(w, req)
	})
}

// sessionUsable reports whether sid is absent or a live session.
func sessionUsable(sessions server.SessionIdManager, sid string) bool {
	if sessions == nil || sid == "" {
		return true
	}
	isTerminated, err := sessions.Validate(sid)
	return err == nil && !isTerminated
}
