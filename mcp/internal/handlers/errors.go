package handlers

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/mycelian/calculator-mcp/internal/metrics"
)

// errorResult renders a rejection as a single "Error: " text block with the
// error flag set.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

// UnknownToolResult is the reply to tools/call naming an unregistered tool.
func UnknownToolResult(name string) *mcp.CallToolResult {
	err := decimalsum.UnknownOperation(name)
	metrics.ObserveRejection(err.Kind.String())
	// the requested name stays out of the label set
	metrics.ObserveCall("unknown", metrics.OutcomeUnknownTool, time.Now())
	return errorResult(err)
}
