package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/mycelian/calculator-mcp/internal/metrics"
	"github.com/rs/zerolog"
)

// SumToolName is the only operation this server exposes.
const SumToolName = "sum"

const sumDescription = "Sum an array of signed decimal numbers and round the result to a specified number of " +
	"decimal places. Uses precise decimal arithmetic suitable for accounting and tax calculations. " +
	"Rounding uses the 'round half away from zero' strategy (equivalent to Excel ROUND)."

// SumTool returns the discovery entry for the sum tool.
func SumTool() mcp.Tool {
	return mcp.NewTool(SumToolName,
		mcp.WithDescription(sumDescription),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("Array of signed decimal numbers to sum (e.g. [1.00, -2.50, 3.89])"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithNumber("decimalPlaces",
			mcp.Required(),
			mcp.Description("Number of decimal places to round the result to (e.g. 2 for 2 decimal places)"),
		),
	)
}

// SumHandler exposes the sum tool.
type SumHandler struct {
	validator decimalsum.Validator
	log       zerolog.Logger
}

func NewSumHandler(log zerolog.Logger, v decimalsum.Validator) *SumHandler {
	return &SumHandler{validator: v, log: log}
}

// RegisterTools registers the sum tool on the MCP server.
func (sh *SumHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(SumTool(), sh.handleSum)
	return nil
}

// Tools lists what RegisterTools adds.
func (sh *SumHandler) Tools() []mcp.Tool {
	return []mcp.Tool{SumTool()}
}

func (sh *SumHandler) handleSum(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()
	callID := uuid.NewString()

	in, err := sh.validator.Validate(req.GetArguments())
	if err != nil {
		kind := "unknown"
		var verr *decimalsum.ValidationError
		if errors.As(err, &verr) {
			kind = verr.Kind.String()
		}
		metrics.ObserveRejection(kind)
		metrics.ObserveCall(SumToolName, metrics.OutcomeRejected, started)
		sh.log.Debug().
			Str("call_id", callID).
			Str("tool", SumToolName).
			Str("kind", kind).
			Str("reason", err.Error()).
			Msg("tool call rejected")
		return errorResult(err), nil
	}

	total := in.Total()
	metrics.ObserveCall(SumToolName, metrics.OutcomeOK, started)
	sh.log.Debug().
		Str("call_id", callID).
		Str("tool", SumToolName).
		Int("values", len(in.Values())).
		Int("decimal_places", in.DecimalPlaces()).
		Str("result", total).
		Dur("elapsed", time.Since(started)).
		Msg("tool call completed")

	return mcp.NewToolResultText(total), nil
}
