package handlers

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callSum(t *testing.T, sh *SumHandler, args any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: SumToolName, Arguments: args}}
	res, err := sh.handleSum(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestSumTool_Success(t *testing.T) {
	sh := NewSumHandler(zerolog.Nop(), decimalsum.Validator{})

	cases := []struct {
		args map[string]any
		want string
	}{
		{map[string]any{"values": []any{1.5, 2.5, 3.0}, "decimalPlaces": float64(2)}, "7.00"},
		{map[string]any{"values": []any{10.0, -3.5, -2.5}, "decimalPlaces": float64(2)}, "4.00"},
		{map[string]any{"values": []any{}, "decimalPlaces": float64(2)}, "0.00"},
		{map[string]any{"values": []any{1.7, 2.3}, "decimalPlaces": float64(0)}, "4"},
		{map[string]any{"values": []any{42.123}, "decimalPlaces": float64(2)}, "42.12"},
		{map[string]any{"values": []any{2.125}, "decimalPlaces": float64(2)}, "2.13"},
		{map[string]any{"values": []any{-2.125}, "decimalPlaces": float64(2)}, "-2.13"},
	}
	for _, tc := range cases {
		res := callSum(t, sh, tc.args)
		assert.False(t, res.IsError)
		assert.Equal(t, tc.want, text(t, res))
	}
}

func TestSumTool_Rejections(t *testing.T) {
	sh := NewSumHandler(zerolog.Nop(), decimalsum.Validator{})

	cases := []struct {
		name string
		args any
		want string
	}{
		{"non-array values", map[string]any{"values": "not-array", "decimalPlaces": float64(2)},
			"Error: 'values' must be an array of numbers."},
		{"bad element", map[string]any{"values": []any{1.0, "two", 3.0}, "decimalPlaces": float64(2)},
			"Error: 'values[1]' must be a finite number. Received: two"},
		{"negative precision", map[string]any{"values": []any{1.0}, "decimalPlaces": float64(-1)},
			"Error: 'decimalPlaces' must be a non-negative integer."},
		{"both wrong reports values", map[string]any{"values": 5.0, "decimalPlaces": "x"},
			"Error: 'values' must be an array of numbers."},
		{"missing arguments", nil, "Error: 'values' must be an array of numbers."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := callSum(t, sh, tc.args)
			assert.True(t, res.IsError)
			assert.Equal(t, tc.want, text(t, res))
		})
	}
}

func TestSumTool_HonorsPrecisionCeiling(t *testing.T) {
	sh := NewSumHandler(zerolog.Nop(), decimalsum.Validator{MaxDecimalPlaces: 3})
	res := callSum(t, sh, map[string]any{"values": []any{1.0}, "decimalPlaces": float64(4)})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: 'decimalPlaces' must be a non-negative integer no greater than 3.", text(t, res))
}

func TestSumTool_Schema(t *testing.T) {
	tool := SumTool()
	assert.Equal(t, "sum", tool.Name)
	assert.Contains(t, tool.Description, "round half away from zero")
	assert.Contains(t, tool.Description, "precise decimal arithmetic")
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.Equal(t, []string{"values", "decimalPlaces"}, tool.InputSchema.Required)

	values, ok := tool.InputSchema.Properties["values"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", values["type"])
	assert.Equal(t, map[string]any{"type": "number"}, values["items"])

	places, ok := tool.InputSchema.Properties["decimalPlaces"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", places["type"])
}

func TestSumHandler_RegisterTools(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))
	sh := NewSumHandler(zerolog.Nop(), decimalsum.Validator{})
	require.NoError(t, sh.RegisterTools(s))

	tools := sh.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, SumToolName, tools[0].Name)
}

func TestUnknownToolResult(t *testing.T) {
	res := UnknownToolResult("multiply")
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "Error: Unknown tool 'multiply'.", text(t, res))
}
