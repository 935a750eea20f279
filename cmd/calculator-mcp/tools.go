package main

import (
	"encoding/json"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mycelian/calculator-mcp/internal/config"
	"github.com/mycelian/calculator-mcp/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tools/list payload served by the MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			s, err := mcp.NewServer(cfg, zerolog.Nop())
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(mcpgo.ListToolsResult{Tools: s.Tools()}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal tools: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
