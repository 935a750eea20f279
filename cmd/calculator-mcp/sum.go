package main

import (
	"encoding/json"
	"fmt"

	"github.com/mycelian/calculator-mcp/internal/decimalsum"
	"github.com/spf13/cobra"
)

func newSumCmd() *cobra.Command {
	var places int
	var maxPlaces int

	cmd := &cobra.Command{
		Use:   "sum [flags] -- VALUE...",
		Short: "Sum values locally with the same rules as the sum tool",
		Example: `  calculator-mcp sum -p 2 1.5 2.5 3.0
  calculator-mcp sum -p 2 -- 10 -3.5 -2.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, len(args))
			for i, a := range args {
				values[i] = json.Number(a)
			}

			v := decimalsum.Validator{MaxDecimalPlaces: maxPlaces}
			in, err := v.Validate(map[string]any{
				"values":        values,
				"decimalPlaces": places,
			})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
				return errReported
			}

			fmt.Fprintln(cmd.OutOrStdout(), in.Total())
			return nil
		},
	}
	cmd.Flags().IntVarP(&places, "decimal-places", "p", 0, "Number of decimal places to round the result to (required)")
	cmd.Flags().IntVar(&maxPlaces, "max-decimal-places", decimalsum.DefaultMaxDecimalPlaces, "Upper bound for --decimal-places")
	_ = cmd.MarkFlagRequired("decimal-places")
	return cmd
}
