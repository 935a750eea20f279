package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			log.Error().Err(err).Msg("calculator-mcp exited with error")
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
