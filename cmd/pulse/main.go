package main

import (
	"os"

	"github.com/wonny/tickerpulse/cmd/pulse/commands"
)

// main is the entry point for the TickerPulse CLI
// ⭐ Unified CLI entry point: go run ./cmd/pulse [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
