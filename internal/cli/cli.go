// Package cli dispatches command-line invocations to the registered
// commands.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/codescribe-ai/codescribe/internal/cli/commands"
)

// Run executes the command named by the first argument. A .env file in the
// working directory is loaded first so API keys can live outside the shell
// environment; a missing .env is not an error.
func Run(args []string) error {
	_ = godotenv.Load()

	if len(args) == 0 {
		return commands.ShowUsage()
	}

	cmd, ok := commands.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown command: %s\nRun 'codescribe help' for usage", args[0])
	}
	return cmd.Run(args[1:])
}
