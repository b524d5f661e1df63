package commands

import (
	"fmt"
	"strings"
)

func init() {
	Register(&Command{
		Name:        "help",
		Aliases:     []string{"-h", "--help"},
		Description: "Show help for a command",
		Run:         RunHelp,
	})
}

// RunHelp executes the help command with parsed arguments.
func RunHelp(args []string) error {
	if len(args) == 0 {
		return ShowUsage()
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	cmd, ok := Get(name)
	if !ok {
		return fmt.Errorf("unknown help topic: %s", name)
	}
	fmt.Printf("%s - %s\n\nRun 'codescribe %s --help' for the full flag list.\n", cmd.Name, cmd.Description, cmd.Name)
	return nil
}

// ShowUsage displays the main usage message.
func ShowUsage() error {
	fmt.Print(`codescribe - AI-powered source code documentation

COMMANDS
  document   Generate documentation for a file or directory
  providers  List available AI providers
  languages  List supported languages and extensions
  serve      Start the HTTP documentation API
  help       Show help for a command
  version    Show version information

EXAMPLES
  codescribe document -p src/app.py                 # Document one file
  codescribe document -p src/ -r                    # Document a tree
  codescribe document -p src/ -o html -f docs.html  # Export HTML to a file
  codescribe document -p src/app.py -o inline       # Print docstrings inline
  codescribe document -p src/app.py --dry-run       # List elements only
  codescribe document -p src/ --provider ollama     # Use a local model
  codescribe serve --port 8000                      # Start the API server

Run 'codescribe document --help' for the full flag list.
`)
	return nil
}
