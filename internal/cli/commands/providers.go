package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/llm"
)

func init() {
	Register(&Command{
		Name:        "providers",
		Description: "List available AI providers",
		Run:         RunProviders,
	})
}

// RunProviders prints provider metadata: description, credential
// requirement and known models.
func RunProviders(args []string) error {
	fs := flag.NewFlagSet("providers", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	providers := llm.Providers()
	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("Available AI providers:")
	for _, id := range ids {
		info := providers[id]
		keyNote := "no API key needed"
		if info.RequiresAPIKey {
			keyNote = "API key required"
		}
		fmt.Printf("\n  %s - %s (%s)\n", id, info.Name, keyNote)
		fmt.Printf("    %s\n", info.Description)
		fmt.Printf("    Models: %s\n", strings.Join(info.Models, ", "))
	}
	return nil
}
