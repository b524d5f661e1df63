package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/analysis"
)

func init() {
	Register(&Command{
		Name:        "languages",
		Description: "List supported languages and extensions",
		Run:         RunLanguages,
	})
}

// RunLanguages prints the supported languages with their file extensions.
func RunLanguages(args []string) error {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry := analysis.NewRegistry()

	fmt.Println("Supported languages:")
	for _, lang := range registry.Supported() {
		fmt.Printf("  %-12s %s\n", lang, strings.Join(analysis.Extensions(lang), ", "))
	}
	return nil
}
