package main

import (
	"fmt"
	"os"

	"github.com/codescribe-ai/codescribe/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "codescribe: %v\n", err)
		os.Exit(1)
	}
}
