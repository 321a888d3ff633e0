package main

import (
	"fmt"
	"os"

	// Import for the side effect of adapter registration
	_ "github.com/arthur-debert/rulesync/pkg/adapters"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
