package main

// Main entry point of the application
// Executes the Cobra root command and maps failures to exit codes

import (
	"errors"
	"fmt"
	"os"

	"csvchart/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		var usage *commands.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, usage.Error())
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
