// Package main is the entry point for the urlmark CLI.
package main

import (
	"os"

	"github.com/urlmark/urlmark/cmd/urlmark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
