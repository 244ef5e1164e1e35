// Package main is the entry point for the companionctl admin CLI.
package main

import (
	"os"

	"github.com/finance-tracker/companion/cmd/companionctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
