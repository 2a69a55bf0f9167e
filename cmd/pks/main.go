// Package main is the entry point for the pks CLI tool.
package main

import (
	"os"

	"github.com/packsmith/packsmith/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
