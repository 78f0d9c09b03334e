// Package main wires the pokedex CLI together.
package main

import (
	"fmt"
	"os"

	"github.com/apimgr/pokedex/src/paths"
)

// InitCLI prepares the environment before any command runs
func InitCLI() error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}
	return nil
}

// setupLogging runs once the config is loaded. A log file that cannot be
// opened is not fatal; logging falls back to stderr.
func setupLogging() error {
	if err := InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize log file: %v\n", err)
	}
	return nil
}
