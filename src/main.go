package main

import (
	"fmt"
	"os"

	"github.com/apimgr/pokedex/src/cmd"
)

func main() {
	// Directories must exist before the config, cache or log files are touched
	if err := InitCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := cmd.Execute(setupLogging)
	if err != nil && logger != nil {
		Logger().Error("command failed", "args", os.Args[1:], "error", err)
	}
	CloseLogging()
	if err != nil {
		os.Exit(1)
	}
}
