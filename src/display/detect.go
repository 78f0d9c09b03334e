package display

import (
	"os"

	"golang.org/x/term"
)

// Package-level function variables for testing
// These can be replaced in tests to mock system calls
var (
	isTerminalFunc = term.IsTerminal
	getSizeFunc    = term.GetSize
)

// Env represents the detected terminal environment
type Env struct {
	IsTerminal bool // output is a TTY
	Cols       int  // Terminal columns (0 if no terminal)
	Rows       int  // Terminal rows (0 if no terminal)
	HasColor   bool // Terminal supports colors
}

// Detect inspects the terminal behind f
func Detect(f *os.File) Env {
	var env Env

	fd := int(f.Fd())
	env.IsTerminal = isTerminalFunc(fd)
	if env.IsTerminal {
		cols, rows, err := getSizeFunc(fd)
		if err == nil {
			env.Cols = cols
			env.Rows = rows
		}
	}

	env.HasColor = detectColorSupport(env.IsTerminal)
	return env
}

// detectColorSupport checks if the output supports colors
func detectColorSupport(tty bool) bool {
	// Check NO_COLOR environment variable (standard)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// FORCE_COLOR applies to pipes too so CI logs can opt in
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !tty {
		return false
	}

	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return false
	}

	// Most modern terminals support color
	return true
}

// TerminalSize returns the terminal size or default values
func (e Env) TerminalSize() (cols, rows int) {
	if e.Cols > 0 && e.Rows > 0 {
		return e.Cols, e.Rows
	}
	// Default terminal size
	return 80, 24
}
