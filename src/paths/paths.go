// Package paths resolves the CLI's config, cache and log locations.
// Linux and macOS follow XDG-style dot directories under $HOME; Windows
// uses %APPDATA% and %LOCALAPPDATA%.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "apimgr"
	projectName = "pokedex"
)

// ConfigDir returns the CLI config directory
// Linux: ~/.config/apimgr/pokedex/
// Windows: %APPDATA%\apimgr\pokedex\
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	return filepath.Join(home(), ".config", projectOrg, projectName)
}

// CacheDir returns the directory holding cached API responses
// Linux: ~/.cache/apimgr/pokedex/
// Windows: %LOCALAPPDATA%\apimgr\pokedex\cache\
func CacheDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "cache")
	}
	return filepath.Join(home(), ".cache", projectOrg, projectName)
}

// LogDir returns the CLI log directory
// Linux: ~/.local/log/apimgr/pokedex/
// Windows: %LOCALAPPDATA%\apimgr\pokedex\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	return filepath.Join(home(), ".local", "log", projectOrg, projectName)
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yml")
}

// LogFile returns the default log file path
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// SQLiteFile returns the default database path of the sqlite cache backend
func SQLiteFile() string {
	return filepath.Join(CacheDir(), "responses.db")
}

// EnsureDirs creates the config, cache and log directories owner-only.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), CacheDir(), LogDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
		// Tighten permissions even if dir existed
		if err := os.Chmod(dir, 0700); err != nil {
			return fmt.Errorf("chmod dir %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureParent creates the parent directory of path
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// Expand replaces a leading "~/" with the home directory
func Expand(path string) string {
	if path == "~" {
		return home()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home(), path[2:])
	}
	return path
}

// ResolveConfigPath resolves the --config flag to a file path.
// Empty means the default cli.yml; relative names live in ConfigDir.
func ResolveConfigPath(configFlag string) string {
	if configFlag == "" {
		return ConfigFile()
	}

	configFlag = Expand(configFlag)
	if filepath.IsAbs(configFlag) {
		return addExtIfNeeded(configFlag)
	}
	return addExtIfNeeded(filepath.Join(ConfigDir(), configFlag))
}

// addExtIfNeeded adds a .yml extension if none was given, preferring an
// existing .yaml file.
func addExtIfNeeded(path string) string {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return path
	case "":
		if _, err := os.Stat(path + ".yml"); err == nil {
			return path + ".yml"
		}
		if _, err := os.Stat(path + ".yaml"); err == nil {
			return path + ".yaml"
		}
		return path + ".yml"
	default:
		return path
	}
}

func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}
