package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/roster/internal/core/config"
	"github.com/hay-kot/roster/internal/roster"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	BaseURL    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// App is the page and its components, built in the Before hook
	App *roster.App
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return config.DefaultPath()
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/roster/roster.log
// On Linux: $XDG_STATE_HOME/roster/roster.log (defaults to ~/.local/state/roster/roster.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "roster", "roster.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "roster", "roster.log")
	}

	return filepath.Join(home, ".local", "state", "roster", "roster.log")
}
