package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration for the Keybase chat TUI
type Config struct {
	// Debug enables verbose logging to the log file
	Debug bool `json:"debug"`

	// MaxRecent limits the conversation list to the N most recently active
	// conversations (0 = unlimited)
	MaxRecent int `json:"max_recent"`

	// HideNames lists case-insensitive substrings; conversations whose
	// display name contains one are excluded from the list
	HideNames []string `json:"hide_names"`

	// ReadAtLeast is the number of prior messages loaded when a chat opens
	ReadAtLeast int `json:"read_at_least"`

	// DownloadPath is the directory attachments are downloaded into
	DownloadPath string `json:"download_path"`

	// PollInterval is the delay between background message fetches
	// (duration string, e.g. "5s")
	PollInterval string `json:"poll_interval"`

	// KeybaseBinary overrides the keybase executable name/path
	KeybaseBinary string `json:"keybase_binary"`

	// HistoryPath overrides the input-history database location
	// (empty = <config dir>/history.sqlite3)
	HistoryPath string `json:"history_path"`

	// Theme is the active theme file name (empty = built-in colors)
	Theme string `json:"theme"`

	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Logging
	LogFile string `json:"log_file"`
}

// KeyBindings defines keyboard shortcuts for the TUI
type KeyBindings struct {
	Quit    string `json:"quit"`
	Refresh string `json:"refresh"`
	Help    string `json:"help"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		MaxRecent:    0,
		HideNames:    []string{},
		ReadAtLeast:  10,
		DownloadPath: "./downloads",
		PollInterval: "5s",
		Keys:         DefaultKeyBindings(),
		LogFile:      "",
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:    "q",
		Refresh: "R",
		Help:    "?",
	}
}

// LoadConfig loads the configuration from a JSON file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.ReadAtLeast <= 0 {
		cfg.ReadAtLeast = 10
	}
	if strings.TrimSpace(cfg.DownloadPath) == "" {
		cfg.DownloadPath = "./downloads"
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetPollInterval returns the parsed poll interval, defaulting to 5 seconds
func (c *Config) GetPollInterval() time.Duration {
	if c.PollInterval != "" {
		if d, err := time.ParseDuration(c.PollInterval); err == nil && d > 0 {
			return d
		}
	}
	return 5 * time.Second
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultConfigDir returns the directory holding config, themes and logs
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "kbchat-tui")
}

// DefaultThemesDir returns the directory custom themes are loaded from
func DefaultThemesDir() string {
	return filepath.Join(DefaultConfigDir(), "themes")
}

// DefaultHistoryPath returns the default input-history database path
func DefaultHistoryPath() string {
	return filepath.Join(DefaultConfigDir(), "history.sqlite3")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}
