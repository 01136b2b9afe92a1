package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/derailed/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Color represents a color in the application
type Color string

// DefaultColor represents the terminal default color
const DefaultColor Color = "default"

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor || c == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// ColorsConfig defines the color palette for the TUI
type ColorsConfig struct {
	Border        Color `yaml:"border"`
	BorderFocus   Color `yaml:"borderFocus"`
	Title         Color `yaml:"title"`
	ListItem      Color `yaml:"listItem"`
	ListSelected  Color `yaml:"listSelected"`
	Message       Color `yaml:"message"`
	StatusInfo    Color `yaml:"statusInfo"`
	StatusWarning Color `yaml:"statusWarning"`
	StatusError   Color `yaml:"statusError"`
	StatusSuccess Color `yaml:"statusSuccess"`
}

// DefaultColors returns the built-in palette
func DefaultColors() *ColorsConfig {
	return &ColorsConfig{
		Border:        "#5f87af",
		BorderFocus:   "#87d7ff",
		Title:         "#d7d7af",
		ListItem:      DefaultColor,
		ListSelected:  "#87d7ff",
		Message:       DefaultColor,
		StatusInfo:    "#87d7ff",
		StatusWarning: "#ffd75f",
		StatusError:   "#ff5f5f",
		StatusSuccess: "#87ff87",
	}
}

// ThemeLoader handles loading themes from YAML files
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{themesDir: themesDir}
}

// LoadThemeFromFile loads a theme from a YAML file, trying the themes
// directory first and then the path as given
func (tl *ThemeLoader) LoadThemeFromFile(filename string) (*ColorsConfig, error) {
	path := filepath.Join(tl.themesDir, filename)
	if !fileExists(path) {
		path = filename
		if !fileExists(path) {
			return nil, fmt.Errorf("theme file not found: %s", filename)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var theme struct {
		KbchatTUI *ColorsConfig `yaml:"kbchatTUI"`
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if theme.KbchatTUI == nil {
		return nil, fmt.Errorf("invalid theme file: missing kbchatTUI section")
	}

	return theme.KbchatTUI, nil
}

// ListAvailableThemes returns the theme files present in the themes directory
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		return nil, err
	}

	var themes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			themes = append(themes, name)
		}
	}
	return themes, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
