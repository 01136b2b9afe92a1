package tui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ajramos/kbchat-tui/internal/config"
)

// initLogger initializes file logger under ~/.config/kbchat-tui/kbchat-tui.log
// if possible, honoring an explicit log_file override from the config
func (a *App) initLogger() {
	if a.logger != nil && a.logFile != nil {
		return
	}
	lf := a.Config.LogFile
	if lf == "" {
		lf = filepath.Join(config.DefaultConfigDir(), "kbchat-tui.log")
	} else {
		lf = config.ExpandPath(lf)
	}
	if err := os.MkdirAll(filepath.Dir(lf), 0o755); err != nil {
		return
	}
	if f, err := os.OpenFile(lf, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		a.logFile = f
		a.logger = log.New(f, "[kbchat-tui] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// closeLogger closes the log file if opened
func (a *App) closeLogger() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
