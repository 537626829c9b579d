// Package logging builds the hclog logger shared by every module. The TUI owns
// the terminal, so records go to a file under the mealtrack home directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"mealtrack/internal/platform/config"
)

const Name = "mealtrack"

// New opens cfg.LogPath for appending and returns a logger writing to it.
// The returned closer releases the file.
func New(cfg config.Config) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, cfg.LogLevel), f, nil
}

func NewWriter(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if level == "off" {
		lvl = hclog.Off
	}
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  lvl,
		Output: w,
	})
}

func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
