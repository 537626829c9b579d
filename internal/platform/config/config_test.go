package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mealtrack/internal/platform/config"
	apperrors "mealtrack/internal/platform/errors"
)

func TestNewUsesDefaultsWithoutFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MEALTRACK_BASE_URL", "")
	t.Setenv("MEALTRACK_TIMEOUT", "")
	t.Setenv("MEALTRACK_LOG_LEVEL", "")
	t.Setenv("MEALTRACK_RECONCILE_TOTALS", "")

	cfg, err := config.New(home)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != config.DefaultBaseURL || cfg.Timeout != config.DefaultTimeout || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join(home, "mealtrack.db") || cfg.JournalDir != filepath.Join(home, "journal") {
		t.Fatalf("unexpected derived paths: %+v", cfg)
	}
	if cfg.ReconcileTotals {
		t.Fatalf("reconcile should default to false")
	}
}

func TestNewLayersYAMLDotenvAndEnvironment(t *testing.T) {
	home := t.TempDir()
	yamlBody := "base_url: https://food.example.com/api/\ntimeout: 3s\nlog_level: debug\nreconcile_totals: true\njournal_dir: notes\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".env"), []byte("MEALTRACK_TIMEOUT=7s\nMEALTRACK_USER_ID=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("MEALTRACK_USER_ID", "from-env")
	t.Setenv("MEALTRACK_TOKEN", " tok ")
	t.Setenv("MEALTRACK_BASE_URL", "")
	t.Setenv("MEALTRACK_LOG_LEVEL", "")
	t.Setenv("MEALTRACK_RECONCILE_TOTALS", "")

	cfg, err := config.New(home)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != "https://food.example.com/api" {
		t.Fatalf("expected trimmed yaml base url, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 7*time.Second {
		t.Fatalf("expected dotenv timeout to win over yaml, got %s", cfg.Timeout)
	}
	if cfg.UserID != "from-env" || cfg.Token != "tok" {
		t.Fatalf("expected environment credentials, got %q %q", cfg.UserID, cfg.Token)
	}
	if !cfg.ReconcileTotals || cfg.LogLevel != "debug" {
		t.Fatalf("expected yaml values, got %+v", cfg)
	}
	if cfg.JournalDir != filepath.Join(home, "notes") {
		t.Fatalf("expected journal dir relative to home, got %s", cfg.JournalDir)
	}
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Setenv("MEALTRACK_TIMEOUT", "")
	t.Setenv("MEALTRACK_LOG_LEVEL", "")
	t.Setenv("MEALTRACK_RECONCILE_TOTALS", "")

	t.Setenv("MEALTRACK_BASE_URL", "ftp://nope")
	if _, err := config.New(t.TempDir()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid base url error, got %v", err)
	}
	t.Setenv("MEALTRACK_BASE_URL", "")

	t.Setenv("MEALTRACK_TIMEOUT", "soon")
	if _, err := config.New(t.TempDir()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid timeout error, got %v", err)
	}
	t.Setenv("MEALTRACK_TIMEOUT", "")

	t.Setenv("MEALTRACK_LOG_LEVEL", "loud")
	if _, err := config.New(t.TempDir()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid log level error, got %v", err)
	}

	if _, err := config.New(""); err == nil {
		t.Fatalf("expected missing home error")
	}
}
