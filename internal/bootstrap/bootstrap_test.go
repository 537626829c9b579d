package bootstrap

import (
	"context"
	"errors"
	"testing"

	"mealtrack/internal/platform/config"
	apperrors "mealtrack/internal/platform/errors"
	"mealtrack/internal/platform/logging"
)

func TestWireBuildsHandlersAgainstHome(t *testing.T) {
	t.Setenv("MEALTRACK_USER_ID", "")
	t.Setenv("MEALTRACK_TOKEN", "")
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := wire(cfg, logging.Discard(), nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	defer func() { _ = app.Close() }()

	if _, err := app.AccountCLI.Set(context.Background(), "u1", "opaque-token"); err != nil {
		t.Fatalf("auth set: %v", err)
	}
	status, err := app.AccountCLI.Show(context.Background())
	if err != nil || status.UserID != "u1" || !status.Authenticated {
		t.Fatalf("unexpected status %+v err=%v", status, err)
	}
	if _, err := app.FoodCLI.List(context.Background(), true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("empty cache should report not found, got %v", err)
	}
	if err := app.FoodCLI.ClearCache(context.Background()); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
}

func TestRunTUIRequiresCredentials(t *testing.T) {
	t.Setenv("MEALTRACK_USER_ID", "")
	t.Setenv("MEALTRACK_TOKEN", "")
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := wire(cfg, logging.Discard(), nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	defer func() { _ = app.Close() }()
	if err := RunTUI(app); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}
