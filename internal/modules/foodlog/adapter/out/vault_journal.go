package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mealtrack/internal/modules/foodlog/domain"
	foodlogout "mealtrack/internal/modules/foodlog/port/out"
	"mealtrack/internal/platform/clock"
	"mealtrack/internal/platform/markdown"
	"mealtrack/internal/platform/numfmt"
)

const (
	journalSchemaVersion = 1
	entriesBlock         = "entries"
	defaultJournalBody   = "## Notes\n"
)

// VaultJournal keeps one markdown note per day. Frontmatter carries the totals;
// the entry list lives in a managed block so hand-written notes survive
// re-exports.
type VaultJournal struct {
	dir   string
	clock clock.Clock
}

func NewVaultJournal(dir string, clk clock.Clock) foodlogout.JournalWriter {
	return &VaultJournal{dir: dir, clock: clk}
}

func (j *VaultJournal) Write(_ context.Context, day domain.Day) (string, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	date := day.Date.Format("2006-01-02")
	path := filepath.Join(j.dir, date+".md")

	body := defaultJournalBody
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		note, parseErr := markdown.Parse(string(existing))
		if parseErr != nil {
			return "", fmt.Errorf("parse %s: %w", path, parseErr)
		}
		if strings.TrimSpace(note.Body) != "" {
			body = note.Body
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	note := markdown.Note{
		Meta: map[string]any{
			"schema_version": journalSchemaVersion,
			"date":           date,
			"entries":        len(day.Entries),
			"calories":       day.Totals.Calories,
			"protein":        day.Totals.Protein,
			"carbohydrates":  day.Totals.Carbohydrates,
			"fat":            day.Totals.Fat,
			"exported_at":    j.clock.Now().Format(time.RFC3339),
		},
		Body: markdown.SetBlock(body, entriesBlock, renderEntries(day.Entries)),
	}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func renderEntries(entries []domain.Entry) string {
	if len(entries) == 0 {
		return "_You've eaten nothing today..._"
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- **%s** (%s) × %s: %s kcal, %sg protein, %sg carbs, %sg fat\n",
			e.FoodName, e.MealType, numfmt.Format(e.Servings),
			numfmt.Format(e.Calories), numfmt.Format(e.Protein),
			numfmt.Format(e.Carbohydrates), numfmt.Format(e.Fat))
	}
	return sb.String()
}
