package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mealtrack/internal/modules/foodlog/domain"
	foodlogout "mealtrack/internal/modules/foodlog/port/out"
	apperrors "mealtrack/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteEntryCache struct {
	db *sql.DB
}

func NewSQLiteEntryCache(dbPath string) (foodlogout.EntryCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteEntryCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteEntryCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteEntryCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS food_fetches (
  user_id TEXT PRIMARY KEY,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS food_entries (
  user_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  hash TEXT NOT NULL,
  food_name TEXT NOT NULL,
  calories REAL NOT NULL,
  protein REAL NOT NULL,
  carbohydrates REAL NOT NULL,
  fat REAL NOT NULL,
  servings REAL NOT NULL,
  meal_type TEXT NOT NULL,
  PRIMARY KEY (user_id, position)
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create cache tables: %w", err)
	}
	return nil
}

// Replace swaps the user's cached list in one transaction.
func (c *SQLiteEntryCache) Replace(ctx context.Context, userID string, entries []domain.Entry, fetchedAt time.Time) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM food_entries WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cached entries: %w", err)
	}
	const insert = `
INSERT INTO food_entries (user_id, position, hash, food_name, calories, protein, carbohydrates, fat, servings, meal_type)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, insert,
			userID, i, e.ID, e.FoodName,
			e.Calories, e.Protein, e.Carbohydrates, e.Fat, e.Servings,
			string(e.MealType),
		); err != nil {
			return fmt.Errorf("cache entry %d: %w", i, err)
		}
	}
	const upsert = `
INSERT INTO food_fetches (user_id, fetched_at) VALUES (?, ?)
ON CONFLICT(user_id) DO UPDATE SET fetched_at=excluded.fetched_at`
	if _, err := tx.ExecContext(ctx, upsert, userID, fetchedAt.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("record fetch time: %w", err)
	}
	return tx.Commit()
}

func (c *SQLiteEntryCache) List(ctx context.Context, userID string) ([]domain.Entry, time.Time, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT fetched_at FROM food_fetches WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("no cached foods for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read fetch time: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse fetch time: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `
SELECT hash, food_name, calories, protein, carbohydrates, fat, servings, meal_type
FROM food_entries
WHERE user_id = ?
ORDER BY position`, userID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query cached entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		var meal string
		if err := rows.Scan(&e.ID, &e.FoodName, &e.Calories, &e.Protein, &e.Carbohydrates, &e.Fat, &e.Servings, &meal); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan cached entry: %w", err)
		}
		e.MealType = domain.MealType(meal)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate cached entries: %w", err)
	}
	return entries, fetchedAt, nil
}

func (c *SQLiteEntryCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM food_entries; DELETE FROM food_fetches;`); err != nil {
		return fmt.Errorf("reset cache: %w", err)
	}
	return nil
}
