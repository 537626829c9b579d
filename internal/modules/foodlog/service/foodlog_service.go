package service

import (
	"context"
	"errors"

	hclog "github.com/hashicorp/go-hclog"

	"mealtrack/internal/modules/foodlog/domain"
	foodlogout "mealtrack/internal/modules/foodlog/port/out"
	"mealtrack/internal/platform/clock"
	apperrors "mealtrack/internal/platform/errors"
)

type Options struct {
	// ReconcileTotals replaces the incremental totals with the sum over the
	// list returned by the add call.
	ReconcileTotals bool
}

type FoodLogService struct {
	clock      clock.Clock
	log        hclog.Logger
	principals foodlogout.PrincipalSource
	gateway    foodlogout.FoodGateway
	cache      foodlogout.EntryCache
	journal    foodlogout.JournalWriter
	opts       Options
}

func NewFoodLogService(
	clock clock.Clock,
	log hclog.Logger,
	principals foodlogout.PrincipalSource,
	gateway foodlogout.FoodGateway,
	cache foodlogout.EntryCache,
	journal foodlogout.JournalWriter,
	opts Options,
) *FoodLogService {
	return &FoodLogService{
		clock:      clock,
		log:        log.Named("foodlog"),
		principals: principals,
		gateway:    gateway,
		cache:      cache,
		journal:    journal,
		opts:       opts,
	}
}

// LoadDay fetches today's entries and derives the totals from them.
func (s *FoodLogService) LoadDay(ctx context.Context) (domain.Day, string, error) {
	principal, err := s.principals.Current(ctx)
	if err != nil {
		s.log.Error("load foods failed", "op", "principal", "error", err)
		return domain.Day{}, "", err
	}
	entries, err := s.gateway.ListFoods(ctx, principal)
	if err != nil {
		s.log.Error("load foods failed", "op", "list", "user_id", principal.UserID, "error", err)
		return domain.Day{}, principal.UserID, err
	}
	now := s.clock.Now()
	s.remember(ctx, principal.UserID, entries)
	s.log.Debug("loaded foods", "user_id", principal.UserID, "count", len(entries))
	return domain.NewDay(now, entries), principal.UserID, nil
}

type AddResult struct {
	Entries    []domain.Entry
	Delta      domain.Totals
	Totals     domain.Totals
	Reconciled bool
	Drift      bool
}

// Add validates the draft before touching the network. On success the totals
// advance by the submitted entry's contribution; the list the server returns
// only replaces the displayed entries unless reconciliation is enabled.
func (s *FoodLogService) Add(ctx context.Context, draft domain.Draft, prior domain.Totals) (AddResult, error) {
	entry, err := draft.Entry()
	if err != nil {
		return AddResult{}, err
	}
	principal, err := s.principals.Current(ctx)
	if err != nil {
		s.log.Error("add food failed", "op", "principal", "error", err)
		return AddResult{}, err
	}
	entries, err := s.gateway.AddFood(ctx, principal, draft.Submission())
	if err != nil {
		s.log.Error("add food failed", "op", "add", "user_id", principal.UserID, "food", draft.FoodName, "error", err)
		return AddResult{}, err
	}

	delta := domain.Contribution(entry)
	result := AddResult{
		Entries: entries,
		Delta:   delta,
		Totals:  prior.Plus(delta),
	}
	listTotals := domain.TotalsOf(entries)
	if !result.Totals.Matches(listTotals) {
		result.Drift = true
		s.log.Warn("totals drift after add",
			"user_id", principal.UserID,
			"incremental_calories", result.Totals.Calories,
			"server_calories", listTotals.Calories,
			"reconcile", s.opts.ReconcileTotals,
		)
	}
	if s.opts.ReconcileTotals {
		result.Totals = listTotals
		result.Reconciled = true
	}
	s.remember(ctx, principal.UserID, entries)
	s.log.Info("added food", "user_id", principal.UserID, "food", draft.FoodName, "meal", string(draft.MealType))
	return result, nil
}

// CachedDay reads the last fetched list without contacting the backend.
func (s *FoodLogService) CachedDay(ctx context.Context) (domain.Day, string, error) {
	principal, err := s.principals.Current(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrTokenExpired) {
		return domain.Day{}, "", err
	}
	if principal.UserID == "" {
		return domain.Day{}, "", apperrors.ErrUnauthenticated
	}
	entries, fetchedAt, err := s.cache.List(ctx, principal.UserID)
	if err != nil {
		return domain.Day{}, principal.UserID, err
	}
	return domain.NewDay(fetchedAt, entries), principal.UserID, nil
}

func (s *FoodLogService) ClearCache(ctx context.Context) error {
	return s.cache.Reset(ctx)
}

// ExportJournal writes today's freshly loaded day to the journal.
func (s *FoodLogService) ExportJournal(ctx context.Context) (domain.Day, string, error) {
	day, _, err := s.LoadDay(ctx)
	if err != nil {
		return domain.Day{}, "", err
	}
	path, err := s.journal.Write(ctx, day)
	if err != nil {
		s.log.Error("journal export failed", "error", err)
		return domain.Day{}, "", err
	}
	return day, path, nil
}

func (s *FoodLogService) remember(ctx context.Context, userID string, entries []domain.Entry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Replace(ctx, userID, entries, s.clock.Now()); err != nil {
		s.log.Warn("cache update failed", "user_id", userID, "error", err)
	}
}
