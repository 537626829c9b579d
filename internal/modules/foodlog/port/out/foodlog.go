package out

import (
	"context"
	"time"

	"mealtrack/internal/modules/foodlog/domain"
)

// FoodGateway is the backend that owns food entries.
type FoodGateway interface {
	ListFoods(ctx context.Context, principal domain.Principal) ([]domain.Entry, error)
	AddFood(ctx context.Context, principal domain.Principal, submission domain.Submission) ([]domain.Entry, error)
}

// PrincipalSource resolves the signed-in user. An expired token yields the
// principal together with apperrors.ErrTokenExpired.
type PrincipalSource interface {
	Current(ctx context.Context) (domain.Principal, error)
}

// EntryCache keeps the last list fetched per user for offline viewing.
type EntryCache interface {
	Replace(ctx context.Context, userID string, entries []domain.Entry, fetchedAt time.Time) error
	List(ctx context.Context, userID string) ([]domain.Entry, time.Time, error)
	Reset(ctx context.Context) error
}

type JournalWriter interface {
	Write(ctx context.Context, day domain.Day) (string, error)
}
