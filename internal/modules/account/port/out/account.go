package out

import (
	"context"

	"mealtrack/internal/modules/account/domain"
)

type CredentialStore interface {
	Save(ctx context.Context, creds domain.Credentials) error
	// Load returns apperrors.ErrNotFound when nothing has been stored.
	Load(ctx context.Context) (domain.Credentials, error)
	Clear(ctx context.Context) error
}

// TokenInspector reads claims without verifying the signature; only the
// backend holds the signing key.
type TokenInspector interface {
	Inspect(token string) (domain.Claims, error)
}
