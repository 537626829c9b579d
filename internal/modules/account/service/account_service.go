package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"mealtrack/internal/modules/account/domain"
	accountout "mealtrack/internal/modules/account/port/out"
	"mealtrack/internal/platform/clock"
	apperrors "mealtrack/internal/platform/errors"
)

const (
	SourceNone  = "none"
	SourceFile  = "file"
	SourceEnv   = "env"
	SourceMixed = "file+env"
)

// Overrides come from MEALTRACK_USER_ID / MEALTRACK_TOKEN and win over the
// stored credentials field by field.
type Overrides struct {
	UserID string
	Token  string
}

type AccountService struct {
	clock     clock.Clock
	log       hclog.Logger
	store     accountout.CredentialStore
	inspector accountout.TokenInspector
	overrides Overrides
}

func NewAccountService(clock clock.Clock, log hclog.Logger, store accountout.CredentialStore, inspector accountout.TokenInspector, overrides Overrides) *AccountService {
	return &AccountService{
		clock:     clock,
		log:       log.Named("account"),
		store:     store,
		inspector: inspector,
		overrides: Overrides{UserID: strings.TrimSpace(overrides.UserID), Token: domain.NormalizeToken(overrides.Token)},
	}
}

// Set stores credentials. An empty user id is taken from the token's claims.
func (s *AccountService) Set(ctx context.Context, userID, token string) (domain.Credentials, domain.Claims, error) {
	token = domain.NormalizeToken(token)
	userID = strings.TrimSpace(userID)
	if token == "" {
		return domain.Credentials{}, domain.Claims{}, fmt.Errorf("token is required: %w", apperrors.ErrInvalidInput)
	}
	claims, err := s.inspector.Inspect(token)
	if err != nil {
		if userID == "" {
			return domain.Credentials{}, domain.Claims{}, fmt.Errorf("user id is required for opaque tokens: %w", err)
		}
		s.log.Debug("token is not a readable jwt", "error", err)
		claims = domain.Claims{}
	}
	if userID == "" {
		userID = claims.UserID
	}
	if userID == "" {
		return domain.Credentials{}, domain.Claims{}, fmt.Errorf("token carries no user id; pass one explicitly: %w", apperrors.ErrInvalidInput)
	}
	if claims.Expired(s.clock.Now()) {
		return domain.Credentials{}, claims, fmt.Errorf("token expired at %s: %w", claims.ExpiresAt.Format("2006-01-02 15:04"), apperrors.ErrTokenExpired)
	}

	creds := domain.Credentials{
		SchemaVersion: domain.SchemaVersion,
		UserID:        userID,
		Token:         token,
		SavedAt:       s.clock.Now().UTC(),
	}
	if err := s.store.Save(ctx, creds); err != nil {
		return domain.Credentials{}, domain.Claims{}, err
	}
	s.log.Info("credentials saved", "user_id", userID, "has_expiry", claims.HasExpiry)
	return creds, claims, nil
}

// Resolve merges stored credentials with overrides and reports where they
// came from.
func (s *AccountService) Resolve(ctx context.Context) (domain.Credentials, string, error) {
	stored, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Credentials{}, SourceNone, err
	}
	creds := stored
	fromFile := stored.UserID != "" || stored.Token != ""
	fromEnv := false
	if s.overrides.UserID != "" {
		creds.UserID = s.overrides.UserID
		fromEnv = true
	}
	if s.overrides.Token != "" {
		creds.Token = s.overrides.Token
		fromEnv = true
	}
	switch {
	case fromFile && fromEnv:
		return creds, SourceMixed, nil
	case fromEnv:
		return creds, SourceEnv, nil
	case fromFile:
		return creds, SourceFile, nil
	}
	return creds, SourceNone, nil
}

// Current yields the principal for backend calls. An expired token is
// returned together with ErrTokenExpired so offline reads can still key the
// cache by user.
func (s *AccountService) Current(ctx context.Context) (domain.Credentials, error) {
	creds, _, err := s.Resolve(ctx)
	if err != nil {
		return domain.Credentials{}, err
	}
	if !creds.Complete() {
		return creds, fmt.Errorf("run `mealtrack auth set` first: %w", apperrors.ErrUnauthenticated)
	}
	claims, err := s.inspector.Inspect(creds.Token)
	if err != nil {
		return creds, nil
	}
	if claims.Expired(s.clock.Now()) {
		s.log.Warn("token expired", "user_id", creds.UserID, "expired_at", claims.ExpiresAt)
		return creds, fmt.Errorf("token expired at %s: %w", claims.ExpiresAt.Format("2006-01-02 15:04"), apperrors.ErrTokenExpired)
	}
	return creds, nil
}

func (s *AccountService) Inspect(token string) (domain.Claims, bool) {
	if token == "" {
		return domain.Claims{}, false
	}
	claims, err := s.inspector.Inspect(token)
	if err != nil {
		return domain.Claims{}, false
	}
	return claims, true
}

func (s *AccountService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("credentials cleared")
	return nil
}

func (s *AccountService) Expired(claims domain.Claims) bool {
	return claims.Expired(s.clock.Now())
}
