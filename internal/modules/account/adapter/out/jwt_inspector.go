package out

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"mealtrack/internal/modules/account/domain"
	accountout "mealtrack/internal/modules/account/port/out"
	apperrors "mealtrack/internal/platform/errors"
)

// Claim names the backend has used for the user's id, most specific first.
var userIDClaims = []string{"id", "_id", "userID", "userId", "sub"}

type JWTInspector struct {
	parser *jwt.Parser
}

func NewJWTInspector() accountout.TokenInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

func (i *JWTInspector) Inspect(token string) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return domain.Claims{}, fmt.Errorf("parse token: %w", errors.Join(apperrors.ErrInvalidInput, err))
	}
	out := domain.Claims{}
	for _, key := range userIDClaims {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			out.UserID = strings.TrimSpace(v)
			break
		}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return domain.Claims{}, fmt.Errorf("token exp claim: %w", errors.Join(apperrors.ErrInvalidInput, err))
	}
	if exp != nil {
		out.HasExpiry = true
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
