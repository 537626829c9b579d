package domain

import (
	"strings"
	"time"
)

const SchemaVersion = 1

// Credentials are what the backend's login handed out: the user's id and the
// bearer token sent with every food request.
type Credentials struct {
	SchemaVersion int       `json:"schema_version"`
	UserID        string    `json:"user_id"`
	Token         string    `json:"token"`
	SavedAt       time.Time `json:"saved_at"`
}

func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.UserID) != "" && strings.TrimSpace(c.Token) != ""
}

// Claims is the subset of the token payload the client relies on.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
	HasExpiry bool
}

func (c Claims) Expired(now time.Time) bool {
	return c.HasExpiry && !now.Before(c.ExpiresAt)
}

// NormalizeToken strips surrounding space and a pasted "Bearer " prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// Preview shows enough of a token to recognise it in `auth show`.
func Preview(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 10 {
		return strings.Repeat("*", len(token))
	}
	return token[:6] + "…" + token[len(token)-4:]
}
