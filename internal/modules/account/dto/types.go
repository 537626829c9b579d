package dto

import "time"

type SetInput struct {
	UserID string
	Token  string
}

type PrincipalOutput struct {
	UserID string
	Token  string
}

type StatusOutput struct {
	UserID        string
	TokenPreview  string
	Source        string
	Authenticated bool
	HasExpiry     bool
	ExpiresAt     time.Time
	Expired       bool
}
