package domain

import (
	"testing"
	"time"
)

func TestNormalizeToken(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"abc":              "abc",
		"  abc \n":         "abc",
		"Bearer abc":       "abc",
		"bearer   abc":     "abc",
		"BEARER abc.def.g": "abc.def.g",
		"Bearerabc":        "Bearerabc",
	}
	for in, want := range cases {
		if got := NormalizeToken(in); got != want {
			t.Fatalf("NormalizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClaimsExpired(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if (Claims{}).Expired(now) {
		t.Fatalf("claims without exp never expire")
	}
	if !(Claims{HasExpiry: true, ExpiresAt: now}).Expired(now) {
		t.Fatalf("exp equal to now should be expired")
	}
	if (Claims{HasExpiry: true, ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("future exp should be valid")
	}
}

func TestPreviewHidesMiddle(t *testing.T) {
	t.Parallel()
	if got := Preview("eyJhbGciOiJIUzI1NiJ9.payload.sig1"); got != "eyJhbG…sig1" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := Preview("short"); got != "*****" {
		t.Fatalf("short tokens should be masked, got %q", got)
	}
}
