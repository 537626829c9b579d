package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAuthSetShowClear(t *testing.T) {
	t.Setenv("MEALTRACK_USER_ID", "")
	t.Setenv("MEALTRACK_TOKEN", "")
	home := t.TempDir()

	out, err := execute(t, "--home", home, "auth", "show")
	if err != nil || !strings.Contains(out, "not signed in") {
		t.Fatalf("expected not signed in, got %q err=%v", out, err)
	}
	out, err = execute(t, "--home", home, "auth", "set", "--user-id", "u1", "--token", "Bearer opaque-token-123")
	if err != nil || !strings.Contains(out, "signed in as u1") {
		t.Fatalf("auth set: %q err=%v", out, err)
	}
	out, err = execute(t, "--home", home, "auth", "show")
	if err != nil || !strings.Contains(out, "user:   u1") || !strings.Contains(out, "source: file") {
		t.Fatalf("auth show: %q err=%v", out, err)
	}
	if _, err := execute(t, "--home", home, "auth", "clear"); err != nil {
		t.Fatalf("auth clear: %v", err)
	}
}

func TestFoodAddReportsValidationMessage(t *testing.T) {
	t.Setenv("MEALTRACK_USER_ID", "u1")
	t.Setenv("MEALTRACK_TOKEN", "tok")
	home := t.TempDir()

	_, err := execute(t, "--home", home, "food", "add", "--name", "Oats", "--calories", "150",
		"--protein", "5", "--carbs", "27", "--servings", "1", "--meal", "breakfast")
	if err == nil || err.Error() != "Fat must be a number" {
		t.Fatalf("expected fat validation message, got %v", err)
	}
	_, err = execute(t, "--home", home, "food", "add", "--name", "Oats", "--calories", "150",
		"--protein", "5", "--carbs", "27", "--fat", "3", "--servings", "1")
	if err == nil || err.Error() != "Please enter all necessary fields before saving" {
		t.Fatalf("expected completeness message, got %v", err)
	}
}

func TestCacheShowWhenEmpty(t *testing.T) {
	t.Setenv("MEALTRACK_USER_ID", "u1")
	t.Setenv("MEALTRACK_TOKEN", "tok")
	out, err := execute(t, "--home", t.TempDir(), "cache", "show")
	if err != nil || !strings.Contains(out, "nothing cached yet") {
		t.Fatalf("expected empty cache, got %q err=%v", out, err)
	}
}
