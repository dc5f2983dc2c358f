package docstore

import (
	"context"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	expires := time.Now().Add(time.Hour).Unix()
	if err := s.SetAccessToken(ctx, "at-1", "cid", "uid", expires, "read"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}

	token, err := s.GetAccessToken(ctx, "at-1")
	if err != nil {
		t.Fatalf("GetAccessToken failed: %v", err)
	}
	if token == nil {
		t.Fatal("Expected token record, got nil")
	}
	if token.AccessToken != "at-1" || token.ClientID != "cid" || token.UserID != "uid" {
		t.Errorf("Identity fields mismatch: %+v", token)
	}
	if token.Expires != expires {
		t.Errorf("Expires = %d, want %d", token.Expires, expires)
	}
	if token.Scope != "read" {
		t.Errorf("Scope = %q, want %q", token.Scope, "read")
	}
}

func TestAccessTokenOptionalScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SetAccessToken(ctx, "at-1", "cid", "uid", time.Now().Unix(), ""); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}

	token, err := s.GetAccessToken(ctx, "at-1")
	if err != nil {
		t.Fatalf("GetAccessToken failed: %v", err)
	}
	if token.Scope != "" {
		t.Errorf("Scope = %q, want empty string", token.Scope)
	}
}

func TestGetAccessTokenNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	token, err := s.GetAccessToken(ctx, "absent")
	if err != nil {
		t.Fatalf("GetAccessToken should not error on absent token: %v", err)
	}
	if token != nil {
		t.Errorf("Expected nil for absent token, got %+v", token)
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	expires := time.Now().Add(time.Hour).Unix()
	if err := s.SetRefreshToken(ctx, "tok1", "cid", "uid", expires, "read write"); err != nil {
		t.Fatalf("SetRefreshToken failed: %v", err)
	}

	token, err := s.GetRefreshToken(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetRefreshToken failed: %v", err)
	}
	if token == nil {
		t.Fatal("Expected token record, got nil")
	}
	if token.RefreshToken != "tok1" {
		t.Errorf("RefreshToken = %q, want %q", token.RefreshToken, "tok1")
	}
	if token.ClientID != "cid" || token.UserID != "uid" {
		t.Errorf("Identity fields mismatch: %+v", token)
	}
	if token.Expires != expires {
		t.Errorf("Expires = %d, want %d", token.Expires, expires)
	}
	if token.Scope != "read write" {
		t.Errorf("Scope = %q, want %q", token.Scope, "read write")
	}

	if err := s.UnsetRefreshToken(ctx, "tok1"); err != nil {
		t.Fatalf("UnsetRefreshToken failed: %v", err)
	}

	token, err = s.GetRefreshToken(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetRefreshToken failed: %v", err)
	}
	if token != nil {
		t.Errorf("Expected nil after unset, got %+v", token)
	}
}

func TestGetRefreshTokenNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	token, err := s.GetRefreshToken(ctx, "absent")
	if err != nil {
		t.Fatalf("GetRefreshToken should not error on absent token: %v", err)
	}
	if token != nil {
		t.Errorf("Expected nil for absent token, got %+v", token)
	}
}
