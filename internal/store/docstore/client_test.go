package docstore

import (
	"context"
	"testing"

	"github.com/tendant/oauth2-store/internal/domain"
)

func seedClient(t *testing.T, s *Store, client *domain.Client, secret string) {
	t.Helper()
	if err := s.SetClientDetails(context.Background(), client, secret); err != nil {
		t.Fatalf("SetClientDetails failed: %v", err)
	}
}

func TestGetClientDetails(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{
		ClientID:    "librarian",
		RedirectURI: "/receive-code",
		GrantTypes:  []string{"authorization_code"},
		UserID:      "owner",
		Scope:       "read write",
	}, "secret")

	client, err := s.GetClientDetails(ctx, "librarian")
	if err != nil {
		t.Fatalf("GetClientDetails failed: %v", err)
	}
	if client == nil {
		t.Fatal("Expected client record, got nil")
	}
	// client_id is copied from the lookup key
	if client.ClientID != "librarian" {
		t.Errorf("ClientID = %q, want %q", client.ClientID, "librarian")
	}
	if client.RedirectURI != "/receive-code" {
		t.Errorf("RedirectURI = %q, want %q", client.RedirectURI, "/receive-code")
	}
	if len(client.GrantTypes) != 1 || client.GrantTypes[0] != "authorization_code" {
		t.Errorf("GrantTypes = %v", client.GrantTypes)
	}
	if client.UserID != "owner" {
		t.Errorf("UserID = %q, want %q", client.UserID, "owner")
	}
	if client.Scope != "read write" {
		t.Errorf("Scope = %q, want %q", client.Scope, "read write")
	}
}

func TestGetClientDetailsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	client, err := s.GetClientDetails(ctx, "absent")
	if err != nil {
		t.Fatalf("GetClientDetails should not error on absent client: %v", err)
	}
	if client != nil {
		t.Errorf("Expected nil for absent client, got %+v", client)
	}
}

func TestGetClientDetailsMultipleRedirectURIs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{
		ClientID:    "multi",
		RedirectURI: "http://a/cb http://b/cb",
	}, "")

	client, err := s.GetClientDetails(ctx, "multi")
	if err != nil {
		t.Fatalf("GetClientDetails failed: %v", err)
	}
	if client.RedirectURI != "http://a/cb http://b/cb" {
		t.Errorf("RedirectURI = %q, want space-joined pair", client.RedirectURI)
	}
}

func TestGetClientScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{ClientID: "scoped", Scope: "read write"}, "")
	seedClient(t, s, &domain.Client{ClientID: "unscoped"}, "")

	scope, err := s.GetClientScope(ctx, "scoped")
	if err != nil {
		t.Fatalf("GetClientScope failed: %v", err)
	}
	if scope != "read write" {
		t.Errorf("Scope = %q, want %q", scope, "read write")
	}

	// Client with no scope yields empty string
	scope, err = s.GetClientScope(ctx, "unscoped")
	if err != nil {
		t.Fatalf("GetClientScope failed: %v", err)
	}
	if scope != "" {
		t.Errorf("Scope = %q, want empty string", scope)
	}

	// Absent client yields empty string, not an error
	scope, err = s.GetClientScope(ctx, "absent")
	if err != nil {
		t.Fatalf("GetClientScope should not error on absent client: %v", err)
	}
	if scope != "" {
		t.Errorf("Scope = %q, want empty string for absent client", scope)
	}
}

func TestCheckClientCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{
		ClientID:    "librarian",
		RedirectURI: "/receive-code",
		GrantTypes:  []string{"authorization_code"},
	}, "secret")

	valid, err := s.CheckClientCredentials(ctx, "librarian", "secret")
	if err != nil {
		t.Fatalf("CheckClientCredentials failed: %v", err)
	}
	if !valid {
		t.Error("Correct secret should verify")
	}

	// Wrong secret and unknown client are indistinguishable
	valid, err = s.CheckClientCredentials(ctx, "librarian", "wrong")
	if err != nil {
		t.Fatalf("CheckClientCredentials failed: %v", err)
	}
	if valid {
		t.Error("Wrong secret should not verify")
	}

	valid, err = s.CheckClientCredentials(ctx, "nobody", "secret")
	if err != nil {
		t.Fatalf("CheckClientCredentials failed: %v", err)
	}
	if valid {
		t.Error("Unknown client should not verify")
	}
}

func TestCheckClientCredentialsPublicClient(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{ClientID: "public-app"}, "")

	// A public client has no secret to verify against
	valid, err := s.CheckClientCredentials(ctx, "public-app", "")
	if err != nil {
		t.Fatalf("CheckClientCredentials failed: %v", err)
	}
	if valid {
		t.Error("Public client should never pass credential checks")
	}
}

func TestIsPublicClient(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{ClientID: "librarian"}, "secret")
	seedClient(t, s, &domain.Client{ClientID: "public-app"}, "")

	tests := []struct {
		clientID string
		want     bool
	}{
		{"public-app", true},
		{"librarian", false},
		{"absent", false},
	}

	for _, tt := range tests {
		got, err := s.IsPublicClient(ctx, tt.clientID)
		if err != nil {
			t.Fatalf("IsPublicClient(%q) failed: %v", tt.clientID, err)
		}
		if got != tt.want {
			t.Errorf("IsPublicClient(%q) = %v, want %v", tt.clientID, got, tt.want)
		}
	}
}

func TestCheckRestrictedGrantType(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedClient(t, s, &domain.Client{
		ClientID:   "cid",
		GrantTypes: []string{"authorization_code", "refresh_token"},
	}, "secret")
	seedClient(t, s, &domain.Client{ClientID: "unrestricted"}, "secret")

	tests := []struct {
		name      string
		clientID  string
		grantType string
		want      bool
	}{
		{"allowed", "cid", "authorization_code", true},
		{"also allowed", "cid", "refresh_token", true},
		{"not in list", "cid", "client_credentials", false},
		{"empty grant types", "unrestricted", "authorization_code", false},
		{"absent client", "nobody", "authorization_code", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CheckRestrictedGrantType(ctx, tt.clientID, tt.grantType)
			if err != nil {
				t.Fatalf("CheckRestrictedGrantType failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckRestrictedGrantType(%q, %q) = %v, want %v", tt.clientID, tt.grantType, got, tt.want)
			}
		})
	}
}
