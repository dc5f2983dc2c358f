// Package store defines the storage contracts an OAuth2 runtime programs
// against. Not-found is never an error on these interfaces: record getters
// return a nil record, string getters an empty string, and credential/flag
// checks false, all with a nil error. A non-nil error always means the
// underlying store failed.
package store

import (
	"context"

	"github.com/tendant/oauth2-store/internal/domain"
)

// AuthorizationCodeStorage persists single-use authorization codes.
type AuthorizationCodeStorage interface {
	// GetAuthorizationCode returns the code record, or (nil, nil) when absent.
	GetAuthorizationCode(ctx context.Context, code string) (*domain.AuthorizationCode, error)

	// SetAuthorizationCode inserts a new code. Expires is Unix seconds and
	// scope a space-separated string. Inserting an existing code fails with
	// the store's duplicate-key error.
	SetAuthorizationCode(ctx context.Context, code, clientID, userID, redirectURI string, expires int64, scope string) error

	// ExpireAuthorizationCode deletes the code. Deleting an absent code is a
	// no-op.
	ExpireAuthorizationCode(ctx context.Context, code string) error
}

// AccessTokenStorage persists issued access tokens.
type AccessTokenStorage interface {
	GetAccessToken(ctx context.Context, token string) (*domain.AccessToken, error)
	SetAccessToken(ctx context.Context, token, clientID, userID string, expires int64, scope string) error
}

// RefreshTokenStorage persists refresh tokens, deleted on rotation.
type RefreshTokenStorage interface {
	GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	SetRefreshToken(ctx context.Context, token, clientID, userID string, expires int64, scope string) error
	UnsetRefreshToken(ctx context.Context, token string) error
}

// ClientStorage persists registered clients and answers the client-policy
// questions the runtime asks during a grant.
type ClientStorage interface {
	// GetClientDetails returns the client, or (nil, nil) when absent. The
	// returned ClientID is the lookup key.
	GetClientDetails(ctx context.Context, clientID string) (*domain.Client, error)

	// SetClientDetails inserts a new client. A non-empty secret is hashed
	// before storage; an empty secret registers a public client.
	SetClientDetails(ctx context.Context, client *domain.Client, secret string) error

	// GetClientScope returns the client's scope as a space-separated string,
	// or "" when the client is absent or has no scope.
	GetClientScope(ctx context.Context, clientID string) (string, error)

	// CheckClientCredentials verifies secret against the stored hash. It
	// returns false both for an unknown client and for a wrong secret, with
	// no way to tell the two apart.
	CheckClientCredentials(ctx context.Context, clientID, secret string) (bool, error)

	// IsPublicClient reports whether the client exists and has no secret.
	IsPublicClient(ctx context.Context, clientID string) (bool, error)

	// CheckRestrictedGrantType reports whether the client exists and
	// grantType is in its grant-types list.
	CheckRestrictedGrantType(ctx context.Context, clientID, grantType string) (bool, error)
}

// UserCredentialsStorage persists resource-owner credentials.
type UserCredentialsStorage interface {
	// GetUserDetails returns the user, or (nil, nil) when absent.
	GetUserDetails(ctx context.Context, username string) (*domain.User, error)

	// SetUser inserts a new user with the password hashed before storage.
	SetUser(ctx context.Context, username, password, scope string) error

	// CheckUserCredentials verifies password against the stored hash, false
	// on unknown user or mismatch indistinguishably.
	CheckUserCredentials(ctx context.Context, username, password string) (bool, error)
}

// JWTBearerStorage persists the public keys and replay identifiers backing
// the JWT-bearer grant (RFC 7523).
type JWTBearerStorage interface {
	// GetClientKey returns the PEM public key registered for (clientID,
	// subject), or "" when none is registered.
	GetClientKey(ctx context.Context, clientID, subject string) (string, error)

	SetClientKey(ctx context.Context, clientID, subject, publicKey string) error

	// GetJti returns the replay record matching all five fields, or
	// (nil, nil) when the assertion has not been seen.
	GetJti(ctx context.Context, clientID, subject, audience string, expires int64, jti string) (*domain.JTI, error)

	SetJti(ctx context.Context, clientID, subject, audience string, expires int64, jti string) error
}

// Storage aggregates every contract the adapter satisfies.
type Storage interface {
	AuthorizationCodeStorage
	AccessTokenStorage
	RefreshTokenStorage
	ClientStorage
	UserCredentialsStorage
	JWTBearerStorage
}
