// Package domain defines the protocol-facing entity shapes the storage
// adapter exchanges with the calling OAuth2 runtime.
package domain

import (
	"slices"
	"time"
)

// AuthorizationCode is a short-lived, single-use credential issued by the
// authorization-code grant. It is deleted on consumption.
type AuthorizationCode struct {
	Code        string `json:"code"`
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	RedirectURI string `json:"redirect_uri"`
	Expires     int64  `json:"expires"` // Unix seconds
	Scope       string `json:"scope"`   // space-separated, "" when absent
}

// IsExpired reports whether the code's expiry has passed.
func (c *AuthorizationCode) IsExpired() bool {
	return time.Now().Unix() > c.Expires
}

// AccessToken is a bearer credential granting API access until expiry.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	Expires     int64  `json:"expires"`
	Scope       string `json:"scope"`
}

// IsExpired reports whether the token's expiry has passed.
func (t *AccessToken) IsExpired() bool {
	return time.Now().Unix() > t.Expires
}

// RefreshToken is a long-lived credential exchanged for new access tokens.
// It is deleted on rotation.
type RefreshToken struct {
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	UserID       string `json:"user_id"`
	Expires      int64  `json:"expires"`
	Scope        string `json:"scope"`
}

// IsExpired reports whether the token's expiry has passed.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().Unix() > t.Expires
}

// Client is a registered OAuth2 application. A client with no stored secret
// is a public client.
type Client struct {
	ClientID    string   `json:"client_id"`
	RedirectURI string   `json:"redirect_uri"` // space-joined, "" when absent
	GrantTypes  []string `json:"grant_types"`
	UserID      string   `json:"user_id,omitempty"`
	Scope       string   `json:"scope"` // space-separated, "" when absent
}

// AllowsGrantType reports whether grantType appears in the client's stored
// grant-types list.
func (c *Client) AllowsGrantType(grantType string) bool {
	return slices.Contains(c.GrantTypes, grantType)
}

// User is a resource owner. The password hash never leaves the storage layer.
type User struct {
	Username string `json:"username"`
	Scope    string `json:"scope"`
}

// JTI is a replay-prevention record for the JWT-bearer grant. Its existence
// in storage means the assertion it identifies was already presented.
type JTI struct {
	ClientID string `json:"client_id"`
	Subject  string `json:"subject"`
	Audience string `json:"audience"`
	Expires  int64  `json:"expires"`
	JTI      string `json:"jti"`
}
