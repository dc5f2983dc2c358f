// Package jwtbearer verifies RFC 7523 JWT-bearer assertions against the
// client public keys and replay identifiers held in storage.
package jwtbearer

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tendant/oauth2-store/internal/store"
)

// ErrInvalidAssertion covers every verification failure: bad signature,
// unregistered key, wrong audience, expired assertion, missing or replayed
// jti. Callers cannot tell which check failed.
var ErrInvalidAssertion = errors.New("jwtbearer: invalid assertion")

// Verifier checks assertions for one audience (the token endpoint URL).
type Verifier struct {
	storage  store.JWTBearerStorage
	audience string
	logger   *slog.Logger
}

// Option configures the Verifier.
type Option func(*Verifier)

// WithLogger sets the logger for the verifier.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// NewVerifier creates a Verifier bound to the given audience.
func NewVerifier(storage store.JWTBearerStorage, audience string, opts ...Option) *Verifier {
	v := &Verifier{
		storage:  storage,
		audience: audience,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Verify validates an assertion end to end: RSA signature against the key
// registered for (issuer, subject), audience and expiry, then jti replay.
// On success the jti is recorded so the assertion cannot be presented again.
func (v *Verifier) Verify(ctx context.Context, assertion string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	// A storage failure inside the key lookup must surface as a storage
	// failure, not as an invalid assertion.
	var storeErr error

	token, err := jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		c, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || c.Issuer == "" || c.Subject == "" {
			return nil, fmt.Errorf("assertion missing issuer or subject")
		}

		pemKey, err := v.storage.GetClientKey(ctx, c.Issuer, c.Subject)
		if err != nil {
			storeErr = err
			return nil, err
		}
		if pemKey == "" {
			return nil, fmt.Errorf("no key registered for issuer %q", c.Issuer)
		}
		return parseRSAPublicKey(pemKey)
	}, jwt.WithAudience(v.audience), jwt.WithExpirationRequired())

	if storeErr != nil {
		return nil, storeErr
	}
	if err != nil || !token.Valid {
		v.logger.Debug("assertion rejected", "error", err)
		return nil, ErrInvalidAssertion
	}
	if claims.ID == "" {
		return nil, ErrInvalidAssertion
	}

	expires := claims.ExpiresAt.Unix()
	seen, err := v.storage.GetJti(ctx, claims.Issuer, claims.Subject, v.audience, expires, claims.ID)
	if err != nil {
		return nil, err
	}
	if seen != nil {
		v.logger.Warn("assertion replay detected", "issuer", claims.Issuer, "jti", claims.ID)
		return nil, ErrInvalidAssertion
	}

	if err := v.storage.SetJti(ctx, claims.Issuer, claims.Subject, v.audience, expires, claims.ID); err != nil {
		return nil, err
	}

	return claims, nil
}

func parseRSAPublicKey(pemKey string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, fmt.Errorf("stored key is not PEM encoded")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("stored key is not an RSA public key")
	}
	return key, nil
}
