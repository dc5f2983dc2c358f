package docstore

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/auth"
	"github.com/tendant/oauth2-store/internal/domain"
	storeerrors "github.com/tendant/oauth2-store/internal/errors"
)

func (s *Store) findClient(ctx context.Context, clientID string) (*clientDocument, error) {
	var doc clientDocument
	found, err := s.findOne(ctx, s.tables.ClientTable, bson.M{"client_id": clientID}, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

// GetClientDetails returns the client record, or (nil, nil) when absent.
// ClientID in the result is the lookup key.
func (s *Store) GetClientDetails(ctx context.Context, clientID string) (*domain.Client, error) {
	doc, err := s.findClient(ctx, clientID)
	if err != nil || doc == nil {
		return nil, err
	}

	return &domain.Client{
		ClientID:    clientID,
		RedirectURI: joinSpace(doc.RedirectURI),
		GrantTypes:  doc.GrantTypes,
		UserID:      doc.UserID,
		Scope:       joinSpace(doc.Scope),
	}, nil
}

// SetClientDetails registers a new client. A non-empty secret is hashed
// before storage; an empty secret registers a public client.
func (s *Store) SetClientDetails(ctx context.Context, client *domain.Client, secret string) error {
	var hash string
	if secret != "" {
		var err error
		hash, err = auth.HashPassword(secret)
		if err != nil {
			return storeerrors.Internal("failed to hash client secret", err)
		}
	}

	doc := clientDocument{
		ID:           client.ClientID,
		ClientID:     client.ClientID,
		ClientSecret: hash,
		RedirectURI:  splitSpace(client.RedirectURI),
		GrantTypes:   client.GrantTypes,
		UserID:       client.UserID,
		Scope:        splitSpace(client.Scope),
	}
	return s.insertOne(ctx, s.tables.ClientTable, doc)
}

// GetClientScope returns the client's scope as a space-separated string,
// "" when the client is absent or carries no scope.
func (s *Store) GetClientScope(ctx context.Context, clientID string) (string, error) {
	doc, err := s.findClient(ctx, clientID)
	if err != nil || doc == nil {
		return "", err
	}
	return joinSpace(doc.Scope), nil
}

// CheckClientCredentials verifies secret against the stored hash. Unknown
// client, public client, and wrong secret all yield false with no
// distinction, so client ids cannot be enumerated.
func (s *Store) CheckClientCredentials(ctx context.Context, clientID, secret string) (bool, error) {
	doc, err := s.findClient(ctx, clientID)
	if err != nil {
		return false, err
	}
	if doc == nil || doc.ClientSecret == "" {
		return false, nil
	}

	valid, err := auth.VerifyPassword(secret, doc.ClientSecret)
	if err != nil {
		// A stored hash that cannot be parsed is folded into a mismatch.
		s.logger.Error("unparsable client secret hash", "error", err)
		return false, nil
	}
	return valid, nil
}

// IsPublicClient reports whether the client exists and has no stored secret.
func (s *Store) IsPublicClient(ctx context.Context, clientID string) (bool, error) {
	doc, err := s.findClient(ctx, clientID)
	if err != nil || doc == nil {
		return false, err
	}
	return doc.ClientSecret == "", nil
}

// CheckRestrictedGrantType reports whether the client exists and grantType
// is in its stored grant-types list.
func (s *Store) CheckRestrictedGrantType(ctx context.Context, clientID, grantType string) (bool, error) {
	doc, err := s.findClient(ctx, clientID)
	if err != nil || doc == nil {
		return false, err
	}
	return slices.Contains(doc.GrantTypes, grantType), nil
}
