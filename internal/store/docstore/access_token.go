package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/domain"
)

// GetAccessToken returns the token record, or (nil, nil) when absent.
func (s *Store) GetAccessToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	var doc accessTokenDocument
	found, err := s.findOne(ctx, s.tables.AccessTokenTable, bson.M{"access_token": token}, &doc)
	if err != nil || !found {
		return nil, err
	}

	return &domain.AccessToken{
		AccessToken: doc.AccessToken,
		ClientID:    doc.ClientID,
		UserID:      doc.UserID,
		Expires:     toUnixSeconds(doc.Expires),
		Scope:       joinSpace(doc.Scope),
	}, nil
}

// SetAccessToken inserts a new access token. The adapter never deletes
// access tokens; expiry is the caller's (or the database TTL's) concern.
func (s *Store) SetAccessToken(ctx context.Context, token, clientID, userID string, expires int64, scope string) error {
	doc := accessTokenDocument{
		ID:          token,
		AccessToken: token,
		ClientID:    clientID,
		UserID:      userID,
		Expires:     toDateTime(expires),
		Scope:       splitSpace(scope),
	}
	return s.insertOne(ctx, s.tables.AccessTokenTable, doc)
}
