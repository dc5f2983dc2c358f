package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/domain"
)

// GetRefreshToken returns the token record, or (nil, nil) when absent. An
// absent token means no refresh capability.
func (s *Store) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var doc refreshTokenDocument
	found, err := s.findOne(ctx, s.tables.RefreshTokenTable, bson.M{"refresh_token": token}, &doc)
	if err != nil || !found {
		return nil, err
	}

	return &domain.RefreshToken{
		RefreshToken: doc.RefreshToken,
		ClientID:     doc.ClientID,
		UserID:       doc.UserID,
		Expires:      toUnixSeconds(doc.Expires),
		Scope:        joinSpace(doc.Scope),
	}, nil
}

// SetRefreshToken inserts a new refresh token.
func (s *Store) SetRefreshToken(ctx context.Context, token, clientID, userID string, expires int64, scope string) error {
	doc := refreshTokenDocument{
		ID:           token,
		RefreshToken: token,
		ClientID:     clientID,
		UserID:       userID,
		Expires:      toDateTime(expires),
		Scope:        splitSpace(scope),
	}
	return s.insertOne(ctx, s.tables.RefreshTokenTable, doc)
}

// UnsetRefreshToken deletes a rotated token. Deleting an absent token is a
// no-op.
func (s *Store) UnsetRefreshToken(ctx context.Context, token string) error {
	if err := s.deleteOne(ctx, s.tables.RefreshTokenTable, bson.M{"refresh_token": token}); err != nil {
		return err
	}
	s.logger.Debug("unset refresh token", "refresh_token_table", s.tables.RefreshTokenTable)
	return nil
}
