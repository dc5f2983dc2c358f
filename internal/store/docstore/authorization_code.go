package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/domain"
)

// GetAuthorizationCode returns the code record, or (nil, nil) when absent.
func (s *Store) GetAuthorizationCode(ctx context.Context, code string) (*domain.AuthorizationCode, error) {
	var doc codeDocument
	found, err := s.findOne(ctx, s.tables.CodeTable, bson.M{"code": code}, &doc)
	if err != nil || !found {
		return nil, err
	}

	return &domain.AuthorizationCode{
		Code:        doc.Code,
		ClientID:    doc.ClientID,
		UserID:      doc.UserID,
		RedirectURI: doc.RedirectURI,
		Expires:     toUnixSeconds(doc.Expires),
		Scope:       joinSpace(doc.Scope),
	}, nil
}

// SetAuthorizationCode inserts a new authorization code.
func (s *Store) SetAuthorizationCode(ctx context.Context, code, clientID, userID, redirectURI string, expires int64, scope string) error {
	doc := codeDocument{
		ID:          code,
		Code:        code,
		ClientID:    clientID,
		UserID:      userID,
		RedirectURI: redirectURI,
		Expires:     toDateTime(expires),
		Scope:       splitSpace(scope),
	}
	return s.insertOne(ctx, s.tables.CodeTable, doc)
}

// ExpireAuthorizationCode deletes a consumed code. Deleting an absent code
// is a no-op.
func (s *Store) ExpireAuthorizationCode(ctx context.Context, code string) error {
	if err := s.deleteOne(ctx, s.tables.CodeTable, bson.M{"code": code}); err != nil {
		return err
	}
	s.logger.Debug("expired authorization code", "code_table", s.tables.CodeTable)
	return nil
}
