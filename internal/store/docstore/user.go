package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/auth"
	"github.com/tendant/oauth2-store/internal/domain"
	storeerrors "github.com/tendant/oauth2-store/internal/errors"
)

func (s *Store) findUser(ctx context.Context, username string) (*userDocument, error) {
	var doc userDocument
	found, err := s.findOne(ctx, s.tables.UserTable, bson.M{"username": username}, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

// GetUserDetails returns the user record, or (nil, nil) when absent. The
// password hash is never exposed.
func (s *Store) GetUserDetails(ctx context.Context, username string) (*domain.User, error) {
	doc, err := s.findUser(ctx, username)
	if err != nil || doc == nil {
		return nil, err
	}

	return &domain.User{
		Username: doc.Username,
		Scope:    joinSpace(doc.Scope),
	}, nil
}

// SetUser registers a new user with the password hashed before storage.
func (s *Store) SetUser(ctx context.Context, username, password, scope string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return storeerrors.Internal("failed to hash password", err)
	}

	doc := userDocument{
		ID:       username,
		Username: username,
		Password: hash,
		Scope:    splitSpace(scope),
	}
	return s.insertOne(ctx, s.tables.UserTable, doc)
}

// CheckUserCredentials verifies password against the stored hash. Unknown
// user and wrong password both yield false with no distinction.
func (s *Store) CheckUserCredentials(ctx context.Context, username, password string) (bool, error) {
	doc, err := s.findUser(ctx, username)
	if err != nil {
		return false, err
	}
	if doc == nil || doc.Password == "" {
		return false, nil
	}

	valid, err := auth.VerifyPassword(password, doc.Password)
	if err != nil {
		s.logger.Error("unparsable user password hash", "error", err)
		return false, nil
	}
	return valid, nil
}
