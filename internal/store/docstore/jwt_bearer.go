package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/domain"
)

// GetClientKey returns the PEM public key registered for (clientID,
// subject), "" when none is registered.
func (s *Store) GetClientKey(ctx context.Context, clientID, subject string) (string, error) {
	var doc jwtKeyDocument
	filter := bson.M{"client_id": clientID, "subject": subject}
	found, err := s.findOne(ctx, s.tables.JwtTable, filter, &doc)
	if err != nil || !found {
		return "", err
	}
	return doc.PublicKey, nil
}

// SetClientKey registers a public key for the JWT-bearer grant.
func (s *Store) SetClientKey(ctx context.Context, clientID, subject, publicKey string) error {
	doc := jwtKeyDocument{
		ClientID:  clientID,
		Subject:   subject,
		PublicKey: publicKey,
	}
	return s.insertOne(ctx, s.tables.JwtTable, doc)
}

// GetJti returns the replay record matching all five fields, or (nil, nil)
// when the assertion has not been seen before.
func (s *Store) GetJti(ctx context.Context, clientID, subject, audience string, expires int64, jti string) (*domain.JTI, error) {
	var doc jtiDocument
	filter := bson.M{
		"client_id": clientID,
		"subject":   subject,
		"audience":  audience,
		"expires":   toDateTime(expires),
		"jti":       jti,
	}
	found, err := s.findOne(ctx, s.tables.JtiTable, filter, &doc)
	if err != nil || !found {
		return nil, err
	}

	return &domain.JTI{
		ClientID: doc.ClientID,
		Subject:  doc.Subject,
		Audience: doc.Audience,
		Expires:  toUnixSeconds(doc.Expires),
		JTI:      doc.JTI,
	}, nil
}

// SetJti records an assertion identifier so later presentations are
// detected as replays.
func (s *Store) SetJti(ctx context.Context, clientID, subject, audience string, expires int64, jti string) error {
	doc := jtiDocument{
		ClientID: clientID,
		Subject:  subject,
		Audience: audience,
		Expires:  toDateTime(expires),
		JTI:      jti,
	}
	return s.insertOne(ctx, s.tables.JtiTable, doc)
}
