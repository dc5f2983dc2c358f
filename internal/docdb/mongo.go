package docdb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	storeerrors "github.com/tendant/oauth2-store/internal/errors"
)

// Mongo implements Database on top of a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

// NewMongo wraps an already-connected MongoDB database.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// Connect dials MongoDB at uri, verifies the connection and returns the
// named database.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeerrors.Unavailable("failed to connect to mongodb", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, storeerrors.Unavailable("failed to ping mongodb", err)
	}
	return &Mongo{db: client.Database(database)}, nil
}

// Collection returns the named collection.
func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

// Ping verifies the server is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindOne(ctx context.Context, filter, dest any) error {
	err := c.coll.FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) error {
	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter any) error {
	// Zero matched documents is fine; the caller treats delete as a no-op
	// for absent keys.
	_, err := c.coll.DeleteOne(ctx, filter)
	return err
}
