// Package docdb defines the narrow document-database surface the storage
// adapter depends on, with a MongoDB implementation for production and an
// in-memory implementation for tests and development.
//
// Filters match zero or one documents, inserts fail on a duplicate _id, and
// deletes of absent documents are no-ops. Nothing richer is offered: no
// updates, no multi-document queries, no transactions.
package docdb

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("docdb: no matching document")

// ErrDuplicateKey is returned by InsertOne when a document with the same
// _id already exists.
var ErrDuplicateKey = errors.New("docdb: duplicate key")

// Database hands out named collections.
type Database interface {
	Collection(name string) Collection
}

// Collection is a single named document collection.
type Collection interface {
	// FindOne decodes the document matching filter into dest, or returns
	// ErrNotFound.
	FindOne(ctx context.Context, filter, dest any) error

	// InsertOne stores a new document. It returns ErrDuplicateKey when a
	// document with the same _id exists.
	InsertOne(ctx context.Context, doc any) error

	// DeleteOne removes at most one document matching filter. Deleting a
	// non-existent document is not an error.
	DeleteOne(ctx context.Context, filter any) error
}
