// Package docstore implements the storage contracts in package store on top
// of a document database. Every operation is a single keyed FindOne,
// InsertOne or DeleteOne against one collection; all field-shape translation
// between protocol values and stored documents lives here.
package docstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tendant/oauth2-store/internal/docdb"
	"github.com/tendant/oauth2-store/internal/metrics"
	"github.com/tendant/oauth2-store/internal/store"
)

// Tables maps logical entity kinds to physical collection names. Empty
// fields fall back to the defaults at construction time.
type Tables struct {
	CodeTable         string
	AccessTokenTable  string
	RefreshTokenTable string
	ClientTable       string
	UserTable         string
	JwtTable          string
	JtiTable          string
}

// DefaultTables returns the default collection names.
func DefaultTables() Tables {
	return Tables{
		CodeTable:         "oauth_authorization_codes",
		AccessTokenTable:  "oauth_access_tokens",
		RefreshTokenTable: "oauth_refresh_tokens",
		ClientTable:       "oauth_clients",
		UserTable:         "oauth_users",
		JwtTable:          "oauth_jwt",
		JtiTable:          "oauth_jti",
	}
}

func (t Tables) withDefaults() Tables {
	def := DefaultTables()
	if t.CodeTable == "" {
		t.CodeTable = def.CodeTable
	}
	if t.AccessTokenTable == "" {
		t.AccessTokenTable = def.AccessTokenTable
	}
	if t.RefreshTokenTable == "" {
		t.RefreshTokenTable = def.RefreshTokenTable
	}
	if t.ClientTable == "" {
		t.ClientTable = def.ClientTable
	}
	if t.UserTable == "" {
		t.UserTable = def.UserTable
	}
	if t.JwtTable == "" {
		t.JwtTable = def.JwtTable
	}
	if t.JtiTable == "" {
		t.JtiTable = def.JtiTable
	}
	return t
}

// Store is the storage adapter. It holds no mutable state beyond its
// construction-time configuration; concurrent callers rely on the document
// store's per-document atomicity.
type Store struct {
	db     docdb.Database
	tables Tables
	logger *slog.Logger
}

var _ store.Storage = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithTables overrides collection names. Empty fields keep their defaults.
func WithTables(tables Tables) Option {
	return func(s *Store) {
		s.tables = tables
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a storage adapter over db.
func New(db docdb.Database, opts ...Option) *Store {
	s := &Store{
		db:     db,
		tables: DefaultTables(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.tables = s.tables.withDefaults()

	return s
}

// Tables returns the resolved collection-name configuration.
func (s *Store) Tables() Tables {
	return s.tables
}

const (
	opFind   = "find_one"
	opInsert = "insert_one"
	opDelete = "delete_one"
)

// findOne reports (false, nil) when nothing matches the filter. Store
// failures pass through unchanged.
func (s *Store) findOne(ctx context.Context, table string, filter bson.M, dest any) (bool, error) {
	start := time.Now()
	err := s.db.Collection(table).FindOne(ctx, filter, dest)
	switch {
	case errors.Is(err, docdb.ErrNotFound):
		metrics.ObserveStoreOp(table, opFind, metrics.ResultMiss, time.Since(start))
		return false, nil
	case err != nil:
		metrics.ObserveStoreOp(table, opFind, metrics.ResultError, time.Since(start))
		return false, err
	}
	metrics.ObserveStoreOp(table, opFind, metrics.ResultOK, time.Since(start))
	return true, nil
}

func (s *Store) insertOne(ctx context.Context, table string, doc any) error {
	start := time.Now()
	err := s.db.Collection(table).InsertOne(ctx, doc)
	if err != nil {
		metrics.ObserveStoreOp(table, opInsert, metrics.ResultError, time.Since(start))
		return err
	}
	metrics.ObserveStoreOp(table, opInsert, metrics.ResultOK, time.Since(start))
	return nil
}

func (s *Store) deleteOne(ctx context.Context, table string, filter bson.M) error {
	start := time.Now()
	err := s.db.Collection(table).DeleteOne(ctx, filter)
	if err != nil {
		metrics.ObserveStoreOp(table, opDelete, metrics.ResultError, time.Since(start))
		return err
	}
	metrics.ObserveStoreOp(table, opDelete, metrics.ResultOK, time.Since(start))
	return nil
}
