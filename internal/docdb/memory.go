package docdb

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory implements Database entirely in memory. Documents round-trip
// through the BSON codec on the way in and out, so typed documents decode
// exactly as they would from a real MongoDB server. Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	colls map[string]*memoryCollection
}

// NewMemory creates an empty in-memory database.
func NewMemory() *Memory {
	return &Memory{colls: make(map[string]*memoryCollection)}
}

// Collection returns the named collection, creating it on first use.
func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.colls[name]
	if !ok {
		coll = &memoryCollection{}
		m.colls[name] = coll
	}
	return coll
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

type memoryDoc struct {
	raw    []byte // marshaled BSON, decoded into callers' dest types
	fields bson.M // normalized field map used for filter matching
}

type memoryCollection struct {
	mu   sync.RWMutex
	docs []memoryDoc
}

func (c *memoryCollection) FindOne(ctx context.Context, filter, dest any) error {
	fields, err := normalize(filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc.fields, fields) {
			return bson.Unmarshal(doc.raw, dest)
		}
	}
	return ErrNotFound
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := fields["_id"]; ok {
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing.fields["_id"], id) {
				return fmt.Errorf("%w: _id %v", ErrDuplicateKey, id)
			}
		}
	}

	c.docs = append(c.docs, memoryDoc{raw: raw, fields: fields})
	return nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, filter any) error {
	fields, err := normalize(filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if matches(doc.fields, fields) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

// normalize runs a value through the BSON codec so filter values compare
// against stored fields with identical Go representations.
func normalize(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// matches reports whether every filter field equals the stored field.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
