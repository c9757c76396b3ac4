package memory

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"meetupticket/internal/domain"
)

// Store is an in-process DocumentStore used for local development and tests.
// Documents are kept in insertion order so Find results are deterministic.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]map[string]map[string]any
	order  map[string][]string
	unique map[string][][]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		docs:   make(map[string]map[string]map[string]any),
		order:  make(map[string][]string),
		unique: make(map[string][][]string),
	}
}

// EnsureIndexes declares the (email, eventId) uniqueness constraint on participants.
func (s *Store) EnsureIndexes(_ context.Context) error {
	s.AddUniqueKey(domain.CollectionParticipants, "email", "eventId")
	return nil
}

// AddUniqueKey makes Insert reject documents whose values for fields match an
// existing document in collection.
func (s *Store) AddUniqueKey(collection string, fields ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.unique[collection] {
		if slices.Equal(key, fields) {
			return
		}
	}
	s.unique[collection] = append(s.unique[collection], fields)
}

// Put stores fields under id, replacing any document with the same id.
func (s *Store) Put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, fields)
}

func (s *Store) put(collection, id string, fields map[string]any) {
	coll, ok := s.docs[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		s.docs[collection] = coll
	}
	if _, exists := coll[id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	coll[id] = copyFields(fields)
}

func (s *Store) Find(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, f := range filters {
		if f.Op != domain.OpEqual {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFilter, f.Op)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0)
	for _, id := range s.order[collection] {
		fields := s.docs[collection][id]
		if matches(fields, filters) {
			docs = append(docs, domain.Document{ID: id, Fields: copyFields(fields)})
		}
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.docs[collection][id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	return domain.Document{ID: id, Fields: copyFields(fields)}, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.unique[collection] {
		filters := make([]domain.Filter, 0, len(key))
		for _, field := range key {
			filters = append(filters, domain.Eq(field, fields[field]))
		}
		for _, existing := range s.docs[collection] {
			if matches(existing, filters) {
				return "", domain.ErrDuplicate
			}
		}
	}

	id := uuid.NewString()
	s.put(collection, id, fields)
	return id, nil
}

func (s *Store) UpdateByID(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *Store) Increment(ctx context.Context, collection, id, field string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	switch v := doc[field].(type) {
	case nil:
		doc[field] = delta
	case int:
		doc[field] = v + delta
	case int32:
		doc[field] = int(v) + delta
	case int64:
		doc[field] = int(v) + delta
	case float64:
		doc[field] = v + float64(delta)
	default:
		return fmt.Errorf("increment %s.%s: field is %T, not a number", collection, field, v)
	}
	return nil
}

func matches(fields map[string]any, filters []domain.Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
