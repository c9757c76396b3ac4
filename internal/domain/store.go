package domain

import "context"

// Collection names used by the document store.
const (
	CollectionEvents       = "events"
	CollectionParticipants = "participants"
)

// FilterOp is a comparison operator in a Filter. Only OpEqual is supported by the
// bundled bindings; anything else returns ErrUnsupportedFilter.
type FilterOp string

const OpEqual FilterOp = "=="

// Filter is a single (field, op, value) predicate. Filters passed together are ANDed.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Eq returns an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Document is a loosely typed record as returned by the store. Fields never
// contains the id; typed repositories decode Fields into domain types.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the gateway to the external document database. It offers no
// cross-document transactions: every call is an independent request.
type DocumentStore interface {
	// Find returns the documents matching all filters, in store order.
	Find(ctx context.Context, collection string, filters []Filter) ([]Document, error)
	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert stores fields as a new document and returns its generated id.
	// A unique index violation is reported as ErrDuplicate.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	// UpdateByID merges fields into the document. Returns ErrNotFound if no document matched.
	UpdateByID(ctx context.Context, collection, id string, fields map[string]any) error
	// Increment atomically adds delta to a numeric field. Returns ErrNotFound if no document matched.
	Increment(ctx context.Context, collection, id, field string, delta int) error
}

// IndexEnsurer is implemented by bindings that can create the participant
// uniqueness constraint on (email, eventId).
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}
