package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"meetupticket/internal/domain"
)

// uniqueViolation is the SQLSTATE raised when a unique index rejects a write.
const uniqueViolation = "23505"

// schema stores every collection in a single JSONB table. The partial unique
// index backs the (email, eventId) participant constraint.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		collection TEXT NOT NULL,
		body JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS participants_email_event_uidx
		ON documents ((body->>'email'), (body->>'eventId'))
		WHERE collection = 'participants'`,
}

// DocumentStore implements domain.DocumentStore on PostgreSQL JSONB.
type DocumentStore struct {
	DB *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{DB: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureIndexes creates the documents table and its indexes if missing.
func (s *DocumentStore) EnsureIndexes(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *DocumentStore) Find(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	match := make(map[string]any, len(filters))
	for _, f := range filters {
		if f.Op != domain.OpEqual {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFilter, f.Op)
		}
		match[f.Field] = f.Value
	}
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}

	query := `
		SELECT id, body
		FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY created_at, id
	`
	rows, err := s.DB.QueryContext(ctx, query, collection, string(matchJSON))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeBody(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	query := `
		SELECT body
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	var body []byte
	err := s.DB.QueryRowContext(ctx, query, collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Document{}, domain.ErrNotFound
		}
		return domain.Document{}, err
	}
	return decodeBody(id, body)
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	query := `
		INSERT INTO documents (collection, body)
		VALUES ($1, $2::jsonb)
		RETURNING id
	`
	var id string
	if err := s.DB.QueryRowContext(ctx, query, collection, string(body)).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) UpdateByID(ctx context.Context, collection, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	query := `
		UPDATE documents
		SET body = body || $3::jsonb
		WHERE collection = $1 AND id = $2
	`
	res, err := s.DB.ExecContext(ctx, query, collection, id, string(patch))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return requireAffected(res)
}

func (s *DocumentStore) Increment(ctx context.Context, collection, id, field string, delta int) error {
	query := `
		UPDATE documents
		SET body = jsonb_set(body, $3::text[], to_jsonb(COALESCE((body #>> $3::text[])::numeric, 0) + $4))
		WHERE collection = $1 AND id = $2
	`
	res, err := s.DB.ExecContext(ctx, query, collection, id, pq.Array([]string{field}), delta)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func decodeBody(id string, body []byte) (domain.Document, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Document{}, fmt.Errorf("%w: document %q: %v", domain.ErrMalformedDocument, id, err)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
