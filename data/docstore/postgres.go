package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps every collection in one documents table with a JSONB
// body. Single-document atomicity comes from the row-level upsert; there
// are no multi-document transactions anywhere in the service.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const listAllDocuments = `
SELECT id, fields FROM documents
WHERE collection = $1
ORDER BY id
`

func (s *PostgresStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.pool.Query(ctx, listAllDocuments, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var items []Document
	for rows.Next() {
		var i Document
		if err := rows.Scan(&i.ID, &i.Fields); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getDocument = `
SELECT id, fields FROM documents
WHERE collection = $1 AND id = $2
`

func (s *PostgresStore) Get(ctx context.Context, collection string, id string) (Document, error) {
	var d Document
	err := s.pool.QueryRow(ctx, getDocument, collection, id).Scan(&d.ID, &d.Fields)
	if err == pgx.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("getting %s/%s: %w", collection, id, err)
	}
	return d, nil
}

const upsertDocument = `
INSERT INTO documents (collection, id, fields)
VALUES ($1, $2, $3)
ON CONFLICT (collection, id)
DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()
`

func (s *PostgresStore) Upsert(ctx context.Context, collection string, id string, fields any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}
	_, err = s.pool.Exec(ctx, upsertDocument, collection, id, body)
	if err != nil {
		return fmt.Errorf("upserting %s/%s: %w", collection, id, err)
	}
	return nil
}

const upsertMergeDocument = `
INSERT INTO documents (collection, id, fields)
VALUES ($1, $2, $3)
ON CONFLICT (collection, id)
DO UPDATE SET fields = documents.fields || EXCLUDED.fields, updated_at = now()
`

func (s *PostgresStore) UpsertMerge(ctx context.Context, collection string, id string, partial any) error {
	body, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}
	_, err = s.pool.Exec(ctx, upsertMergeDocument, collection, id, body)
	if err != nil {
		return fmt.Errorf("merging %s/%s: %w", collection, id, err)
	}
	return nil
}

const deleteDocument = `
DELETE FROM documents
WHERE collection = $1 AND id = $2
`

func (s *PostgresStore) Delete(ctx context.Context, collection string, id string) error {
	_, err := s.pool.Exec(ctx, deleteDocument, collection, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

const queryDocumentsByField = `
SELECT id, fields FROM documents
WHERE collection = $1 AND fields->>$2 = $3
ORDER BY id
`

func (s *PostgresStore) QueryByField(ctx context.Context, collection string, field string, value string) ([]Document, error) {
	rows, err := s.pool.Query(ctx, queryDocumentsByField, collection, field, value)
	if err != nil {
		return nil, fmt.Errorf("querying %s by %s: %w", collection, field, err)
	}
	defer rows.Close()

	var items []Document
	for rows.Next() {
		var i Document
		if err := rows.Scan(&i.ID, &i.Fields); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
