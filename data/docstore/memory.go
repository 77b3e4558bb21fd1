package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore mirrors the Postgres semantics without a database. It backs
// the unit tests and can be injected anywhere a Store is expected.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]json.RawMessage),
	}
}

func (s *MemoryStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]Document, 0, len(ids))
	for _, id := range ids {
		items = append(items, Document{ID: id, Fields: docs[id]})
	}
	return items, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection string, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: fields}, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, collection string, id string, fields any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	s.collections[collection][id] = body
	return nil
}

func (s *MemoryStore) UpsertMerge(ctx context.Context, collection string, id string, partial any) error {
	body, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(body, &overlay); err != nil {
		return fmt.Errorf("merge body for %s/%s must be an object: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}

	merged := make(map[string]json.RawMessage)
	if existing, ok := s.collections[collection][id]; ok {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("stored body for %s/%s is not an object: %w", collection, id, err)
		}
	}
	for k, v := range overlay {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	s.collections[collection][id] = out
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) QueryByField(ctx context.Context, collection string, field string, value string) ([]Document, error) {
	all, err := s.ListAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var items []Document
	for _, d := range all {
		var fields map[string]any
		if err := json.Unmarshal(d.Fields, &fields); err != nil {
			continue
		}
		if got, ok := fields[field].(string); ok && got == value {
			items = append(items, d)
		}
	}
	return items, nil
}
