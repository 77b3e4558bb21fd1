package serversync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) (*httptest.Server, docstore.Store) {
	t.Helper()
	store := docstore.NewMemoryStore()

	mux := chi.NewRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var router chi.Router = mux
	PopulateSyncRoutes(&router, store, *logger)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, store
}

func TestSyncAll(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, docstore.CollectionClasses, "class_10", map[string]string{"className": "Class 10"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, docstore.CollectionNotices, "n1", map[string]string{"title": "Sports day"}); err != nil {
		t.Fatal(err)
	}
	// auth records must never be exported
	if err := store.Upsert(ctx, docstore.CollectionAdminUsers, "principal", map[string]string{"username": "principal"}); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(server.URL + "/all")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want 200", resp.StatusCode)
	}

	var result exportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("could not decode export: %v", err)
	}
	if result.Truncated {
		t.Error("small export should not be truncated")
	}
	if len(result.Collections[docstore.CollectionClasses]) != 1 {
		t.Errorf("classes = %d, want 1", len(result.Collections[docstore.CollectionClasses]))
	}
	if len(result.Collections[docstore.CollectionNotices]) != 1 {
		t.Errorf("notices = %d, want 1", len(result.Collections[docstore.CollectionNotices]))
	}
	if _, ok := result.Collections[docstore.CollectionAdminUsers]; ok {
		t.Error("admin users must not be exported")
	}
}

func TestSyncAllSelectedCollections(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, docstore.CollectionClasses, "class_10", map[string]string{"className": "Class 10"}); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(server.URL + "/all?collections=Classes")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()

	var result exportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("could not decode export: %v", err)
	}
	if len(result.Collections) != 1 {
		t.Errorf("collections = %d, want 1", len(result.Collections))
	}

	resp, err = http.Get(server.URL + "/all?collections=AdminUsers")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("auth collection request status = %d, want 400", resp.StatusCode)
	}
}

func TestSyncAllTruncation(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Upsert(ctx, docstore.CollectionNotices, id, map[string]string{"title": id}); err != nil {
			t.Fatal(err)
		}
	}

	resp, err := http.Get(server.URL + "/all?maxRecordsCount=2")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()

	var result exportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("could not decode export: %v", err)
	}
	if !result.Truncated {
		t.Error("export over the record cap should be truncated")
	}
	total := 0
	for _, docs := range result.Collections {
		total += len(docs)
	}
	if total != 2 {
		t.Errorf("exported %d records, want 2", total)
	}
}
