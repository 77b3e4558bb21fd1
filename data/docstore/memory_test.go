package docstore

import (
	"context"
	"encoding/json"
	"testing"
)

func TestUpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "Slots", "PER0900"); err != ErrNotFound {
		t.Errorf("get on empty store: %v", err)
	}

	if err := s.Upsert(ctx, "Slots", "PER0900", map[string]string{"slotName": "Period 1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	doc, err := s.Get(ctx, "Slots", "PER0900")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var fields map[string]string
	if err := doc.Decode(&fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fields["slotName"] != "Period 1" {
		t.Errorf("fields = %v", fields)
	}

	if err := s.Delete(ctx, "Slots", "PER0900"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "Slots", "PER0900"); err != ErrNotFound {
		t.Errorf("get after delete: %v", err)
	}
}

func TestListAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		if err := s.Upsert(ctx, "Classes", id, map[string]string{"id": id}); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	docs, err := s.ListAll(ctx, "Classes")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if docs[i].ID != id {
			t.Errorf("position %d = %s want %s", i, docs[i].ID, id)
		}
	}
}

func TestUpsertMergeIsTopLevelShallow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Upsert(ctx, "TimeTables", "CLS10_SECA", map[string]any{
		"classId": "CLS10",
		"schedule": map[string]any{
			"Monday":  map[string]string{"S1": "MATH"},
			"Tuesday": map[string]string{"S1": "ENG"},
		},
		"status": "active",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// a merge replaces the submitted top-level keys whole and keeps the rest
	if err := s.UpsertMerge(ctx, "TimeTables", "CLS10_SECA", map[string]any{
		"schedule": map[string]any{
			"Monday": map[string]string{"S1": "SCI"},
		},
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	doc, err := s.Get(ctx, "TimeTables", "CLS10_SECA")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var fields struct {
		ClassID  string                       `json:"classId"`
		Schedule map[string]map[string]string `json:"schedule"`
		Status   string                       `json:"status"`
	}
	if err := json.Unmarshal(doc.Fields, &fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fields.ClassID != "CLS10" || fields.Status != "active" {
		t.Errorf("untouched keys lost: %+v", fields)
	}
	if fields.Schedule["Monday"]["S1"] != "SCI" {
		t.Errorf("merged schedule = %v", fields.Schedule)
	}
	if _, ok := fields.Schedule["Tuesday"]; ok {
		t.Error("nested merge happened; top-level keys must be replaced whole")
	}
}

func TestUpsertMergeCreatesWhenAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.UpsertMerge(ctx, "Staff", "1", map[string]string{"firstName": "John"}); err != nil {
		t.Fatalf("merge into absent doc: %v", err)
	}
	if _, err := s.Get(ctx, "Staff", "1"); err != nil {
		t.Errorf("document not created: %v", err)
	}
}

func TestQueryByField(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seeds := map[string]map[string]string{
		"section_a": {"sectionName": "Section A", "classId": "class_10"},
		"section_b": {"sectionName": "Section B", "classId": "class_10"},
		"section_c": {"sectionName": "Section C", "classId": "class_9"},
	}
	for id, fields := range seeds {
		if err := s.Upsert(ctx, "Sections", id, fields); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	tenth, err := s.QueryByField(ctx, "Sections", "classId", "class_10")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(tenth) != 2 {
		t.Errorf("query matched %d documents want 2", len(tenth))
	}
	none, _ := s.QueryByField(ctx, "Sections", "classId", "class_1")
	if len(none) != 0 {
		t.Errorf("query matched %d documents want 0", len(none))
	}
}
