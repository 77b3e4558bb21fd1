package subjects

import (
	"context"
	"testing"

	"github.com/edusuite/edusuite/data/docstore"
)

func TestCreateAndListForClass(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(docstore.NewMemoryStore())

	math, err := c.Create(ctx, "CLS10", "Mathematics", TypeCore)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if math.SubjectCode != "CLS10_MAT" {
		t.Errorf("code = %q want CLS10_MAT", math.SubjectCode)
	}
	if _, err := c.Create(ctx, "CLS09", "Mathematics", TypeCore); err != nil {
		t.Fatalf("same name in another class should be a new subject: %v", err)
	}
	if _, err := c.Create(ctx, "CLS10", "Mathematics", TypeCore); err == nil {
		t.Error("duplicate subject accepted")
	}

	forClass, err := c.ListForClass(ctx, "CLS10")
	if err != nil {
		t.Fatalf("list for class: %v", err)
	}
	if len(forClass) != 1 || forClass[0].SubjectCode != "CLS10_MAT" {
		t.Errorf("ListForClass = %+v", forClass)
	}

	all, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List returned %d subjects want 2", len(all))
	}
}

func TestDeleteSubject(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(docstore.NewMemoryStore())

	s, err := c.Create(ctx, "CLS10", "Mathematics", TypeCore)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.Delete(ctx, s.SubjectCode); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, s.SubjectCode); err != docstore.ErrNotFound {
		t.Errorf("get after delete: %v", err)
	}
}
