package classes

import (
	"context"
	"errors"
	"testing"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
)

func TestCreateClassDerivesSlug(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, "Class 10")
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if class.ClassID != "class_10" {
		t.Errorf("classId = %q, want class_10", class.ClassID)
	}

	_, err = svc.CreateClass(ctx, "Class 10")
	if !errors.Is(err, school.ErrDuplicateRecord) {
		t.Errorf("duplicate class: got %v", err)
	}
}

func TestCreateSectionRequiresClass(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.CreateSection(ctx, "class_10", "A")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("section for missing class: got %v", err)
	}

	if _, err := svc.CreateClass(ctx, "Class 10"); err != nil {
		t.Fatal(err)
	}
	section, err := svc.CreateSection(ctx, "class_10", "A")
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.SectionID != "section_a" {
		t.Errorf("sectionId = %q, want section_a", section.SectionID)
	}

	forClass, err := svc.ListSectionsForClass(ctx, "class_10")
	if err != nil {
		t.Fatal(err)
	}
	if len(forClass) != 1 || forClass[0].SectionID != "section_a" {
		t.Errorf("sections for class = %+v", forClass)
	}
}

func TestCreateClassRejectsEmptyName(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())

	_, err := svc.CreateClass(context.Background(), "  ")
	if !errors.Is(err, school.ErrMissingRequiredField) {
		t.Errorf("empty name: got %v", err)
	}
}
