package people

import (
	"context"
	"testing"

	"github.com/edusuite/edusuite/data/docstore"
)

func TestAdmitGeneratesAdmissionNumber(t *testing.T) {
	ctx := context.Background()
	s := NewStudents(docstore.NewMemoryStore())
	s.randInt = func(n int) int { return 2345678 }

	student, err := s.Admit(ctx, Student{
		FirstName: "Rahul", LastName: "Sharma",
		ClassID: "class_8", SectionID: "section_a",
	})
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if len(student.AdmissionNumber) != 8 {
		t.Errorf("admission number %q is not 8 digits", student.AdmissionNumber)
	}
	if student.AdmissionNumber != "12345678" {
		t.Errorf("admission number = %q want 12345678", student.AdmissionNumber)
	}
}

func TestAdmitRejectsMissingFields(t *testing.T) {
	s := NewStudents(docstore.NewMemoryStore())
	if _, err := s.Admit(context.Background(), Student{FirstName: "Rahul"}); err == nil {
		t.Error("student without class/section accepted")
	}
}

func TestStudentSearchAndFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStudents(docstore.NewMemoryStore())

	seeds := []Student{
		{AdmissionNumber: "10000001", FirstName: "Rahul", LastName: "Sharma", ClassID: "class_8", SectionID: "section_a"},
		{AdmissionNumber: "10000002", FirstName: "Ananya", LastName: "Singh", ClassID: "class_5", SectionID: "section_a"},
		{AdmissionNumber: "10000003", FirstName: "Sara", LastName: "Khan", ClassID: "class_8", SectionID: "section_b"},
	}
	for _, seed := range seeds {
		if _, err := s.Admit(ctx, seed); err != nil {
			t.Fatalf("seed %s: %v", seed.FirstName, err)
		}
	}

	eighth, err := s.ListForClass(ctx, "class_8")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(eighth) != 2 {
		t.Errorf("class_8 has %d students want 2", len(eighth))
	}

	found, err := s.Search(ctx, "sha")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].FirstName != "Rahul" {
		t.Errorf("search result %+v", found)
	}
}

func TestStudentUpdateKeepsAdmissionNumber(t *testing.T) {
	ctx := context.Background()
	s := NewStudents(docstore.NewMemoryStore())

	st, err := s.Admit(ctx, Student{
		AdmissionNumber: "10000001", FirstName: "Rahul",
		ClassID: "class_8", SectionID: "section_a",
	})
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	updated, err := s.Update(ctx, st.AdmissionNumber, map[string]any{
		"city":            "Hyderabad",
		"admissionNumber": "99999999",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Hyderabad" {
		t.Errorf("city = %q", updated.City)
	}
	if updated.AdmissionNumber != "10000001" {
		t.Errorf("admission number changed to %q", updated.AdmissionNumber)
	}
	if updated.FirstName != "Rahul" {
		t.Errorf("unrelated field lost: %q", updated.FirstName)
	}
}

func TestTeachersAreTeachingStaff(t *testing.T) {
	ctx := context.Background()
	s := NewStaff(docstore.NewMemoryStore())

	if _, err := s.Add(ctx, StaffMember{
		FirstName: "John", Mobile: "9000000001", StaffType: StaffTypeTeaching,
	}); err != nil {
		t.Fatalf("add teacher: %v", err)
	}
	if _, err := s.Add(ctx, StaffMember{
		FirstName: "Jane", Mobile: "9000000002", StaffType: "Admin",
	}); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	teachers, err := s.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("list teachers: %v", err)
	}
	if len(teachers) != 1 || teachers[0].FirstName != "John" {
		t.Errorf("teachers = %+v", teachers)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list staff: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("staff count = %d want 2", len(all))
	}
}
