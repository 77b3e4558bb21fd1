package exams

import (
	"context"
	"testing"

	"github.com/edusuite/edusuite/data/docstore"
)

func TestResultPercentage(t *testing.T) {
	r := Result{TotalMarks: 80, MarksObtained: 60}
	if got := r.Percentage(); got != 75 {
		t.Errorf("percentage = %v want 75", got)
	}
	zero := Result{}
	if got := zero.Percentage(); got != 0 {
		t.Errorf("zero total marks percentage = %v", got)
	}
}

func TestResultValidation(t *testing.T) {
	ctx := context.Background()
	s := NewService(docstore.NewMemoryStore())

	if _, err := s.AddResult(ctx, Result{
		StudentName: "Rahul Sharma", ExamName: "Midterm",
		TotalMarks: 50, MarksObtained: 60,
	}); err == nil {
		t.Error("marks above total accepted")
	}

	added, err := s.AddResult(ctx, Result{
		StudentName: "Rahul Sharma", ExamName: "Midterm",
		SubjectCode: "CLS10_MAT", TotalMarks: 50, MarksObtained: 45,
	})
	if err != nil {
		t.Fatalf("add result: %v", err)
	}
	if added.ID == "" {
		t.Error("result id not generated")
	}

	results, err := s.ListResults(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d want 1", len(results))
	}
}

func TestExamCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewService(docstore.NewMemoryStore())

	if _, err := s.CreateExam(ctx, Exam{Name: "Midterm"}); err == nil {
		t.Error("exam without subject/class accepted")
	}

	exam, err := s.CreateExam(ctx, Exam{
		Name: "Midterm", SubjectCode: "CLS10_MAT", ClassID: "CLS10", Date: "2026-03-10",
	})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if err := s.DeleteExam(ctx, exam.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exams, _ := s.ListExams(ctx)
	if len(exams) != 0 {
		t.Errorf("%d exams remain", len(exams))
	}
}
