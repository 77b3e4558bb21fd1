// Package exams manages exam schedules and result entry.
package exams

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Exam struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SubjectCode string `json:"subjectCode"`
	ClassID     string `json:"classId"`
	SectionID   string `json:"sectionId,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
}

type Result struct {
	ID            string  `json:"id"`
	StudentName   string  `json:"studentName"`
	ExamName      string  `json:"examName"`
	SubjectCode   string  `json:"subjectCode"`
	TotalMarks    float64 `json:"totalMarks"`
	MarksObtained float64 `json:"marksObtained"`
	Date          string  `json:"date,omitempty"`
}

// Percentage is 0 when total marks is 0.
func (r Result) Percentage() float64 {
	if r.TotalMarks == 0 {
		return 0
	}
	return r.MarksObtained / r.TotalMarks * 100
}

type Service struct {
	store  docstore.Store
	logger *log.Entry
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "exams"}),
	}
}

func (s *Service) CreateExam(ctx context.Context, exam Exam) (Exam, error) {
	if strings.TrimSpace(exam.Name) == "" || exam.SubjectCode == "" || exam.ClassID == "" {
		return Exam{}, school.ErrMissingRequiredField
	}
	if exam.ID == "" {
		exam.ID = uuid.New().String()
	}
	if err := s.store.Upsert(ctx, docstore.CollectionExams, exam.ID, exam); err != nil {
		return Exam{}, fmt.Errorf("saving exam: %w", err)
	}
	s.logger.WithFields(log.Fields{"exam": exam.ID, "class": exam.ClassID}).Info("created exam")
	return exam, nil
}

func (s *Service) ListExams(ctx context.Context) ([]Exam, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionExams)
	if err != nil {
		return nil, err
	}
	exams := make([]Exam, 0, len(docs))
	for _, d := range docs {
		var e Exam
		if err := d.Decode(&e); err != nil {
			return nil, fmt.Errorf("decoding exam %s: %w", d.ID, err)
		}
		exams = append(exams, e)
	}
	return exams, nil
}

func (s *Service) DeleteExam(ctx context.Context, id string) error {
	return s.store.Delete(ctx, docstore.CollectionExams, id)
}

func (s *Service) AddResult(ctx context.Context, result Result) (Result, error) {
	if strings.TrimSpace(result.StudentName) == "" || result.ExamName == "" {
		return Result{}, school.ErrMissingRequiredField
	}
	if result.TotalMarks <= 0 || result.MarksObtained < 0 || result.MarksObtained > result.TotalMarks {
		return Result{}, fmt.Errorf("%w: marks out of range", school.ErrInvalidInput)
	}
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if err := s.store.Upsert(ctx, docstore.CollectionExamResults, result.ID, result); err != nil {
		return Result{}, fmt.Errorf("saving result: %w", err)
	}
	return result, nil
}

func (s *Service) ListResults(ctx context.Context) ([]Result, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionExamResults)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		var r Result
		if err := d.Decode(&r); err != nil {
			return nil, fmt.Errorf("decoding result %s: %w", d.ID, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) DeleteResult(ctx context.Context, id string) error {
	return s.store.Delete(ctx, docstore.CollectionExamResults, id)
}
