// Package people manages student and staff records.
package people

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	log "github.com/sirupsen/logrus"
)

// Student is the flat admission record; the admission number is the
// document key.
type Student struct {
	AdmissionNumber string `json:"admissionNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	Gender          string `json:"gender,omitempty"`
	BloodGroup      string `json:"bloodGroup,omitempty"`
	Religion        string `json:"religion,omitempty"`
	Nationality     string `json:"nationality,omitempty"`

	ClassID        string `json:"classId"`
	ClassName      string `json:"className,omitempty"`
	SectionID      string `json:"sectionId"`
	SectionName    string `json:"sectionName,omitempty"`
	RollNumber     string `json:"rollNumber,omitempty"`
	AdmissionDate  string `json:"admissionDate,omitempty"`
	AcademicYear   string `json:"academicYear,omitempty"`
	PreviousSchool string `json:"previousSchool,omitempty"`

	Email          string `json:"email,omitempty"`
	Mobile         string `json:"mobile,omitempty"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Pincode        string `json:"pincode,omitempty"`
}

type Students struct {
	store   docstore.Store
	logger  *log.Entry
	randInt func(n int) int
}

func NewStudents(store docstore.Store) *Students {
	return &Students{
		store:   store,
		logger:  log.WithFields(log.Fields{"service": "students"}),
		randInt: rand.Intn,
	}
}

// nextAdmissionNumber draws random 8-digit numbers until one is unused.
// The draw is bounded; collisions across ten million records are not a
// concern at school scale.
func (s *Students) nextAdmissionNumber(ctx context.Context) (string, error) {
	for range 20 {
		candidate := fmt.Sprintf("%08d", 10000000+s.randInt(90000000))
		_, err := s.store.Get(ctx, docstore.CollectionStudents, candidate)
		if err == docstore.ErrNotFound {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not allocate an admission number")
}

func (s *Students) Admit(ctx context.Context, student Student) (Student, error) {
	if strings.TrimSpace(student.FirstName) == "" || student.ClassID == "" || student.SectionID == "" {
		return Student{}, school.ErrMissingRequiredField
	}
	if student.AdmissionNumber == "" {
		number, err := s.nextAdmissionNumber(ctx)
		if err != nil {
			return Student{}, err
		}
		student.AdmissionNumber = number
	} else if _, err := s.store.Get(ctx, docstore.CollectionStudents, student.AdmissionNumber); err == nil {
		return Student{}, fmt.Errorf("%w: admission number %s already in use", school.ErrDuplicateRecord, student.AdmissionNumber)
	} else if err != docstore.ErrNotFound {
		return Student{}, err
	}

	if err := s.store.Upsert(ctx, docstore.CollectionStudents, student.AdmissionNumber, student); err != nil {
		return Student{}, fmt.Errorf("saving student: %w", err)
	}
	s.logger.WithFields(log.Fields{
		"admissionNumber": student.AdmissionNumber,
		"class":           student.ClassID,
	}).Info("admitted student")
	return student, nil
}

func (s *Students) Get(ctx context.Context, admissionNumber string) (Student, error) {
	doc, err := s.store.Get(ctx, docstore.CollectionStudents, admissionNumber)
	if err != nil {
		return Student{}, err
	}
	var student Student
	if err := doc.Decode(&student); err != nil {
		return Student{}, fmt.Errorf("decoding student %s: %w", admissionNumber, err)
	}
	return student, nil
}

func (s *Students) List(ctx context.Context) ([]Student, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionStudents)
	if err != nil {
		return nil, err
	}
	return decodeStudents(docs)
}

// ListForClass backs the class filter of the student roster.
func (s *Students) ListForClass(ctx context.Context, classID string) ([]Student, error) {
	docs, err := s.store.QueryByField(ctx, docstore.CollectionStudents, "classId", classID)
	if err != nil {
		return nil, err
	}
	return decodeStudents(docs)
}

// Search matches the name fields case-insensitively.
func (s *Students) Search(ctx context.Context, term string) ([]Student, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	var matched []Student
	for _, st := range all {
		full := strings.ToLower(st.FirstName + " " + st.LastName)
		if strings.Contains(full, term) {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

// Update merges edited fields over the stored record; the admission number
// never changes.
func (s *Students) Update(ctx context.Context, admissionNumber string, fields map[string]any) (Student, error) {
	if _, err := s.store.Get(ctx, docstore.CollectionStudents, admissionNumber); err != nil {
		return Student{}, err
	}
	delete(fields, "admissionNumber")
	if err := s.store.UpsertMerge(ctx, docstore.CollectionStudents, admissionNumber, fields); err != nil {
		return Student{}, fmt.Errorf("updating student: %w", err)
	}
	return s.Get(ctx, admissionNumber)
}

func (s *Students) Delete(ctx context.Context, admissionNumber string) error {
	if err := s.store.Delete(ctx, docstore.CollectionStudents, admissionNumber); err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	s.logger.WithFields(log.Fields{"admissionNumber": admissionNumber}).Info("deleted student")
	return nil
}

func decodeStudents(docs []docstore.Document) ([]Student, error) {
	students := make([]Student, 0, len(docs))
	for _, d := range docs {
		var st Student
		if err := d.Decode(&st); err != nil {
			return nil, fmt.Errorf("decoding student %s: %w", d.ID, err)
		}
		students = append(students, st)
	}
	return students, nil
}
