// Package subjects is the per-class subject catalog referenced by
// timetable cells.
package subjects

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/edusuite/edusuite/school/ident"
	log "github.com/sirupsen/logrus"
)

type SubjectType string

const (
	TypeCore     SubjectType = "Core"
	TypeLanguage SubjectType = "Language"
	TypeElective SubjectType = "Elective"
	TypeActivity SubjectType = "Activity"
)

// A subject belongs to exactly one class; the same name in a different
// class is a different subject with its own code.
type Subject struct {
	SubjectCode string      `json:"subjectCode"`
	SubjectName string      `json:"subjectName"`
	ClassID     string      `json:"classId"`
	Type        SubjectType `json:"type,omitempty"`
}

type Catalog struct {
	store  docstore.Store
	logger *log.Entry
}

func NewCatalog(store docstore.Store) *Catalog {
	return &Catalog{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "subjects"}),
	}
}

func (c *Catalog) Create(ctx context.Context, classID string, name string, subjectType SubjectType) (Subject, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(classID) == "" {
		return Subject{}, school.ErrMissingRequiredField
	}

	subject := Subject{
		SubjectCode: ident.SubjectCode(classID, name),
		SubjectName: strings.TrimSpace(name),
		ClassID:     classID,
		Type:        subjectType,
	}

	_, err := c.store.Get(ctx, docstore.CollectionSubjects, subject.SubjectCode)
	if err == nil {
		return Subject{}, fmt.Errorf("%w: subject %s", school.ErrDuplicateRecord, subject.SubjectCode)
	}
	if err != docstore.ErrNotFound {
		return Subject{}, err
	}

	if err := c.store.Upsert(ctx, docstore.CollectionSubjects, subject.SubjectCode, subject); err != nil {
		return Subject{}, fmt.Errorf("saving subject: %w", err)
	}
	c.logger.WithFields(log.Fields{"subject": subject.SubjectCode, "class": classID}).Info("created subject")
	return subject, nil
}

func (c *Catalog) Get(ctx context.Context, subjectCode string) (Subject, error) {
	doc, err := c.store.Get(ctx, docstore.CollectionSubjects, subjectCode)
	if err != nil {
		return Subject{}, err
	}
	var s Subject
	if err := doc.Decode(&s); err != nil {
		return Subject{}, fmt.Errorf("decoding subject %s: %w", subjectCode, err)
	}
	return s, nil
}

func (c *Catalog) List(ctx context.Context) ([]Subject, error) {
	docs, err := c.store.ListAll(ctx, docstore.CollectionSubjects)
	if err != nil {
		return nil, err
	}
	return decodeSubjects(docs)
}

// ListForClass returns the subjects a timetable for classID may assign.
func (c *Catalog) ListForClass(ctx context.Context, classID string) ([]Subject, error) {
	docs, err := c.store.QueryByField(ctx, docstore.CollectionSubjects, "classId", classID)
	if err != nil {
		return nil, err
	}
	return decodeSubjects(docs)
}

// Delete does not touch timetables that still reference the code; those
// cells degrade to free periods when rendered.
func (c *Catalog) Delete(ctx context.Context, subjectCode string) error {
	if err := c.store.Delete(ctx, docstore.CollectionSubjects, subjectCode); err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return nil
}

func decodeSubjects(docs []docstore.Document) ([]Subject, error) {
	subjects := make([]Subject, 0, len(docs))
	for _, d := range docs {
		var s Subject
		if err := d.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding subject %s: %w", d.ID, err)
		}
		subjects = append(subjects, s)
	}
	return subjects, nil
}
