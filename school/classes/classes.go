// Package classes manages the class and section catalogs. Sections belong
// to a class; a timetable is keyed by the pair.
package classes

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/edusuite/edusuite/school/ident"
	log "github.com/sirupsen/logrus"
)

type Class struct {
	ClassID   string `json:"classId"`
	ClassName string `json:"className"`
}

type Section struct {
	SectionID   string `json:"sectionId"`
	SectionName string `json:"sectionName"`
	ClassID     string `json:"classId"`
}

type Service struct {
	store  docstore.Store
	logger *log.Entry
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "classes"}),
	}
}

func (s *Service) CreateClass(ctx context.Context, name string) (Class, error) {
	if strings.TrimSpace(name) == "" {
		return Class{}, school.ErrMissingRequiredField
	}
	class := Class{
		ClassID:   "class_" + ident.Slug(name),
		ClassName: strings.TrimSpace(name),
	}
	if _, err := s.store.Get(ctx, docstore.CollectionClasses, class.ClassID); err == nil {
		return Class{}, fmt.Errorf("%w: class %s", school.ErrDuplicateRecord, class.ClassID)
	} else if err != docstore.ErrNotFound {
		return Class{}, err
	}
	if err := s.store.Upsert(ctx, docstore.CollectionClasses, class.ClassID, class); err != nil {
		return Class{}, fmt.Errorf("saving class: %w", err)
	}
	s.logger.WithFields(log.Fields{"class": class.ClassID}).Info("created class")
	return class, nil
}

func (s *Service) GetClass(ctx context.Context, classID string) (Class, error) {
	doc, err := s.store.Get(ctx, docstore.CollectionClasses, classID)
	if err != nil {
		return Class{}, err
	}
	var c Class
	if err := doc.Decode(&c); err != nil {
		return Class{}, fmt.Errorf("decoding class %s: %w", classID, err)
	}
	return c, nil
}

func (s *Service) ListClasses(ctx context.Context) ([]Class, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionClasses)
	if err != nil {
		return nil, err
	}
	out := make([]Class, 0, len(docs))
	for _, d := range docs {
		var c Class
		if err := d.Decode(&c); err != nil {
			return nil, fmt.Errorf("decoding class %s: %w", d.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) DeleteClass(ctx context.Context, classID string) error {
	return s.store.Delete(ctx, docstore.CollectionClasses, classID)
}

func (s *Service) CreateSection(ctx context.Context, classID string, name string) (Section, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(classID) == "" {
		return Section{}, school.ErrMissingRequiredField
	}
	if _, err := s.GetClass(ctx, classID); err != nil {
		return Section{}, fmt.Errorf("class %s: %w", classID, err)
	}
	section := Section{
		SectionID:   "section_" + ident.Slug(name),
		SectionName: strings.TrimSpace(name),
		ClassID:     classID,
	}
	if err := s.store.Upsert(ctx, docstore.CollectionSections, section.SectionID, section); err != nil {
		return Section{}, fmt.Errorf("saving section: %w", err)
	}
	s.logger.WithFields(log.Fields{"section": section.SectionID, "class": classID}).Info("created section")
	return section, nil
}

func (s *Service) GetSection(ctx context.Context, sectionID string) (Section, error) {
	doc, err := s.store.Get(ctx, docstore.CollectionSections, sectionID)
	if err != nil {
		return Section{}, err
	}
	var sec Section
	if err := doc.Decode(&sec); err != nil {
		return Section{}, fmt.Errorf("decoding section %s: %w", sectionID, err)
	}
	return sec, nil
}

func (s *Service) ListSections(ctx context.Context) ([]Section, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionSections)
	if err != nil {
		return nil, err
	}
	return decodeSections(docs)
}

// ListSectionsForClass backs the section dropdown once a class is picked.
func (s *Service) ListSectionsForClass(ctx context.Context, classID string) ([]Section, error) {
	docs, err := s.store.QueryByField(ctx, docstore.CollectionSections, "classId", classID)
	if err != nil {
		return nil, err
	}
	return decodeSections(docs)
}

func (s *Service) DeleteSection(ctx context.Context, sectionID string) error {
	return s.store.Delete(ctx, docstore.CollectionSections, sectionID)
}

func decodeSections(docs []docstore.Document) ([]Section, error) {
	sections := make([]Section, 0, len(docs))
	for _, d := range docs {
		var sec Section
		if err := d.Decode(&sec); err != nil {
			return nil, fmt.Errorf("decoding section %s: %w", d.ID, err)
		}
		sections = append(sections, sec)
	}
	return sections, nil
}
