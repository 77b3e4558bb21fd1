// Package timetable owns the weekly subject assignment of one class and
// section pair. The document key is "{classId}_{sectionId}" and there is at
// most one timetable per pair.
package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/edusuite/edusuite/school/ident"
	"github.com/edusuite/edusuite/school/slots"
	"github.com/edusuite/edusuite/school/subjects"
	log "github.com/sirupsen/logrus"
)

// FreePeriod is what an empty or unresolvable cell renders as. An
// assignment whose subject was deleted from the catalog degrades to this
// rather than erroring.
const FreePeriod = "Free Period"

// Schedule maps day -> slotId -> subjectId. An absent or empty subjectId
// is a free period.
type Schedule map[string]map[string]string

type Timetable struct {
	ClassID     string   `json:"classId"`
	SectionID   string   `json:"sectionId"`
	ClassName   string   `json:"className"`
	SectionName string   `json:"sectionName"`
	Schedule    Schedule `json:"schedule"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// RenderedDay is one row of the day x slot grid with subject names
// resolved for display.
type RenderedDay struct {
	Day      string            `json:"day"`
	Subjects map[string]string `json:"subjects"`
}

type Service struct {
	store    docstore.Store
	registry *slots.Registry
	catalog  *subjects.Catalog
	logger   *log.Entry
	now      func() time.Time
}

func NewService(store docstore.Store, registry *slots.Registry, catalog *subjects.Catalog) *Service {
	return &Service{
		store:    store,
		registry: registry,
		catalog:  catalog,
		logger:   log.WithFields(log.Fields{"service": "timetable"}),
		now:      time.Now,
	}
}

// Open loads the stored timetable for the pair, or returns an empty
// six-day template ready for editing. "Not found" is a valid, createable
// state, not an error.
func (s *Service) Open(ctx context.Context, classID string, sectionID string) (Timetable, error) {
	doc, err := s.store.Get(ctx, docstore.CollectionTimeTables, ident.TimetableID(classID, sectionID))
	if err == docstore.ErrNotFound {
		return Timetable{
			ClassID:   classID,
			SectionID: sectionID,
			Schedule:  emptySchedule(),
			Status:    "active",
		}, nil
	}
	if err != nil {
		return Timetable{}, err
	}

	var t Timetable
	if err := doc.Decode(&t); err != nil {
		return Timetable{}, fmt.Errorf("decoding timetable %s: %w", doc.ID, err)
	}
	if t.Schedule == nil {
		t.Schedule = emptySchedule()
	}
	return t, nil
}

// Assign sets schedule[day][slotID] to subjectID in memory; an empty
// subjectID clears the cell. The slot must exist in the registry and the
// subject must belong to the timetable's class. Nothing is persisted.
func (s *Service) Assign(ctx context.Context, t *Timetable, day string, slotID string, subjectID string) error {
	if !school.IsWeekday(day) {
		return fmt.Errorf("%w: %q", school.ErrUnknownDay, day)
	}
	ok, err := s.registry.Exists(ctx, slotID)
	if err != nil {
		return fmt.Errorf("checking slot %s: %w", slotID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", school.ErrUnknownSlot, slotID)
	}

	if t.Schedule == nil {
		t.Schedule = emptySchedule()
	}
	if subjectID == "" {
		delete(t.Schedule[day], slotID)
		return nil
	}

	subject, err := s.catalog.Get(ctx, subjectID)
	if err == docstore.ErrNotFound {
		return fmt.Errorf("%w: %q", school.ErrSubjectNotInClass, subjectID)
	}
	if err != nil {
		return fmt.Errorf("checking subject %s: %w", subjectID, err)
	}
	if subject.ClassID != t.ClassID {
		return fmt.Errorf("%w: %s belongs to %s", school.ErrSubjectNotInClass, subjectID, subject.ClassID)
	}

	if t.Schedule[day] == nil {
		t.Schedule[day] = make(map[string]string)
	}
	t.Schedule[day][slotID] = subjectID
	return nil
}

// Create persists a new timetable. The (class, section) pair is the
// uniqueness key; an existing document is never mutated on conflict.
func (s *Service) Create(ctx context.Context, t Timetable) (Timetable, error) {
	if t.ClassID == "" || t.SectionID == "" {
		return Timetable{}, school.ErrMissingRequiredField
	}
	id := ident.TimetableID(t.ClassID, t.SectionID)

	_, err := s.store.Get(ctx, docstore.CollectionTimeTables, id)
	if err == nil {
		return Timetable{}, school.ErrDuplicateTimetable
	}
	if err != docstore.ErrNotFound {
		return Timetable{}, err
	}

	if t.Schedule == nil {
		t.Schedule = emptySchedule()
	}
	now := s.now().UTC().Format(time.RFC3339)
	t.Status = "active"
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.store.Upsert(ctx, docstore.CollectionTimeTables, id, t); err != nil {
		return Timetable{}, fmt.Errorf("saving timetable: %w", err)
	}
	s.logger.WithFields(log.Fields{"timetable": id}).Info("created timetable")
	return t, nil
}

// Save merges a revised schedule over the stored document. A submitted day
// fully replaces that day's prior assignments; days absent from the
// submitted map are left untouched. Partial edits to one day never clobber
// the others.
func (s *Service) Save(ctx context.Context, classID string, sectionID string, revised Schedule) (Timetable, error) {
	id := ident.TimetableID(classID, sectionID)
	doc, err := s.store.Get(ctx, docstore.CollectionTimeTables, id)
	if err != nil {
		return Timetable{}, err
	}
	var t Timetable
	if err := doc.Decode(&t); err != nil {
		return Timetable{}, fmt.Errorf("decoding timetable %s: %w", id, err)
	}
	if t.Schedule == nil {
		t.Schedule = make(Schedule)
	}

	for day, assignments := range revised {
		if !school.IsWeekday(day) {
			return Timetable{}, fmt.Errorf("%w: %q", school.ErrUnknownDay, day)
		}
		t.Schedule[day] = assignments
	}
	t.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.store.UpsertMerge(ctx, docstore.CollectionTimeTables, id, map[string]any{
		"schedule":  t.Schedule,
		"updatedAt": t.UpdatedAt,
	}); err != nil {
		return Timetable{}, fmt.Errorf("saving timetable: %w", err)
	}
	s.logger.WithFields(log.Fields{"timetable": id}).Info("updated timetable")
	return t, nil
}

func (s *Service) Delete(ctx context.Context, classID string, sectionID string) error {
	id := ident.TimetableID(classID, sectionID)
	if err := s.store.Delete(ctx, docstore.CollectionTimeTables, id); err != nil {
		return fmt.Errorf("deleting timetable: %w", err)
	}
	s.logger.WithFields(log.Fields{"timetable": id}).Info("deleted timetable")
	return nil
}

func (s *Service) List(ctx context.Context) ([]Timetable, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionTimeTables)
	if err != nil {
		return nil, err
	}
	out := make([]Timetable, 0, len(docs))
	for _, d := range docs {
		var t Timetable
		if err := d.Decode(&t); err != nil {
			return nil, fmt.Errorf("decoding timetable %s: %w", d.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Render projects the timetable into display rows: every weekday crossed
// with every registered slot, each cell resolved to the subject's display
// name. Empty cells and references to subjects no longer in the catalog
// both come out as FreePeriod.
func (s *Service) Render(ctx context.Context, t Timetable) ([]RenderedDay, error) {
	registered, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading slots: %w", err)
	}
	catalog, err := s.catalog.ListForClass(ctx, t.ClassID)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	names := make(map[string]string, len(catalog))
	for _, sub := range catalog {
		names[sub.SubjectCode] = sub.SubjectName
	}

	rows := make([]RenderedDay, 0, len(school.Weekdays))
	for _, day := range school.Weekdays {
		row := RenderedDay{Day: day, Subjects: make(map[string]string, len(registered))}
		for _, slot := range registered {
			subjectID := t.Schedule[day][slot.SlotID]
			name, ok := names[subjectID]
			if subjectID == "" || !ok {
				name = FreePeriod
			}
			row.Subjects[slot.SlotID] = name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func emptySchedule() Schedule {
	schedule := make(Schedule, len(school.Weekdays))
	for _, day := range school.Weekdays {
		schedule[day] = make(map[string]string)
	}
	return schedule
}
