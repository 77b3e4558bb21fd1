// Package slots maintains the set of reusable named time intervals that
// every timetable is built against.
package slots

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/edusuite/edusuite/school/ident"
	log "github.com/sirupsen/logrus"
)

type SlotType string

const (
	TypeAcademic SlotType = "Academic"
	TypeBreak    SlotType = "Break"
	TypeLunch    SlotType = "Lunch"
	TypeAssembly SlotType = "Assembly"
	TypeActivity SlotType = "Activity"
	TypeStudy    SlotType = "Study"
	TypeOther    SlotType = "Other"
)

var slotTypes = map[SlotType]bool{
	TypeAcademic: true,
	TypeBreak:    true,
	TypeLunch:    true,
	TypeAssembly: true,
	TypeActivity: true,
	TypeStudy:    true,
	TypeOther:    true,
}

type Slot struct {
	SlotID      string   `json:"slotId"`
	SlotName    string   `json:"slotName"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Duration    string   `json:"duration"`
	Type        SlotType `json:"type"`
	Description string   `json:"description,omitempty"`
}

type CreateParams struct {
	Name        string
	StartTime   string
	EndTime     string
	Type        SlotType
	Description string
}

type Registry struct {
	store  docstore.Store
	logger *log.Entry
}

func NewRegistry(store docstore.Store) *Registry {
	return &Registry{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "slots"}),
	}
}

// Create validates the interval against every stored slot before anything
// is written. Intervals are half-open [start, end) so adjacent slots do
// not conflict.
func (r *Registry) Create(ctx context.Context, params CreateParams) (Slot, error) {
	if strings.TrimSpace(params.Name) == "" || params.StartTime == "" || params.EndTime == "" || params.Type == "" {
		return Slot{}, school.ErrMissingRequiredField
	}
	if !slotTypes[params.Type] {
		return Slot{}, fmt.Errorf("%w: unknown slot type %q", school.ErrInvalidInput, params.Type)
	}

	start, err := ident.ParseClock(params.StartTime)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", school.ErrInvalidInput, err)
	}
	end, err := ident.ParseClock(params.EndTime)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %v", school.ErrInvalidInput, err)
	}
	if end <= start {
		return Slot{}, school.ErrInvalidRange
	}

	existing, err := r.List(ctx)
	if err != nil {
		return Slot{}, fmt.Errorf("loading slots: %w", err)
	}

	// the overlap scan runs over every stored slot before the duplicate
	// check; a clashing interval always reports the conflict even when
	// the two names derive the same id
	for _, s := range existing {
		sStart, err := ident.ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		sEnd, err := ident.ParseClock(s.EndTime)
		if err != nil {
			continue
		}
		if start < sEnd && end > sStart {
			return Slot{}, fmt.Errorf("%w: %s (%s - %s)",
				school.ErrOverlapConflict, s.SlotName, s.StartTime, s.EndTime)
		}
	}

	slotID := ident.SlotID(params.Name, params.StartTime)
	for _, s := range existing {
		if s.SlotID == slotID || strings.EqualFold(s.SlotName, params.Name) {
			return Slot{}, school.ErrDuplicateSlot
		}
	}

	slot := Slot{
		SlotID:      slotID,
		SlotName:    strings.TrimSpace(params.Name),
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Duration:    ident.Duration(params.StartTime, params.EndTime),
		Type:        params.Type,
		Description: strings.TrimSpace(params.Description),
	}
	if err := r.store.Upsert(ctx, docstore.CollectionSlots, slot.SlotID, slot); err != nil {
		return Slot{}, fmt.Errorf("saving slot: %w", err)
	}
	r.logger.WithFields(log.Fields{"slot": slot.SlotID, "type": slot.Type}).Info("created slot")
	return slot, nil
}

// Get returns docstore.ErrNotFound for an unknown id.
func (r *Registry) Get(ctx context.Context, slotID string) (Slot, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionSlots, slotID)
	if err != nil {
		return Slot{}, err
	}
	var slot Slot
	if err := doc.Decode(&slot); err != nil {
		return Slot{}, fmt.Errorf("decoding slot %s: %w", slotID, err)
	}
	return slot, nil
}

func (r *Registry) Exists(ctx context.Context, slotID string) (bool, error) {
	_, err := r.store.Get(ctx, docstore.CollectionSlots, slotID)
	if err == docstore.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns every slot ordered by start time.
func (r *Registry) List(ctx context.Context) ([]Slot, error) {
	docs, err := r.store.ListAll(ctx, docstore.CollectionSlots)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0, len(docs))
	for _, d := range docs {
		var s Slot
		if err := d.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding slot %s: %w", d.ID, err)
		}
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

// Delete removes the slot unconditionally. Timetables that still reference
// the id are left with dangling cells which render as free periods.
func (r *Registry) Delete(ctx context.Context, slotID string) error {
	if err := r.store.Delete(ctx, docstore.CollectionSlots, slotID); err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	r.logger.WithFields(log.Fields{"slot": slotID}).Info("deleted slot")
	return nil
}
