package people

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const StaffTypeTeaching = "Teaching"

type StaffMember struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Mobile      string `json:"mobile"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty"`

	StaffType     string  `json:"staffType"`
	Department    string  `json:"department,omitempty"`
	Designation   string  `json:"designation,omitempty"`
	Qualification string  `json:"qualification,omitempty"`
	Experience    string  `json:"experience,omitempty"`
	JoiningDate   string  `json:"joiningDate,omitempty"`
	Salary        float64 `json:"salary,omitempty"`

	EmergencyContact     string `json:"emergencyContact,omitempty"`
	EmergencyContactName string `json:"emergencyContactName,omitempty"`
}

type Staff struct {
	store  docstore.Store
	logger *log.Entry
}

func NewStaff(store docstore.Store) *Staff {
	return &Staff{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "staff"}),
	}
}

func (s *Staff) Add(ctx context.Context, member StaffMember) (StaffMember, error) {
	if strings.TrimSpace(member.FirstName) == "" ||
		strings.TrimSpace(member.Mobile) == "" ||
		strings.TrimSpace(member.StaffType) == "" {
		return StaffMember{}, school.ErrMissingRequiredField
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if err := s.store.Upsert(ctx, docstore.CollectionStaff, member.ID, member); err != nil {
		return StaffMember{}, fmt.Errorf("saving staff member: %w", err)
	}
	s.logger.WithFields(log.Fields{"staff": member.ID, "type": member.StaffType}).Info("added staff member")
	return member, nil
}

func (s *Staff) Get(ctx context.Context, id string) (StaffMember, error) {
	doc, err := s.store.Get(ctx, docstore.CollectionStaff, id)
	if err != nil {
		return StaffMember{}, err
	}
	var member StaffMember
	if err := doc.Decode(&member); err != nil {
		return StaffMember{}, fmt.Errorf("decoding staff member %s: %w", id, err)
	}
	return member, nil
}

func (s *Staff) List(ctx context.Context) ([]StaffMember, error) {
	docs, err := s.store.ListAll(ctx, docstore.CollectionStaff)
	if err != nil {
		return nil, err
	}
	members := make([]StaffMember, 0, len(docs))
	for _, d := range docs {
		var m StaffMember
		if err := d.Decode(&m); err != nil {
			return nil, fmt.Errorf("decoding staff member %s: %w", d.ID, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// ListTeachers is the teaching-staff view of the same collection.
func (s *Staff) ListTeachers(ctx context.Context) ([]StaffMember, error) {
	docs, err := s.store.QueryByField(ctx, docstore.CollectionStaff, "staffType", StaffTypeTeaching)
	if err != nil {
		return nil, err
	}
	members := make([]StaffMember, 0, len(docs))
	for _, d := range docs {
		var m StaffMember
		if err := d.Decode(&m); err != nil {
			return nil, fmt.Errorf("decoding staff member %s: %w", d.ID, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func (s *Staff) Update(ctx context.Context, id string, fields map[string]any) (StaffMember, error) {
	if _, err := s.store.Get(ctx, docstore.CollectionStaff, id); err != nil {
		return StaffMember{}, err
	}
	delete(fields, "id")
	if err := s.store.UpsertMerge(ctx, docstore.CollectionStaff, id, fields); err != nil {
		return StaffMember{}, fmt.Errorf("updating staff member: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Staff) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, docstore.CollectionStaff, id); err != nil {
		return fmt.Errorf("deleting staff member: %w", err)
	}
	s.logger.WithFields(log.Fields{"staff": id}).Info("deleted staff member")
	return nil
}
