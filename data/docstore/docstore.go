// Package docstore is the persistence boundary of the service. Every entity
// is a JSON document in a named collection keyed by a string id; callers
// marshal their own types in and out. The interface is deliberately small so
// the whole service can run against the in-memory implementation in tests.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names. The Timetable document id is "{classID}_{sectionID}",
// the Slot document id is the derived slot id.
const (
	CollectionStudents    = "Students"
	CollectionStaff       = "Staff"
	CollectionClasses     = "Classes"
	CollectionSections    = "Sections"
	CollectionSubjects    = "Subjects"
	CollectionSlots       = "Slots"
	CollectionTimeTables  = "TimeTables"
	CollectionNotices     = "Notices"
	CollectionPayrolls    = "Payrolls"
	CollectionFees        = "Fees"
	CollectionExpenses    = "Expenses"
	CollectionExams       = "Exams"
	CollectionExamResults = "ExamResults"
	CollectionAdminUsers  = "AdminUsers"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fields"`
}

// Decode unmarshals the document fields into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d.Fields, v)
}

type Store interface {
	// ListAll returns every document of a collection ordered by id.
	ListAll(ctx context.Context, collection string) ([]Document, error)

	// Get returns ErrNotFound when no document has the id.
	Get(ctx context.Context, collection string, id string) (Document, error)

	// Upsert writes fields as the full document body, replacing any
	// previous body.
	Upsert(ctx context.Context, collection string, id string, fields any) error

	// UpsertMerge overlays the top-level keys of partial onto the stored
	// body, creating the document when absent. Nested values are replaced
	// whole, not merged.
	UpsertMerge(ctx context.Context, collection string, id string, partial any) error

	Delete(ctx context.Context, collection string, id string) error

	// QueryByField returns documents whose top-level field equals value.
	QueryByField(ctx context.Context, collection string, field string, value string) ([]Document, error)
}
