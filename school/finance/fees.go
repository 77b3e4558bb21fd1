package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	log "github.com/sirupsen/logrus"
)

// FeeRecord tracks one student's fee position; keyed by admission number.
type FeeRecord struct {
	AdmissionNumber string  `json:"admissionNumber"`
	StudentName     string  `json:"studentName"`
	ClassID         string  `json:"classId"`
	Total           float64 `json:"total"`
	Paid            float64 `json:"paid"`
}

func (f FeeRecord) Pending() float64 {
	return f.Total - f.Paid
}

type FeeSummary struct {
	TotalStudents int     `json:"totalStudents"`
	TotalFees     float64 `json:"totalFees"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalPending  float64 `json:"totalPending"`
}

type ClassFeeSummary struct {
	ClassID string  `json:"classId"`
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

type Fees struct {
	store  docstore.Store
	logger *log.Entry
}

func NewFees(store docstore.Store) *Fees {
	return &Fees{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "fees"}),
	}
}

func (f *Fees) Upsert(ctx context.Context, record FeeRecord) (FeeRecord, error) {
	if record.AdmissionNumber == "" || strings.TrimSpace(record.StudentName) == "" {
		return FeeRecord{}, school.ErrMissingRequiredField
	}
	if record.Paid > record.Total {
		return FeeRecord{}, fmt.Errorf("%w: paid amount exceeds total fees", school.ErrInvalidInput)
	}
	if err := f.store.Upsert(ctx, docstore.CollectionFees, record.AdmissionNumber, record); err != nil {
		return FeeRecord{}, fmt.Errorf("saving fee record: %w", err)
	}
	return record, nil
}

// List filters by class and a case-insensitive name search; empty
// arguments match everything.
func (f *Fees) List(ctx context.Context, classID string, search string) ([]FeeRecord, error) {
	docs, err := f.store.ListAll(ctx, docstore.CollectionFees)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	records := make([]FeeRecord, 0, len(docs))
	for _, d := range docs {
		var r FeeRecord
		if err := d.Decode(&r); err != nil {
			return nil, fmt.Errorf("decoding fee record %s: %w", d.ID, err)
		}
		if classID != "" && r.ClassID != classID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.StudentName), search) {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func SummarizeFees(records []FeeRecord) FeeSummary {
	summary := FeeSummary{TotalStudents: len(records)}
	for _, r := range records {
		summary.TotalFees += r.Total
		summary.TotalPaid += r.Paid
	}
	summary.TotalPending = summary.TotalFees - summary.TotalPaid
	return summary
}

// SummarizeByClass aggregates the records class-wise, in first-seen order.
func SummarizeByClass(records []FeeRecord) []ClassFeeSummary {
	index := make(map[string]int)
	var summaries []ClassFeeSummary
	for _, r := range records {
		i, ok := index[r.ClassID]
		if !ok {
			i = len(summaries)
			index[r.ClassID] = i
			summaries = append(summaries, ClassFeeSummary{ClassID: r.ClassID})
		}
		summaries[i].Total += r.Total
		summaries[i].Paid += r.Paid
		summaries[i].Pending += r.Pending()
	}
	return summaries
}

func (f *Fees) Delete(ctx context.Context, admissionNumber string) error {
	return f.store.Delete(ctx, docstore.CollectionFees, admissionNumber)
}
