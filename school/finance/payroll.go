// Package finance covers payroll runs, student fees and expense tracking.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	log "github.com/sirupsen/logrus"
)

type PayrollEntry struct {
	EmployeeID  string  `json:"employeeId"`
	Name        string  `json:"name"`
	Role        string  `json:"role,omitempty"`
	BasicSalary float64 `json:"basicSalary"`
	Bonus       float64 `json:"bonus"`
	Deductions  float64 `json:"deductions"`
}

// Net is the take-home amount.
func (e PayrollEntry) Net() float64 {
	return e.BasicSalary + e.Bonus - e.Deductions
}

// Payroll is one saved monthly run, keyed "P001", "P002", ...
type Payroll struct {
	ID      string         `json:"id"`
	Month   string         `json:"month"` // YYYY-MM
	Entries []PayrollEntry `json:"employees"`
}

type PayrollSummary struct {
	TotalEmployees  int     `json:"totalEmployees"`
	TotalPayroll    float64 `json:"totalPayroll"`
	TotalBonus      float64 `json:"totalBonus"`
	TotalDeductions float64 `json:"totalDeductions"`
}

func Summarize(entries []PayrollEntry) PayrollSummary {
	summary := PayrollSummary{TotalEmployees: len(entries)}
	for _, e := range entries {
		summary.TotalPayroll += e.Net()
		summary.TotalBonus += e.Bonus
		summary.TotalDeductions += e.Deductions
	}
	return summary
}

type Payrolls struct {
	store  docstore.Store
	logger *log.Entry
	now    func() time.Time
}

func NewPayrolls(store docstore.Store) *Payrolls {
	return &Payrolls{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "payroll"}),
		now:    time.Now,
	}
}

// Save stores a payroll run under the next P{NNN} id for the current
// month.
func (p *Payrolls) Save(ctx context.Context, entries []PayrollEntry) (Payroll, error) {
	if len(entries) == 0 {
		return Payroll{}, school.ErrMissingRequiredField
	}
	existing, err := p.store.ListAll(ctx, docstore.CollectionPayrolls)
	if err != nil {
		return Payroll{}, err
	}
	payroll := Payroll{
		ID:      fmt.Sprintf("P%03d", len(existing)+1),
		Month:   p.now().Format("2006-01"),
		Entries: entries,
	}
	if err := p.store.Upsert(ctx, docstore.CollectionPayrolls, payroll.ID, payroll); err != nil {
		return Payroll{}, fmt.Errorf("saving payroll: %w", err)
	}
	p.logger.WithFields(log.Fields{"payroll": payroll.ID, "month": payroll.Month}).Info("saved payroll")
	return payroll, nil
}

// List returns saved runs, optionally filtered by a "YYYY-MM" month or
// "YYYY" year prefix.
func (p *Payrolls) List(ctx context.Context, monthOrYear string) ([]Payroll, error) {
	docs, err := p.store.ListAll(ctx, docstore.CollectionPayrolls)
	if err != nil {
		return nil, err
	}
	payrolls := make([]Payroll, 0, len(docs))
	for _, d := range docs {
		var run Payroll
		if err := d.Decode(&run); err != nil {
			return nil, fmt.Errorf("decoding payroll %s: %w", d.ID, err)
		}
		if monthOrYear != "" && !strings.HasPrefix(run.Month, monthOrYear) {
			continue
		}
		payrolls = append(payrolls, run)
	}
	return payrolls, nil
}
