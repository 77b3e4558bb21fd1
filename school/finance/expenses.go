package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	log "github.com/sirupsen/logrus"
)

// Expense is a school outgoing, keyed "E001", "E002", ...
type Expense struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Amount   float64 `json:"amount"`
	Paid     float64 `json:"paid"`
	Date     string  `json:"date"` // YYYY-MM-DD
}

type ExpenseSummary struct {
	TotalExpenses float64 `json:"totalExpenses"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalPending  float64 `json:"totalPending"`
	AverageAmount float64 `json:"averageAmount"`
}

type Expenses struct {
	store  docstore.Store
	logger *log.Entry
}

func NewExpenses(store docstore.Store) *Expenses {
	return &Expenses{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "expenses"}),
	}
}

func (e *Expenses) Add(ctx context.Context, expense Expense) (Expense, error) {
	if strings.TrimSpace(expense.Name) == "" || expense.Date == "" {
		return Expense{}, school.ErrMissingRequiredField
	}
	if expense.Amount < 0 || expense.Paid < 0 || expense.Paid > expense.Amount {
		return Expense{}, fmt.Errorf("%w: expense amounts", school.ErrInvalidInput)
	}
	if expense.ID == "" {
		existing, err := e.store.ListAll(ctx, docstore.CollectionExpenses)
		if err != nil {
			return Expense{}, err
		}
		// next id comes from the highest stored sequence, not the count,
		// so a deleted record never has its id handed out again
		next := 1
		for _, d := range existing {
			var n int
			if _, err := fmt.Sscanf(d.ID, "E%d", &n); err == nil && n >= next {
				next = n + 1
			}
		}
		expense.ID = fmt.Sprintf("E%03d", next)
	}
	if err := e.store.Upsert(ctx, docstore.CollectionExpenses, expense.ID, expense); err != nil {
		return Expense{}, fmt.Errorf("saving expense: %w", err)
	}
	e.logger.WithFields(log.Fields{"expense": expense.ID, "amount": expense.Amount}).Info("added expense")
	return expense, nil
}

// List filters by a "YYYY-MM" month prefix when given.
func (e *Expenses) List(ctx context.Context, month string) ([]Expense, error) {
	docs, err := e.store.ListAll(ctx, docstore.CollectionExpenses)
	if err != nil {
		return nil, err
	}
	expenses := make([]Expense, 0, len(docs))
	for _, d := range docs {
		var exp Expense
		if err := d.Decode(&exp); err != nil {
			return nil, fmt.Errorf("decoding expense %s: %w", d.ID, err)
		}
		if month != "" && !strings.HasPrefix(exp.Date, month) {
			continue
		}
		expenses = append(expenses, exp)
	}
	return expenses, nil
}

func SummarizeExpenses(expenses []Expense) ExpenseSummary {
	var summary ExpenseSummary
	for _, exp := range expenses {
		summary.TotalExpenses += exp.Amount
		summary.TotalPaid += exp.Paid
	}
	summary.TotalPending = summary.TotalExpenses - summary.TotalPaid
	if len(expenses) > 0 {
		summary.AverageAmount = summary.TotalExpenses / float64(len(expenses))
	}
	return summary
}

func (e *Expenses) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, docstore.CollectionExpenses, id)
}
