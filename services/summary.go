package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/logging"
	"expense-tracker-go-be/models"
)

// SummaryFilter narrows a summary. Empty fields do not filter.
type SummaryFilter struct {
	StartDate string
	EndDate   string
	Category  string
}

// Summary is the income/expense aggregate over a user's transactions.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	// Transactions is how many transactions matched the filter.
	Transactions int
	// Skipped counts transactions left out of the totals because their
	// amount did not parse, or their date did not while a range was set.
	Skipped int
}

// Summary totals the income and expense of userID's transactions.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID, filter SummaryFilter) (*Summary, error) {
	var from, to *time.Time
	if v := strings.TrimSpace(filter.StartDate); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			return nil, apperror.ErrInvalidDate
		}
		from = &t
	}
	if v := strings.TrimSpace(filter.EndDate); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			return nil, apperror.ErrInvalidDate
		}
		to = &t
	}

	// stored categories are title-cased, so the filter is too
	category := TitleCase(strings.TrimSpace(filter.Category))

	txns, err := s.txns.ListByUser(ctx, userID, category)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	sum := Summarize(txns, from, to)
	if sum.Skipped > 0 {
		s.log.Warn().
			Str(logging.FieldOperation, logging.OpSummary).
			Str(logging.FieldUserID, userID.String()).
			Int(logging.FieldSkipped, sum.Skipped).
			Msg("Transactions with unparseable amount or date left out of summary")
	}
	return &sum, nil
}

// Summarize totals txns by type, keeping only those dated within the
// inclusive [from, to] range when bounds are given.
func Summarize(txns []models.Transaction, from, to *time.Time) Summary {
	var sum Summary
	for _, t := range txns {
		if from != nil || to != nil {
			d, err := ParseDate(t.Date)
			if err != nil {
				sum.Skipped++
				continue
			}
			if (from != nil && d.Before(*from)) || (to != nil && d.After(*to)) {
				continue
			}
		}

		sum.Transactions++
		amount, err := ParseAmount(strings.TrimSpace(t.Amount))
		if err != nil {
			sum.Skipped++
			continue
		}

		switch {
		case strings.EqualFold(t.Type, models.TypeIncome):
			sum.TotalIncome = sum.TotalIncome.Add(decimal.NewFromInt(amount))
		case strings.EqualFold(t.Type, models.TypeExpense):
			sum.TotalExpense = sum.TotalExpense.Add(decimal.NewFromInt(amount))
		}
	}
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpense)
	return sum
}
