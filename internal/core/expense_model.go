package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a shop expense recorded for the day.
type Expense struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewExpense is the body of POST /expenses.
type NewExpense struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ParseExpense validates the expense form. Both fields are required and
// the amount must parse as a number.
func ParseExpense(name, rawAmount string) (*NewExpense, error) {
	name = strings.TrimSpace(name)
	rawAmount = strings.TrimSpace(rawAmount)
	if name == "" || rawAmount == "" {
		return nil, ErrIncompleteExpense
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, ErrIncompleteExpense
	}
	return &NewExpense{Name: name, Amount: amount}, nil
}

// TotalExpenses sums the expense amounts.
func TotalExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
