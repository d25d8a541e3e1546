// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// IsIncome reports whether t is exactly income. Every other value,
// including unknown ones found in persisted data, counts as expense.
func (t TransactionType) IsIncome() bool {
	return t == TypeIncome
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Type        TransactionType
	Category    Category
	Description string
	ID          int64
}

// transactionJSON is the persisted wire shape.
type transactionJSON struct {
	Date        time.Time       `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	ID          int64           `json:"id"`
}

// MarshalJSON writes the amount as a bare JSON number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      json.RawMessage(t.Amount.String()),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	})
}

// UnmarshalJSON accepts the amount as either a number or a numeric string.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount := decimal.Zero
	if len(raw.Amount) > 0 && string(raw.Amount) != "null" {
		if err := amount.UnmarshalJSON(raw.Amount); err != nil {
			return fmt.Errorf("transaction %d: amount: %w", raw.ID, err)
		}
	}

	*t = Transaction{
		ID:          raw.ID,
		Type:        raw.Type,
		Amount:      amount,
		Category:    raw.Category,
		Description: raw.Description,
		Date:        raw.Date,
	}
	return nil
}

// Validate checks the rules every stored transaction must satisfy.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return common.NewValidationError("type", fmt.Sprintf("%q is not income or expense", t.Type))
	}
	if !t.Amount.IsPositive() {
		return common.NewValidationError("amount", fmt.Sprintf("%s must be greater than zero", t.Amount))
	}
	if !t.Category.IsValid() {
		return common.NewValidationError("category", fmt.Sprintf("%q is not a known category", t.Category))
	}
	return nil
}

// ParseAmount parses user input such as "250000" or "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, common.NewValidationError("amount", "empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.NewValidationError("amount", fmt.Sprintf("%q is not a number", s))
	}
	if !d.IsPositive() {
		return decimal.Zero, common.NewValidationError("amount", fmt.Sprintf("%s must be greater than zero", d))
	}
	return d, nil
}
