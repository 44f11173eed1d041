package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Categories lists the accepted expense categories in display order.
var Categories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Healthcare", "Other"}

// Expense represents a financial expense record.
type Expense struct {
	bun.BaseModel `bun:"table:expenses,alias:e"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Amount      float64   `bun:"amount,notnull" json:"amount"`
	Category    string    `bun:"category,notnull" json:"category"`
	Description string    `bun:"description,notnull" json:"description"`
	Date        time.Time `bun:"date,notnull" json:"date"`
}

// ExpenseInput is the payload accepted when creating an expense.
type ExpenseInput struct {
	Amount      float64   `json:"amount" validate:"gt=0"`
	Category    string    `json:"category" validate:"required,oneof=Food Transport Entertainment Shopping Bills Healthcare Other"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date"`
}

func (in ExpenseInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return Invalid("date is required")
	}
	return nil
}

// Expense builds the record to persist. Call Validate first.
func (in ExpenseInput) Expense() *Expense {
	return &Expense{
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        NormalizeDate(in.Date),
	}
}

// ExpensePatch carries the fields of a partial update; nil means unchanged.
type ExpensePatch struct {
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Category    *string    `json:"category" validate:"omitempty,oneof=Food Transport Entertainment Shopping Bills Healthcare Other"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Date        *time.Time `json:"date"`
}

func (p ExpensePatch) Validate() error {
	return validateStruct(p)
}

// Apply merges the provided fields into e.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = NormalizeDate(*p.Date)
	}
}

// ExpenseFilter narrows expense listings and totals. Date bounds are inclusive.
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryTotal is one row of a per-category aggregation.
type CategoryTotal struct {
	Category string  `bun:"category"`
	Total    float64 `bun:"total"`
	Count    int     `bun:"count"`
}

// ExpenseTotal is the sum of a filtered expense set plus its per-category breakdown.
type ExpenseTotal struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// IsCategory reports whether c is one of the accepted categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// NormalizeDate drops the time of day so that inclusive date bounds compare
// correctly in storage.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
