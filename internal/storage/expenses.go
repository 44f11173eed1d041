package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"crud-apps/internal/models"
)

// CreateExpense inserts a new expense and fills in its id.
func (db *DB) CreateExpense(ctx context.Context, e *models.Expense) error {
	if _, err := db.bun.NewInsert().Model(e).Exec(ctx); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	e := new(models.Expense)
	if err := db.bun.NewSelect().Model(e).Where("e.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, models.ErrExpenseNotFound)
	}
	return e, nil
}

// UpdateExpense merges the patch into the stored expense and returns the result.
func (db *DB) UpdateExpense(ctx context.Context, id int64, patch models.ExpensePatch) (*models.Expense, error) {
	e := new(models.Expense)
	err := db.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(e).Where("e.id = ?", id).Scan(ctx); err != nil {
			return notFound(err, models.ErrExpenseNotFound)
		}
		patch.Apply(e)
		if _, err := tx.NewUpdate().Model(e).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteExpense removes an expense by ID.
func (db *DB) DeleteExpense(ctx context.Context, id int64) error {
	res, err := db.bun.NewDelete().Model((*models.Expense)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrExpenseNotFound
	}
	return nil
}

// ListExpenses retrieves the expenses matching the filter, newest first.
func (db *DB) ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	q := db.bun.NewSelect().Model(&expenses)
	if err := filterExpenses(q, f).OrderExpr("e.date DESC, e.id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// CategoryTotals sums the filtered expenses per category, largest first.
func (db *DB) CategoryTotals(ctx context.Context, f models.ExpenseFilter) ([]models.CategoryTotal, error) {
	totals := make([]models.CategoryTotal, 0)
	q := db.bun.NewSelect().
		Model((*models.Expense)(nil)).
		ColumnExpr("e.category AS category").
		ColumnExpr("TOTAL(e.amount) AS total").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("e.category").
		OrderExpr("total DESC")
	if err := filterExpenses(q, f).Scan(ctx, &totals); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return totals, nil
}

// ExpenseTotals returns the total of the filtered expenses and the per-category breakdown.
func (db *DB) ExpenseTotals(ctx context.Context, f models.ExpenseFilter) (*models.ExpenseTotal, error) {
	var total float64
	q := db.bun.NewSelect().Model((*models.Expense)(nil)).ColumnExpr("TOTAL(e.amount)")
	if err := filterExpenses(q, f).Scan(ctx, &total); err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	rows, err := db.CategoryTotals(ctx, f)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64, len(rows))
	for _, r := range rows {
		breakdown[r.Category] = r.Total
	}
	return &models.ExpenseTotal{Total: total, Breakdown: breakdown}, nil
}

func filterExpenses(q *bun.SelectQuery, f models.ExpenseFilter) *bun.SelectQuery {
	if f.Category != "" {
		q = q.Where("e.category = ?", f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("e.date >= ?", models.NormalizeDate(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("e.date <= ?", models.NormalizeDate(*f.EndDate))
	}
	return q
}
