package storage

import (
	"context"
	"fmt"

	"crud-apps/internal/models"
)

func (db *DB) CreateTicketType(ctx context.Context, t *models.TicketType) error {
	if _, err := db.bun.NewInsert().Model(t).Exec(ctx); err != nil {
		return fmt.Errorf("insert ticket type: %w", err)
	}
	return nil
}

func (db *DB) GetTicketType(ctx context.Context, id int64) (*models.TicketType, error) {
	t := new(models.TicketType)
	if err := db.bun.NewSelect().Model(t).Where("tt.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, models.ErrTicketTypeNotFound)
	}
	return t, nil
}

func (db *DB) ListTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	types := make([]models.TicketType, 0)
	if err := db.bun.NewSelect().Model(&types).OrderExpr("tt.id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	return types, nil
}

func (db *DB) DeleteTicketType(ctx context.Context, id int64) error {
	res, err := db.bun.NewDelete().Model((*models.TicketType)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete ticket type: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrTicketTypeNotFound
	}
	return nil
}
