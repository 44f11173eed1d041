package storage

import (
	"context"
	"fmt"

	"crud-apps/internal/models"
)

func (db *DB) CreateVenue(ctx context.Context, v *models.Venue) error {
	if _, err := db.bun.NewInsert().Model(v).Exec(ctx); err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

func (db *DB) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	v := new(models.Venue)
	if err := db.bun.NewSelect().Model(v).Where("v.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, models.ErrVenueNotFound)
	}
	return v, nil
}

func (db *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues := make([]models.Venue, 0)
	if err := db.bun.NewSelect().Model(&venues).OrderExpr("v.id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// DeleteVenue removes the venue. Events that reference it are left in place.
func (db *DB) DeleteVenue(ctx context.Context, id int64) error {
	res, err := db.bun.NewDelete().Model((*models.Venue)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrVenueNotFound
	}
	return nil
}
