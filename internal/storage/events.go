package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"crud-apps/internal/models"
)

// CreateEvent inserts the event after checking that its venue exists.
// On success e.Venue is populated.
func (db *DB) CreateEvent(ctx context.Context, e *models.Event) error {
	return db.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		venue := new(models.Venue)
		if err := tx.NewSelect().Model(venue).Where("v.id = ?", e.VenueID).Scan(ctx); err != nil {
			return notFound(err, models.ErrVenueNotFound)
		}
		if _, err := tx.NewInsert().Model(e).Exec(ctx); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		e.Venue = venue
		return nil
	})
}

func (db *DB) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	e := new(models.Event)
	err := db.bun.NewSelect().Model(e).Relation("Venue").Where("ev.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, notFound(err, models.ErrEventNotFound)
	}
	return e, nil
}

func (db *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := db.bun.NewSelect().Model(&events).Relation("Venue").OrderExpr("ev.id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListVenueEvents returns the events held at the venue.
func (db *DB) ListVenueEvents(ctx context.Context, venueID int64) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := db.bun.NewSelect().
		Model(&events).
		Relation("Venue").
		Where("ev.venue_id = ?", venueID).
		OrderExpr("ev.id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venue events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes the event. Bookings that reference it are left in place.
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	res, err := db.bun.NewDelete().Model((*models.Event)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
