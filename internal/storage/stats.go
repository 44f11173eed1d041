package storage

import (
	"context"
	"fmt"

	"crud-apps/internal/models"
)

// BookingStats summarizes every booking plus the event and venue counts.
func (db *DB) BookingStats(ctx context.Context) (*models.BookingStats, error) {
	stats := new(models.BookingStats)
	err := db.bun.NewSelect().
		Model((*models.Booking)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("TOTAL(CASE WHEN b.status = ? THEN b.total_amount END)", models.BookingStatusConfirmed).
		ColumnExpr("COALESCE(SUM(CASE WHEN b.status = ? THEN 1 ELSE 0 END), 0)", models.BookingStatusConfirmed).
		ColumnExpr("COALESCE(SUM(CASE WHEN b.status = ? THEN 1 ELSE 0 END), 0)", models.BookingStatusPending).
		ColumnExpr("COALESCE(SUM(CASE WHEN b.status = ? THEN 1 ELSE 0 END), 0)", models.BookingStatusCancelled).
		Scan(ctx,
			&stats.TotalBookings,
			&stats.TotalRevenue,
			&stats.ConfirmedBookings,
			&stats.PendingBookings,
			&stats.CancelledBookings,
		)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}

	if stats.TotalEvents, err = db.count(ctx, (*models.Event)(nil)); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if stats.TotalVenues, err = db.count(ctx, (*models.Venue)(nil)); err != nil {
		return nil, fmt.Errorf("count venues: %w", err)
	}
	return stats, nil
}
