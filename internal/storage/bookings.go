package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"crud-apps/internal/models"
)

// insertWithinCapacity inserts a booking only while the confirmed quantity of
// its event plus the new quantity still fits the venue capacity. The check and
// the insert are one statement, so concurrent bookings cannot oversell.
const insertWithinCapacity = `
INSERT INTO bookings (event_id, ticket_type_id, customer_name, customer_email,
	quantity, total_amount, status, booking_date, confirmation_code)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
WHERE (SELECT COALESCE(SUM(quantity), 0) FROM bookings WHERE event_id = ? AND status = ?) + ? <= ?
RETURNING id`

// CreateBooking inserts b unless it would push the event past capacity, in
// which case models.ErrCapacityExceeded is returned.
func (db *DB) CreateBooking(ctx context.Context, b *models.Booking, capacity int) error {
	err := db.bun.NewRaw(insertWithinCapacity,
		b.EventID, b.TicketTypeID, b.CustomerName, b.CustomerEmail,
		b.Quantity, b.TotalAmount, b.Status, b.BookingDate, b.ConfirmationCode,
		b.EventID, models.BookingStatusConfirmed, b.Quantity, capacity,
	).Scan(ctx, &b.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrCapacityExceeded
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func withBookingRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Event").Relation("Event.Venue").Relation("TicketType")
}

// GetBooking returns the booking with its event, venue and ticket type.
func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return getBooking(ctx, db.bun, id)
}

func getBooking(ctx context.Context, idb bun.IDB, id int64) (*models.Booking, error) {
	b := new(models.Booking)
	if err := withBookingRelations(idb.NewSelect().Model(b)).Where("b.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, models.ErrBookingNotFound)
	}
	return b, nil
}

func (db *DB) listBookings(ctx context.Context, where string, args ...any) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	q := withBookingRelations(db.bun.NewSelect().Model(&bookings))
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.OrderExpr("b.id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (db *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return db.listBookings(ctx, "")
}

func (db *DB) ListEventBookings(ctx context.Context, eventID int64) ([]models.Booking, error) {
	return db.listBookings(ctx, "b.event_id = ?", eventID)
}

func (db *DB) ListTicketTypeBookings(ctx context.Context, ticketTypeID int64) ([]models.Booking, error) {
	return db.listBookings(ctx, "b.ticket_type_id = ?", ticketTypeID)
}

// SearchBookings matches the filters as substrings of the event, venue and
// ticket type names. SQLite's LIKE folds case for ASCII letters only.
// Bookings whose event, venue or ticket type no longer exists never match.
func (db *DB) SearchBookings(ctx context.Context, s models.BookingSearch) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	q := withBookingRelations(db.bun.NewSelect().Model(&bookings)).
		Where("event.id IS NOT NULL").
		Where("event__venue.id IS NOT NULL").
		Where("ticket_type.id IS NOT NULL")
	if s.Event != "" {
		q = q.Where("event.name LIKE ?", contains(s.Event))
	}
	if s.Venue != "" {
		q = q.Where("event__venue.name LIKE ?", contains(s.Venue))
	}
	if s.TicketType != "" {
		q = q.Where("ticket_type.name LIKE ?", contains(s.TicketType))
	}
	if err := q.OrderExpr("b.id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	return bookings, nil
}

func contains(s string) string {
	return "%" + s + "%"
}

// UpdateBooking applies the patch. A new quantity is priced at the ticket
// type's current price. Capacity is not re-checked.
func (db *DB) UpdateBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error) {
	var updated *models.Booking
	err := db.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		b := new(models.Booking)
		if err := tx.NewSelect().Model(b).Where("b.id = ?", id).Scan(ctx); err != nil {
			return notFound(err, models.ErrBookingNotFound)
		}

		var price float64
		if patch.Quantity != nil {
			tt := new(models.TicketType)
			if err := tx.NewSelect().Model(tt).Where("tt.id = ?", b.TicketTypeID).Scan(ctx); err != nil {
				return notFound(err, models.ErrTicketTypeNotFound)
			}
			price = tt.Price
		}
		patch.Apply(b, price)

		_, err := tx.NewUpdate().
			Model(b).
			Column("customer_name", "customer_email", "quantity", "total_amount").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		updated, err = getBooking(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateBookingStatus sets the status without any transition rules.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error) {
	res, err := db.bun.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, models.ErrBookingNotFound
	}
	return db.GetBooking(ctx, id)
}

func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	res, err := db.bun.NewDelete().Model((*models.Booking)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// ConfirmedQuantity sums the tickets of the event's confirmed bookings.
func (db *DB) ConfirmedQuantity(ctx context.Context, eventID int64) (int, error) {
	var total int
	err := db.bun.NewSelect().
		Model((*models.Booking)(nil)).
		ColumnExpr("COALESCE(SUM(b.quantity), 0)").
		Where("b.event_id = ?", eventID).
		Where("b.status = ?", models.BookingStatusConfirmed).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("confirmed quantity: %w", err)
	}
	return total, nil
}

// ConfirmedQuantityAtVenue sums the confirmed tickets across every event held at the venue.
func (db *DB) ConfirmedQuantityAtVenue(ctx context.Context, venueID int64) (int, error) {
	var total int
	err := db.bun.NewSelect().
		Model((*models.Booking)(nil)).
		ColumnExpr("COALESCE(SUM(b.quantity), 0)").
		Join("JOIN events AS ev ON ev.id = b.event_id").
		Where("ev.venue_id = ?", venueID).
		Where("b.status = ?", models.BookingStatusConfirmed).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("confirmed quantity at venue: %w", err)
	}
	return total, nil
}

// EventRevenue aggregates the event's bookings. Only confirmed bookings
// contribute revenue. EventName is left for the caller.
func (db *DB) EventRevenue(ctx context.Context, eventID int64) (*models.EventRevenue, error) {
	rev := &models.EventRevenue{EventID: eventID}
	err := db.bun.NewSelect().
		Model((*models.Booking)(nil)).
		ColumnExpr("TOTAL(CASE WHEN b.status = ? THEN b.total_amount END)", models.BookingStatusConfirmed).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COALESCE(SUM(CASE WHEN b.status = ? THEN 1 ELSE 0 END), 0)", models.BookingStatusConfirmed).
		Where("b.event_id = ?", eventID).
		Scan(ctx, &rev.TotalRevenue, &rev.TotalBookings, &rev.ConfirmedBookings)
	if err != nil {
		return nil, fmt.Errorf("event revenue: %w", err)
	}
	return rev, nil
}
