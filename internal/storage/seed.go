package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"crud-apps/internal/models"
)

// SeedExpenses inserts a small set of sample expenses when the table is empty.
// It reports whether anything was inserted.
func (db *DB) SeedExpenses(ctx context.Context) (bool, error) {
	n, err := db.count(ctx, (*models.Expense)(nil))
	if err != nil || n > 0 {
		return false, err
	}

	samples := []models.Expense{
		{Amount: 25.50, Category: "Food", Description: "Lunch at restaurant", Date: day(2024, time.January, 15)},
		{Amount: 15.00, Category: "Transport", Description: "Bus fare", Date: day(2024, time.January, 16)},
		{Amount: 89.99, Category: "Shopping", Description: "Groceries", Date: day(2024, time.January, 17)},
		{Amount: 45.00, Category: "Entertainment", Description: "Movie tickets", Date: day(2024, time.January, 18)},
		{Amount: 120.00, Category: "Bills", Description: "Internet bill", Date: day(2024, time.January, 19)},
		{Amount: 75.00, Category: "Healthcare", Description: "Doctor visit", Date: day(2024, time.January, 20)},
	}
	if _, err := db.bun.NewInsert().Model(&samples).Exec(ctx); err != nil {
		return false, fmt.Errorf("seed expenses: %w", err)
	}
	db.log.WithField("count", len(samples)).Info("seeded sample expenses")
	return true, nil
}

// SeedBooking inserts sample venues, ticket types, events and bookings when
// no venue exists yet. It reports whether anything was inserted.
func (db *DB) SeedBooking(ctx context.Context) (bool, error) {
	n, err := db.count(ctx, (*models.Venue)(nil))
	if err != nil || n > 0 {
		return false, err
	}

	err = db.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		venues := []models.Venue{
			{Name: "Madison Square Garden", Location: "New York, NY", Capacity: 20000},
			{Name: "Hollywood Bowl", Location: "Los Angeles, CA", Capacity: 17500},
			{Name: "Red Rocks Amphitheatre", Location: "Morrison, CO", Capacity: 9525},
		}
		if _, err := tx.NewInsert().Model(&venues).Exec(ctx); err != nil {
			return fmt.Errorf("seed venues: %w", err)
		}

		types := []models.TicketType{
			{Name: models.TicketTypeVIP, Price: 199.99, Description: "VIP experience with premium seating and perks"},
			{Name: models.TicketTypeStandard, Price: 89.99, Description: "Standard seating with great view"},
			{Name: models.TicketTypeEconomy, Price: 49.99, Description: "Economy seating, budget-friendly option"},
		}
		if _, err := tx.NewInsert().Model(&types).Exec(ctx); err != nil {
			return fmt.Errorf("seed ticket types: %w", err)
		}

		events := []models.Event{
			{Name: "Rock Concert 2024", Description: "Amazing rock concert with top bands", Date: at(2024, time.June, 15, 20), VenueID: venues[0].ID},
			{Name: "Classical Music Evening", Description: "Orchestra performance", Date: at(2024, time.July, 20, 19), VenueID: venues[1].ID},
			{Name: "Jazz Festival", Description: "Annual jazz festival", Date: at(2024, time.August, 10, 18), VenueID: venues[2].ID},
		}
		if _, err := tx.NewInsert().Model(&events).Exec(ctx); err != nil {
			return fmt.Errorf("seed events: %w", err)
		}

		now := time.Now().UTC()
		bookings := make([]models.Booking, 0, 10)
		for i := range 10 {
			code, err := models.NewConfirmationCode()
			if err != nil {
				return err
			}
			tt := types[i%len(types)]
			qty := i%4 + 1
			bookings = append(bookings, models.Booking{
				EventID:          events[i%len(events)].ID,
				TicketTypeID:     tt.ID,
				CustomerName:     fmt.Sprintf("Customer %d", i+1),
				CustomerEmail:    fmt.Sprintf("customer%d@example.com", i+1),
				Quantity:         qty,
				TotalAmount:      tt.Price * float64(qty),
				Status:           models.BookingStatuses[i%len(models.BookingStatuses)],
				BookingDate:      now,
				ConfirmationCode: code,
			})
		}
		if _, err := tx.NewInsert().Model(&bookings).Exec(ctx); err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	db.log.Info("seeded sample booking data")
	return true, nil
}

func day(year int, month time.Month, d int) time.Time {
	return at(year, month, d, 0)
}

func at(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}
