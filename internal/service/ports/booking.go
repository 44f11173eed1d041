package ports

import (
	"context"

	"crud-apps/internal/models"
)

type BookingRepo interface {
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	GetTicketType(ctx context.Context, id int64) (*models.TicketType, error)

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking, capacity int) error
	UpdateBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error

	ConfirmedQuantity(ctx context.Context, eventID int64) (int, error)
	ConfirmedQuantityAtVenue(ctx context.Context, venueID int64) (int, error)
	EventRevenue(ctx context.Context, eventID int64) (*models.EventRevenue, error)
}
