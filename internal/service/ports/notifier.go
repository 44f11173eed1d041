package ports

import (
	"context"

	"crud-apps/internal/models"
)

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *models.Booking)
	NotifyStatusChanged(ctx context.Context, b *models.Booking, previous models.BookingStatus)
}
