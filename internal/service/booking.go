package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"crud-apps/internal/models"
	"crud-apps/internal/service/ports"
)

// BookingService holds the booking rules: capacity, pricing and the
// derived ticket, revenue and occupancy figures.
type BookingService struct {
	repo     ports.BookingRepo
	notifier ports.BookingNotifier
	log      logrus.FieldLogger

	now     func() time.Time
	newCode func() (string, error)
}

func NewBookingService(repo ports.BookingRepo, notifier ports.BookingNotifier, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newCode:  models.NewConfirmationCode,
	}
}

// CreateBooking prices and persists a pending booking. The event and ticket
// type must exist, and the event's confirmed tickets plus the requested
// quantity must fit the venue.
func (s *BookingService) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	tt, err := s.repo.GetTicketType(ctx, in.TicketTypeID)
	if err != nil {
		return nil, fmt.Errorf("check ticket type: %w", err)
	}
	venue, err := s.repo.GetVenue(ctx, event.VenueID)
	if err != nil {
		return nil, fmt.Errorf("check venue: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("confirmation code: %w", err)
	}

	b := &models.Booking{
		EventID:          event.ID,
		TicketTypeID:     tt.ID,
		CustomerName:     in.CustomerName,
		CustomerEmail:    in.CustomerEmail,
		Quantity:         in.Quantity,
		TotalAmount:      tt.Price * float64(in.Quantity),
		Status:           models.BookingStatusPending,
		BookingDate:      s.now(),
		ConfirmationCode: code,
	}
	if err := s.repo.CreateBooking(ctx, b, venue.Capacity); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	event.Venue = venue
	b.Event = event
	b.TicketType = tt

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"event_id":   b.EventID,
		"quantity":   b.Quantity,
	}).Info("booking created")

	go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), b)

	return b, nil
}

// UpdateBooking changes customer details or quantity. Capacity is not re-checked.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	b, err := s.repo.UpdateBooking(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

// UpdateBookingStatus moves a booking to any status; there are no transition rules.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id int64, u models.StatusUpdate) (*models.Booking, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	b, err := s.repo.UpdateBookingStatus(ctx, id, u.Status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": id,
		"from":       current.Status,
		"to":         b.Status,
	}).Info("booking status changed")

	if current.Status != b.Status {
		go s.notifier.NotifyStatusChanged(context.WithoutCancel(ctx), b, current.Status)
	}
	return b, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	s.log.WithField("booking_id", id).Info("booking deleted")
	return nil
}

// AvailableTickets reports the venue capacity left for the event, never below zero.
func (s *BookingService) AvailableTickets(ctx context.Context, eventID int64) (*models.AvailableTickets, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	venue, err := s.repo.GetVenue(ctx, event.VenueID)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	booked, err := s.repo.ConfirmedQuantity(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &models.AvailableTickets{
		EventID:          event.ID,
		EventName:        event.Name,
		VenueCapacity:    venue.Capacity,
		TotalBooked:      booked,
		AvailableTickets: models.Available(venue.Capacity, booked),
	}, nil
}

func (s *BookingService) EventRevenue(ctx context.Context, eventID int64) (*models.EventRevenue, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	rev, err := s.repo.EventRevenue(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rev.EventName = event.Name
	return rev, nil
}

func (s *BookingService) VenueOccupancy(ctx context.Context, venueID int64) (*models.VenueOccupancy, error) {
	venue, err := s.repo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	booked, err := s.repo.ConfirmedQuantityAtVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return &models.VenueOccupancy{
		VenueID:       venue.ID,
		VenueName:     venue.Name,
		Capacity:      venue.Capacity,
		TotalBookings: booked,
		OccupancyRate: models.OccupancyRate(booked, venue.Capacity),
	}, nil
}
