package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crud-apps/internal/models"
)

type MockBookingRepo struct {
	mock.Mock
}

// NewMockBookingRepo registers an expectations check on test cleanup.
func NewMockBookingRepo(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingRepo {
	m := &MockBookingRepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingRepo) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Venue)
	return v, args.Error(1)
}

func (m *MockBookingRepo) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.Event)
	return e, args.Error(1)
}

func (m *MockBookingRepo) GetTicketType(ctx context.Context, id int64) (*models.TicketType, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.TicketType)
	return t, args.Error(1)
}

func (m *MockBookingRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepo) CreateBooking(ctx context.Context, b *models.Booking, capacity int) error {
	return m.Called(ctx, b, capacity).Error(0)
}

func (m *MockBookingRepo) UpdateBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepo) UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error) {
	args := m.Called(ctx, id, status)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepo) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) ConfirmedQuantity(ctx context.Context, eventID int64) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) ConfirmedQuantityAtVenue(ctx context.Context, venueID int64) (int, error) {
	args := m.Called(ctx, venueID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) EventRevenue(ctx context.Context, eventID int64) (*models.EventRevenue, error) {
	args := m.Called(ctx, eventID)
	r, _ := args.Get(0).(*models.EventRevenue)
	return r, args.Error(1)
}
