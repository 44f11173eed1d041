package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crud-apps/internal/models"
)

type MockBookingNotifier struct {
	mock.Mock
}

func NewMockBookingNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingNotifier {
	m := &MockBookingNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookingNotifier) NotifyBookingCreated(ctx context.Context, b *models.Booking) {
	m.Called(ctx, b)
}

func (m *MockBookingNotifier) NotifyStatusChanged(ctx context.Context, b *models.Booking, previous models.BookingStatus) {
	m.Called(ctx, b, previous)
}
