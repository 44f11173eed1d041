package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"crud-apps/internal/logger"
	"crud-apps/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// BookingTestSuite provides a test suite for venue, event, ticket type and booking operations
type BookingTestSuite struct {
	suite.Suite
	db  *DB
	ctx context.Context

	venue  *models.Venue
	event  *models.Event
	ticket *models.TicketType
}

// SetupTest creates a venue of capacity 100, an event there and a 50.00 ticket type
func (suite *BookingTestSuite) SetupTest() {
	db, err := NewDB(":memory:", BookingSchema, logger.Discard())
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.ctx = context.Background()

	suite.venue = &models.Venue{Name: "Town Hall", Location: "Springfield", Capacity: 100}
	require.NoError(suite.T(), db.CreateVenue(suite.ctx, suite.venue))

	suite.event = &models.Event{Name: "Spring Gala", Description: "Annual gala", Date: date("2025-04-01"), VenueID: suite.venue.ID}
	require.NoError(suite.T(), db.CreateEvent(suite.ctx, suite.event))

	suite.ticket = &models.TicketType{Name: models.TicketTypeStandard, Price: 50.00, Description: "Regular seat"}
	require.NoError(suite.T(), db.CreateTicketType(suite.ctx, suite.ticket))
}

// TearDownTest runs after each test
func (suite *BookingTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *BookingTestSuite) book(name string, qty int, status models.BookingStatus) (*models.Booking, error) {
	b := &models.Booking{
		EventID:          suite.event.ID,
		TicketTypeID:     suite.ticket.ID,
		CustomerName:     name,
		CustomerEmail:    name + "@example.com",
		Quantity:         qty,
		TotalAmount:      suite.ticket.Price * float64(qty),
		Status:           status,
		BookingDate:      time.Now().UTC(),
		ConfirmationCode: "ABCD1234",
	}
	err := suite.db.CreateBooking(suite.ctx, b, suite.venue.Capacity)
	return b, err
}

func (suite *BookingTestSuite) TestCreateEventLoadsVenue() {
	require.NotNil(suite.T(), suite.event.Venue)
	assert.Equal(suite.T(), "Town Hall", suite.event.Venue.Name)

	got, err := suite.db.GetEvent(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), got.Venue)
	assert.Equal(suite.T(), suite.venue.ID, got.Venue.ID)
	assert.Equal(suite.T(), "2025-04-01", got.Date.Format(models.DateLayout))
}

func (suite *BookingTestSuite) TestCreateEventUnknownVenue() {
	e := &models.Event{Name: "Ghost", Description: "No venue", Date: date("2025-04-01"), VenueID: 99}
	assert.ErrorIs(suite.T(), suite.db.CreateEvent(suite.ctx, e), models.ErrVenueNotFound)
}

func (suite *BookingTestSuite) TestListAndDeleteCatalog() {
	venues, err := suite.db.ListVenues(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), venues, 1)

	events, err := suite.db.ListVenueEvents(suite.ctx, suite.venue.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), events, 1)

	types, err := suite.db.ListTicketTypes(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), types, 1)

	require.NoError(suite.T(), suite.db.DeleteTicketType(suite.ctx, suite.ticket.ID))
	assert.ErrorIs(suite.T(), suite.db.DeleteTicketType(suite.ctx, suite.ticket.ID), models.ErrTicketTypeNotFound)

	// Deleting a venue leaves its events behind.
	require.NoError(suite.T(), suite.db.DeleteVenue(suite.ctx, suite.venue.ID))
	events, err = suite.db.ListEvents(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), events, 1)

	require.NoError(suite.T(), suite.db.DeleteEvent(suite.ctx, suite.event.ID))
	_, err = suite.db.GetEvent(suite.ctx, suite.event.ID)
	assert.ErrorIs(suite.T(), err, models.ErrEventNotFound)
}

func (suite *BookingTestSuite) TestCapacityScenario() {
	first, err := suite.book("alice", 3, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	_, err = suite.db.UpdateBookingStatus(suite.ctx, first.ID, models.BookingStatusConfirmed)
	require.NoError(suite.T(), err)

	_, err = suite.book("bob", 98, models.BookingStatusPending)
	assert.ErrorIs(suite.T(), err, models.ErrCapacityExceeded, "3 + 98 > 100")

	second, err := suite.book("carol", 97, models.BookingStatusPending)
	require.NoError(suite.T(), err, "3 + 97 fits exactly")
	assert.Equal(suite.T(), 4850.00, second.TotalAmount)
	_, err = suite.db.UpdateBookingStatus(suite.ctx, second.ID, models.BookingStatusConfirmed)
	require.NoError(suite.T(), err)

	confirmed, err := suite.db.ConfirmedQuantity(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100, confirmed)
	assert.Equal(suite.T(), 0, models.Available(suite.venue.Capacity, confirmed))
}

func (suite *BookingTestSuite) TestPendingBookingsDoNotCountTowardCapacity() {
	_, err := suite.book("alice", 60, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	_, err = suite.book("bob", 60, models.BookingStatusPending)
	assert.NoError(suite.T(), err)

	confirmed, err := suite.db.ConfirmedQuantity(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), confirmed)
}

func (suite *BookingTestSuite) TestConcurrentConfirmedBookingsCannotOversell() {
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := suite.book("rush", 30, models.BookingStatusConfirmed); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(suite.T(), 3, accepted)
	confirmed, err := suite.db.ConfirmedQuantity(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 90, confirmed)
}

func (suite *BookingTestSuite) TestGetBookingLoadsRelations() {
	b, err := suite.book("alice", 2, models.BookingStatusPending)
	require.NoError(suite.T(), err)

	got, err := suite.db.GetBooking(suite.ctx, b.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), got.Event)
	require.NotNil(suite.T(), got.Event.Venue)
	require.NotNil(suite.T(), got.TicketType)
	assert.Equal(suite.T(), "Spring Gala", got.Event.Name)
	assert.Equal(suite.T(), "Town Hall", got.Event.Venue.Name)
	assert.Equal(suite.T(), models.TicketTypeStandard, got.TicketType.Name)
	assert.Equal(suite.T(), models.BookingStatusPending, got.Status)

	_, err = suite.db.GetBooking(suite.ctx, 99)
	assert.ErrorIs(suite.T(), err, models.ErrBookingNotFound)
}

func (suite *BookingTestSuite) TestUpdateBookingRepricesQuantity() {
	b, err := suite.book("alice", 2, models.BookingStatusPending)
	require.NoError(suite.T(), err)

	_, err = suite.db.bun.NewUpdate().
		Model((*models.TicketType)(nil)).
		Set("price = ?", 60.00).
		Where("id = ?", suite.ticket.ID).
		Exec(suite.ctx)
	require.NoError(suite.T(), err)

	qty := 3
	updated, err := suite.db.UpdateBooking(suite.ctx, b.ID, models.BookingPatch{Quantity: &qty})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, updated.Quantity)
	assert.Equal(suite.T(), 180.00, updated.TotalAmount, "total uses the current price")
	assert.Equal(suite.T(), "alice", updated.CustomerName)

	name := "Alice Smith"
	updated, err = suite.db.UpdateBooking(suite.ctx, b.ID, models.BookingPatch{CustomerName: &name})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Alice Smith", updated.CustomerName)
	assert.Equal(suite.T(), 180.00, updated.TotalAmount, "total untouched without a quantity")
}

func (suite *BookingTestSuite) TestUpdateBookingNotFound() {
	qty := 1
	_, err := suite.db.UpdateBooking(suite.ctx, 99, models.BookingPatch{Quantity: &qty})
	assert.ErrorIs(suite.T(), err, models.ErrBookingNotFound)

	_, err = suite.db.UpdateBookingStatus(suite.ctx, 99, models.BookingStatusCancelled)
	assert.ErrorIs(suite.T(), err, models.ErrBookingNotFound)
}

func (suite *BookingTestSuite) TestStatusTransitionsAreUnrestricted() {
	b, err := suite.book("alice", 1, models.BookingStatusPending)
	require.NoError(suite.T(), err)

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusPending,
		models.BookingStatusCancelled,
		models.BookingStatusConfirmed,
	} {
		updated, err := suite.db.UpdateBookingStatus(suite.ctx, b.ID, status)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), status, updated.Status)
	}
}

func (suite *BookingTestSuite) TestDeleteBooking() {
	b, err := suite.book("alice", 1, models.BookingStatusConfirmed)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.DeleteBooking(suite.ctx, b.ID))
	assert.ErrorIs(suite.T(), suite.db.DeleteBooking(suite.ctx, b.ID), models.ErrBookingNotFound)

	confirmed, err := suite.db.ConfirmedQuantity(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), confirmed)
}

func (suite *BookingTestSuite) TestListBookingsByEventAndTicketType() {
	other := &models.TicketType{Name: models.TicketTypeVIP, Price: 150.00, Description: "Front row"}
	require.NoError(suite.T(), suite.db.CreateTicketType(suite.ctx, other))

	_, err := suite.book("alice", 1, models.BookingStatusPending)
	require.NoError(suite.T(), err)

	vip := &models.Booking{
		EventID: suite.event.ID, TicketTypeID: other.ID, CustomerName: "bob", CustomerEmail: "bob@example.com",
		Quantity: 1, TotalAmount: 150.00, Status: models.BookingStatusPending, BookingDate: time.Now().UTC(), ConfirmationCode: "VIP00001",
	}
	require.NoError(suite.T(), suite.db.CreateBooking(suite.ctx, vip, suite.venue.Capacity))

	all, err := suite.db.ListEventBookings(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)

	vips, err := suite.db.ListTicketTypeBookings(suite.ctx, other.ID)
	require.NoError(suite.T(), err)
	if assert.Len(suite.T(), vips, 1) {
		assert.Equal(suite.T(), "bob", vips[0].CustomerName)
	}

	everything, err := suite.db.ListBookings(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), everything, 2)
}

func (suite *BookingTestSuite) TestSearchBookings() {
	other := &models.Venue{Name: "Riverside Arena", Location: "Shelbyville", Capacity: 50}
	require.NoError(suite.T(), suite.db.CreateVenue(suite.ctx, other))
	concert := &models.Event{Name: "Rock Night", Description: "Loud", Date: date("2025-05-01"), VenueID: other.ID}
	require.NoError(suite.T(), suite.db.CreateEvent(suite.ctx, concert))

	_, err := suite.book("alice", 1, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	rock := &models.Booking{
		EventID: concert.ID, TicketTypeID: suite.ticket.ID, CustomerName: "bob", CustomerEmail: "bob@example.com",
		Quantity: 1, TotalAmount: 50.00, Status: models.BookingStatusPending, BookingDate: time.Now().UTC(), ConfirmationCode: "ROCK0001",
	}
	require.NoError(suite.T(), suite.db.CreateBooking(suite.ctx, rock, other.Capacity))

	byEvent, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{Event: "ROCK"})
	require.NoError(suite.T(), err)
	if assert.Len(suite.T(), byEvent, 1) {
		assert.Equal(suite.T(), "bob", byEvent[0].CustomerName)
	}

	byVenue, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{Venue: "town"})
	require.NoError(suite.T(), err)
	if assert.Len(suite.T(), byVenue, 1) {
		assert.Equal(suite.T(), "alice", byVenue[0].CustomerName)
	}

	byType, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{TicketType: "stand", Venue: "arena"})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), byType, 1)

	none, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{TicketType: "vip"})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)

	all, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
}

func (suite *BookingTestSuite) TestEventRevenueAndOccupancy() {
	a, err := suite.book("alice", 2, models.BookingStatusConfirmed)
	require.NoError(suite.T(), err)
	_, err = suite.book("bob", 4, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	_, err = suite.book("carol", 1, models.BookingStatusCancelled)
	require.NoError(suite.T(), err)

	rev, err := suite.db.EventRevenue(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.event.ID, rev.EventID)
	assert.InDelta(suite.T(), a.TotalAmount, rev.TotalRevenue, 0.001)
	assert.Equal(suite.T(), 3, rev.TotalBookings)
	assert.Equal(suite.T(), 1, rev.ConfirmedBookings)

	atVenue, err := suite.db.ConfirmedQuantityAtVenue(suite.ctx, suite.venue.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, atVenue)
}

func (suite *BookingTestSuite) TestEventRevenueWithoutBookings() {
	rev, err := suite.db.EventRevenue(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), rev.TotalRevenue)
	assert.Zero(suite.T(), rev.TotalBookings)
}

func (suite *BookingTestSuite) TestAggregatesWithoutConfirmedBookings() {
	_, err := suite.book("alice", 2, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	_, err = suite.book("bob", 1, models.BookingStatusCancelled)
	require.NoError(suite.T(), err)

	rev, err := suite.db.EventRevenue(suite.ctx, suite.event.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), rev.TotalRevenue)
	assert.Equal(suite.T(), 2, rev.TotalBookings)
	assert.Zero(suite.T(), rev.ConfirmedBookings)

	stats, err := suite.db.BookingStats(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), stats.TotalRevenue)
	assert.Equal(suite.T(), 2, stats.TotalBookings)
	assert.Equal(suite.T(), 1, stats.PendingBookings)
	assert.Equal(suite.T(), 1, stats.CancelledBookings)
}

func (suite *BookingTestSuite) TestBookingStatsEmpty() {
	stats, err := suite.db.BookingStats(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), stats.TotalBookings)
	assert.Zero(suite.T(), stats.TotalRevenue)
	assert.Equal(suite.T(), 1, stats.TotalEvents)
}

func (suite *BookingTestSuite) TestSearchBookingsFoldsASCIICase() {
	_, err := suite.book("alice", 1, models.BookingStatusPending)
	require.NoError(suite.T(), err)

	found, err := suite.db.SearchBookings(suite.ctx, models.BookingSearch{Event: "sPRING gALA"})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), found, 1)
}

func (suite *BookingTestSuite) TestBookingStats() {
	_, err := suite.book("alice", 2, models.BookingStatusConfirmed)
	require.NoError(suite.T(), err)
	_, err = suite.book("bob", 1, models.BookingStatusPending)
	require.NoError(suite.T(), err)
	_, err = suite.book("carol", 5, models.BookingStatusCancelled)
	require.NoError(suite.T(), err)

	stats, err := suite.db.BookingStats(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, stats.TotalBookings)
	assert.Equal(suite.T(), 1, stats.TotalEvents)
	assert.Equal(suite.T(), 1, stats.TotalVenues)
	assert.InDelta(suite.T(), 100.00, stats.TotalRevenue, 0.001, "only confirmed bookings count")
	assert.Equal(suite.T(), 1, stats.ConfirmedBookings)
	assert.Equal(suite.T(), 1, stats.PendingBookings)
	assert.Equal(suite.T(), 1, stats.CancelledBookings)
}

func (suite *BookingTestSuite) TestSeedBooking() {
	require.NoError(suite.T(), suite.db.Reset(suite.ctx, BookingSchema))

	seeded, err := suite.db.SeedBooking(suite.ctx)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), seeded)

	stats, err := suite.db.BookingStats(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, stats.TotalBookings)
	assert.Equal(suite.T(), 3, stats.TotalEvents)
	assert.Equal(suite.T(), 3, stats.TotalVenues)

	seeded, err = suite.db.SeedBooking(suite.ctx)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), seeded)
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingTestSuite))
}
