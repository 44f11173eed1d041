package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/models"
)

// BookingStore is the catalog and read side of the booking database.
type BookingStore interface {
	CreateVenue(ctx context.Context, v *models.Venue) error
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error

	CreateEvent(ctx context.Context, e *models.Event) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListVenueEvents(ctx context.Context, venueID int64) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	CreateTicketType(ctx context.Context, t *models.TicketType) error
	GetTicketType(ctx context.Context, id int64) (*models.TicketType, error)
	ListTicketTypes(ctx context.Context) ([]models.TicketType, error)
	DeleteTicketType(ctx context.Context, id int64) error

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListEventBookings(ctx context.Context, eventID int64) ([]models.Booking, error)
	ListTicketTypeBookings(ctx context.Context, ticketTypeID int64) ([]models.Booking, error)
	SearchBookings(ctx context.Context, s models.BookingSearch) ([]models.Booking, error)
	BookingStats(ctx context.Context) (*models.BookingStats, error)
}

// BookingSvc applies the booking rules: capacity, pricing and derived figures.
type BookingSvc interface {
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, u models.StatusUpdate) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	AvailableTickets(ctx context.Context, eventID int64) (*models.AvailableTickets, error)
	EventRevenue(ctx context.Context, eventID int64) (*models.EventRevenue, error)
	VenueOccupancy(ctx context.Context, venueID int64) (*models.VenueOccupancy, error)
}

type BookingHandler struct {
	db     BookingStore
	svc    BookingSvc
	render *Renderer
	log    logrus.FieldLogger
}

func NewBookingHandler(db BookingStore, svc BookingSvc, render *Renderer, log logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{db: db, svc: svc, render: render, log: log}
}

// Venues

func (h *BookingHandler) CreateVenue(c *gin.Context) {
	var req dto.VenueRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	in := req.Input()
	if err := in.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	v := &models.Venue{Name: in.Name, Location: in.Location, Capacity: in.Capacity}
	if err := h.db.CreateVenue(c.Request.Context(), v); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *BookingHandler) ListVenues(c *gin.Context) {
	venues, err := h.db.ListVenues(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (h *BookingHandler) GetVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.db.GetVenue(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *BookingHandler) DeleteVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.db.DeleteVenue(c.Request.Context(), id); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Venue deleted successfully"})
}

func (h *BookingHandler) VenueEvents(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.db.GetVenue(ctx, id); err != nil {
		handleError(c, h.log, err)
		return
	}
	events, err := h.db.ListVenueEvents(ctx, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *BookingHandler) VenueOccupancy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	occ, err := h.svc.VenueOccupancy(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

// Events

func (h *BookingHandler) CreateEvent(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	if err := in.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	e := &models.Event{Name: in.Name, Description: in.Description, Date: in.Date, VenueID: in.VenueID}
	if err := h.db.CreateEvent(c.Request.Context(), e); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *BookingHandler) ListEvents(c *gin.Context) {
	events, err := h.db.ListEvents(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *BookingHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.db.GetEvent(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *BookingHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.db.DeleteEvent(c.Request.Context(), id); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event deleted successfully"})
}

func (h *BookingHandler) EventBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.db.GetEvent(ctx, id); err != nil {
		handleError(c, h.log, err)
		return
	}
	bookings, err := h.db.ListEventBookings(ctx, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) AvailableTickets(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	avail, err := h.svc.AvailableTickets(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *BookingHandler) EventRevenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rev, err := h.svc.EventRevenue(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

// Ticket types

func (h *BookingHandler) CreateTicketType(c *gin.Context) {
	var req dto.TicketTypeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	in := req.Input()
	if err := in.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	t := &models.TicketType{Name: in.Name, Price: in.Price, Description: in.Description}
	if err := h.db.CreateTicketType(c.Request.Context(), t); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *BookingHandler) ListTicketTypes(c *gin.Context) {
	types, err := h.db.ListTicketTypes(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *BookingHandler) GetTicketType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.db.GetTicketType(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *BookingHandler) DeleteTicketType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.db.DeleteTicketType(c.Request.Context(), id); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Ticket type deleted successfully"})
}

func (h *BookingHandler) TicketTypeBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.db.GetTicketType(ctx, id); err != nil {
		handleError(c, h.log, err)
		return
	}
	bookings, err := h.db.ListTicketTypeBookings(ctx, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Bookings

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.svc.CreateBooking(c.Request.Context(), req.Input())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.db.ListBookings(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) SearchBookings(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	bookings, err := h.db.SearchBookings(c.Request.Context(), q.Search())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.db.GetBooking(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.svc.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var u models.StatusUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.svc.UpdateBookingStatus(c.Request.Context(), id, u)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBooking(c.Request.Context(), id); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Booking cancelled successfully"})
}

func (h *BookingHandler) Stats(c *gin.Context) {
	stats, err := h.db.BookingStats(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// BookingPage is the data passed to the booking dashboard.
type BookingPage struct {
	Stats       *models.BookingStats
	Venues      []models.Venue
	Events      []models.Event
	TicketTypes []models.TicketType
	Bookings    []models.Booking
	Statuses    []models.BookingStatus
	TypeNames   []models.TicketTypeName
}

func (h *BookingHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	page := BookingPage{Statuses: models.BookingStatuses, TypeNames: models.TicketTypeNames}

	var err error
	if page.Stats, err = h.db.BookingStats(ctx); err != nil {
		handleError(c, h.log, err)
		return
	}
	if page.Venues, err = h.db.ListVenues(ctx); err != nil {
		handleError(c, h.log, err)
		return
	}
	if page.Events, err = h.db.ListEvents(ctx); err != nil {
		handleError(c, h.log, err)
		return
	}
	if page.TicketTypes, err = h.db.ListTicketTypes(ctx); err != nil {
		handleError(c, h.log, err)
		return
	}
	if page.Bookings, err = h.db.ListBookings(ctx); err != nil {
		handleError(c, h.log, err)
		return
	}
	h.render.Render(c, "booking.html", page)
}
