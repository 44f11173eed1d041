package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status; any status may move to any other.
var BookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled}

type TicketTypeName string

const (
	TicketTypeVIP      TicketTypeName = "VIP"
	TicketTypeStandard TicketTypeName = "Standard"
	TicketTypeEconomy  TicketTypeName = "Economy"
)

var TicketTypeNames = []TicketTypeName{TicketTypeVIP, TicketTypeStandard, TicketTypeEconomy}

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Location string `bun:"location,notnull" json:"location"`
	Capacity int    `bun:"capacity,notnull" json:"capacity"`
}

type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	Date        time.Time `bun:"date,notnull" json:"date"`
	VenueID     int64     `bun:"venue_id" json:"venue_id"`

	Venue *Venue `bun:"rel:belongs-to,join:venue_id=id" json:"venue,omitempty"`
}

type TicketType struct {
	bun.BaseModel `bun:"table:ticket_types,alias:tt"`

	ID          int64          `bun:"id,pk,autoincrement" json:"id"`
	Name        TicketTypeName `bun:"name,notnull" json:"name"`
	Price       float64        `bun:"price,notnull" json:"price"`
	Description string         `bun:"description,notnull" json:"description"`
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:b"`

	ID               int64         `bun:"id,pk,autoincrement" json:"id"`
	EventID          int64         `bun:"event_id" json:"event_id"`
	TicketTypeID     int64         `bun:"ticket_type_id" json:"ticket_type_id"`
	CustomerName     string        `bun:"customer_name,notnull" json:"customer_name"`
	CustomerEmail    string        `bun:"customer_email,notnull" json:"customer_email"`
	Quantity         int           `bun:"quantity,notnull" json:"quantity"`
	TotalAmount      float64       `bun:"total_amount,notnull" json:"total_amount"`
	Status           BookingStatus `bun:"status,notnull" json:"status"`
	BookingDate      time.Time     `bun:"booking_date,notnull" json:"booking_date"`
	ConfirmationCode string        `bun:"confirmation_code,notnull" json:"confirmation_code"`

	Event      *Event      `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
	TicketType *TicketType `bun:"rel:belongs-to,join:ticket_type_id=id" json:"ticket_type,omitempty"`
}

type VenueInput struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Capacity int    `json:"capacity" validate:"gt=0"`
}

func (in VenueInput) Validate() error {
	return validateStruct(in)
}

type EventInput struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date"`
	VenueID     int64     `json:"venue_id"`
}

func (in EventInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return Invalid("date is required")
	}
	return nil
}

type TicketTypeInput struct {
	Name        TicketTypeName `json:"name" validate:"required,oneof=VIP Standard Economy"`
	Price       float64        `json:"price" validate:"gt=0"`
	Description string         `json:"description" validate:"required"`
}

func (in TicketTypeInput) Validate() error {
	return validateStruct(in)
}

type BookingInput struct {
	EventID       int64  `json:"event_id"`
	TicketTypeID  int64  `json:"ticket_type_id"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required"`
	Quantity      int    `json:"quantity" validate:"gt=0"`
}

func (in BookingInput) Validate() error {
	return validateStruct(in)
}

// BookingPatch carries the fields of a booking update; nil means unchanged.
type BookingPatch struct {
	CustomerName  *string `json:"customer_name" validate:"omitempty,min=1"`
	CustomerEmail *string `json:"customer_email" validate:"omitempty,min=1"`
	Quantity      *int    `json:"quantity" validate:"omitempty,gt=0"`
}

func (p BookingPatch) Validate() error {
	return validateStruct(p)
}

// Apply merges the patch into b. A quantity change recomputes the total from
// currentPrice, the ticket type's price at the time of the update.
func (p BookingPatch) Apply(b *Booking, currentPrice float64) {
	if p.CustomerName != nil {
		b.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		b.CustomerEmail = *p.CustomerEmail
	}
	if p.Quantity != nil {
		b.Quantity = *p.Quantity
		b.TotalAmount = currentPrice * float64(*p.Quantity)
	}
}

type StatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

func (u StatusUpdate) Validate() error {
	return validateStruct(u)
}

// BookingSearch holds case-insensitive substring filters; empty fields are ignored.
type BookingSearch struct {
	Event      string
	Venue      string
	TicketType string
}

type AvailableTickets struct {
	EventID          int64  `json:"event_id"`
	EventName        string `json:"event_name"`
	VenueCapacity    int    `json:"venue_capacity"`
	TotalBooked      int    `json:"total_booked"`
	AvailableTickets int    `json:"available_tickets"`
}

type EventRevenue struct {
	EventID           int64   `json:"event_id"`
	EventName         string  `json:"event_name"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
}

type VenueOccupancy struct {
	VenueID       int64   `json:"venue_id"`
	VenueName     string  `json:"venue_name"`
	Capacity      int     `json:"capacity"`
	TotalBookings int     `json:"total_bookings"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type BookingStats struct {
	TotalBookings     int     `json:"total_bookings"`
	TotalEvents       int     `json:"total_events"`
	TotalVenues       int     `json:"total_venues"`
	TotalRevenue      float64 `json:"total_revenue"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
}

// Available returns the remaining tickets, floored at zero.
func Available(capacity, confirmed int) int {
	return max(0, capacity-confirmed)
}

// OccupancyRate returns confirmed/capacity as a percentage, 0 for a zero capacity.
func OccupancyRate(confirmed, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(confirmed) / float64(capacity) * 100
}
