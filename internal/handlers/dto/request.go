package dto

import (
	"strings"
	"time"

	"crud-apps/internal/models"
)

type TaskRequest struct {
	Title string `form:"title" json:"title"`
}

type ExpenseRequest struct {
	Amount      float64 `form:"amount" json:"amount"`
	Category    string  `form:"category" json:"category"`
	Description string  `form:"description" json:"description"`
	Date        string  `form:"date" json:"date"`
}

func (r ExpenseRequest) Input() (models.ExpenseInput, error) {
	in := models.ExpenseInput{
		Amount:      r.Amount,
		Category:    strings.TrimSpace(r.Category),
		Description: strings.TrimSpace(r.Description),
	}
	if r.Date != "" {
		d, err := ParseDate(r.Date)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, nil
}

// ExpenseUpdateRequest is a partial update; absent fields stay unchanged.
type ExpenseUpdateRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

func (r ExpenseUpdateRequest) Patch() (models.ExpensePatch, error) {
	p := models.ExpensePatch{Amount: r.Amount, Category: r.Category, Description: r.Description}
	if r.Date != nil {
		d, err := ParseDate(*r.Date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	return p, nil
}

// ExpenseQuery carries the optional filters of list, total and dashboard pages.
type ExpenseQuery struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (q ExpenseQuery) Filter() (models.ExpenseFilter, error) {
	f := models.ExpenseFilter{Category: q.Category}
	if q.StartDate != "" {
		d, err := ParseDate(q.StartDate)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := ParseDate(q.EndDate)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	return f, nil
}

type VenueRequest struct {
	Name     string `form:"name" json:"name"`
	Location string `form:"location" json:"location"`
	Capacity int    `form:"capacity" json:"capacity"`
}

func (r VenueRequest) Input() models.VenueInput {
	return models.VenueInput{Name: strings.TrimSpace(r.Name), Location: strings.TrimSpace(r.Location), Capacity: r.Capacity}
}

type EventRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
	VenueID     int64  `form:"venue_id" json:"venue_id"`
}

func (r EventRequest) Input() (models.EventInput, error) {
	in := models.EventInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		VenueID:     r.VenueID,
	}
	if r.Date != "" {
		t, err := ParseDateTime(r.Date)
		if err != nil {
			return in, err
		}
		in.Date = t
	}
	return in, nil
}

type TicketTypeRequest struct {
	Name        string  `form:"name" json:"name"`
	Price       float64 `form:"price" json:"price"`
	Description string  `form:"description" json:"description"`
}

func (r TicketTypeRequest) Input() models.TicketTypeInput {
	return models.TicketTypeInput{
		Name:        models.TicketTypeName(strings.TrimSpace(r.Name)),
		Price:       r.Price,
		Description: strings.TrimSpace(r.Description),
	}
}

type BookingRequest struct {
	EventID       int64  `form:"event_id" json:"event_id"`
	TicketTypeID  int64  `form:"ticket_type_id" json:"ticket_type_id"`
	CustomerName  string `form:"customer_name" json:"customer_name"`
	CustomerEmail string `form:"customer_email" json:"customer_email"`
	Quantity      int    `form:"quantity" json:"quantity"`
}

func (r BookingRequest) Input() models.BookingInput {
	return models.BookingInput{
		EventID:       r.EventID,
		TicketTypeID:  r.TicketTypeID,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		Quantity:      r.Quantity,
	}
}

type SearchQuery struct {
	Event      string `form:"event"`
	Venue      string `form:"venue"`
	TicketType string `form:"ticket_type"`
}

func (q SearchQuery) Search() models.BookingSearch {
	return models.BookingSearch{
		Event:      strings.TrimSpace(q.Event),
		Venue:      strings.TrimSpace(q.Venue),
		TicketType: strings.TrimSpace(q.TicketType),
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, models.Invalid("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	models.DateLayout,
}

// ParseDateTime accepts RFC 3339, the browser's datetime-local format and a
// bare date. Values without a zone are taken as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, models.Invalid("invalid datetime %q", s)
}
