package models

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrBookingNotFound    = errors.New("booking not found")
)

var (
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation error")
	// ErrCapacityExceeded is returned when a booking would oversell the venue.
	ErrCapacityExceeded = errors.New("not enough tickets available")
)
