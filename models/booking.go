package models

import "time"

// BookingRequest asks a business for a reservation.
type BookingRequest struct {
	BusinessID     string         `json:"businessId"`
	Category       string         `json:"category"`
	BookingDetails BookingDetails `json:"bookingDetails"`
	UserContact    UserContact    `json:"userContact"`
}

type BookingDetails struct {
	Date            string `json:"date"` // "YYYY-MM-DD"
	Time            string `json:"time"` // "HH:MM"
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type UserContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingOutcome is the result of a reservation attempt. Success is authoritative:
// ConfirmationID is only meaningful when Success is true.
type BookingOutcome struct {
	Success        bool            `json:"success"`
	ConfirmationID string          `json:"confirmationId,omitempty"`
	Error          *BookingFailure `json:"error,omitempty"`
	BusinessID     string          `json:"businessId"`
	Request        BookingRequest  `json:"request"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BookingFailure is the structured reason a provider declined a booking.
type BookingFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Provider failure codes.
const (
	FailureFullyBooked      = "fully_booked"
	FailureInvalidPartySize = "invalid_party_size"
	FailureProviderTimeout  = "provider_timeout"
)
