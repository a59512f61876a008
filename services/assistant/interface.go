// Package assistant wires the conversation store, dispatcher, suggestion interpreter and
// booking simulator into per-conversation sessions.
package assistant

import (
	"context"
	"errors"
	"time"

	"wanderly/models"
	"wanderly/services/storage"
	"wanderly/services/tasks"

	"go.uber.org/zap"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNothingToRetry       = errors.New("no failed message to retry")
	ErrCacheUnavailable     = errors.New("user cache is not configured")
	ErrMissingUserID        = errors.New("user id is required")
)

// Dispatcher sends an utterance to the recommendation backend.
type Dispatcher interface {
	Send(ctx context.Context, utterance string, history []models.Message, dc models.DispatchContext) (*models.AssistantTurn, error)
}

// Booker attempts a reservation.
type Booker interface {
	SimulateSingleBooking(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error)
}

// StartOptions seed a new conversation with the traveller's defaults.
type StartOptions struct {
	UserID      string              `json:"userId"`
	Location    *models.Location    `json:"location,omitempty"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// SendOptions override the session defaults for one dispatch. A nil RetryOnFailure keeps
// the service default.
type SendOptions struct {
	Location       *models.Location    `json:"location,omitempty"`
	Preferences    *models.Preferences `json:"preferences,omitempty"`
	RetryOnFailure *bool               `json:"retryOnFailure,omitempty"`
	MaxRetries     int                 `json:"maxRetries,omitempty"`
}

// Reply is the assistant message appended after a successful dispatch.
type Reply struct {
	Message   models.Message `json:"message"`
	SessionID string         `json:"sessionId"`
	Attempts  int            `json:"attempts"`
}

// ActionResult reports what a clicked suggestion or suggested action did.
type ActionResult struct {
	Action   string           `json:"action"`
	Matched  bool             `json:"matched"`
	Selected *models.Business `json:"selected,omitempty"`
	Reply    *Reply           `json:"reply,omitempty"`
}

// ItineraryBookingResult is the itinerary with updated booking statuses and the attempts made.
type ItineraryBookingResult struct {
	Itinerary models.Itinerary        `json:"itinerary"`
	Outcomes  []models.BookingOutcome `json:"outcomes"`
	Confirmed int                     `json:"confirmed"`
	Failed    int                     `json:"failed"`
}

// Failure kinds surfaced to the caller besides the dispatch kinds.
const (
	FailureBookingValidation = "booking_validation"
	FailureBookingProvider   = "booking_provider_failure"
)

// Failure is the last error of a session, shown at the point of failure until dismissed.
type Failure struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Retryable  bool      `json:"retryable"`
	Utterance  string    `json:"utterance,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Option func(*Service)

func WithUserCache(cache storage.UserCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithReminders schedules a reminder lead before every confirmed booking.
func WithReminders(scheduler tasks.ReminderScheduler, lead time.Duration) Option {
	return func(s *Service) {
		s.reminders = scheduler
		s.reminderLead = lead
	}
}

// WithRetryPolicy sets the dispatch retry defaults. maxRetries <= 0 leaves the dispatcher default.
func WithRetryPolicy(retryOnFailure bool, maxRetries int) Option {
	return func(s *Service) {
		s.retryOnFailure = retryOnFailure
		s.maxRetries = maxRetries
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
