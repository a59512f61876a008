// File: services/booking/simulator.go
package booking

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"wanderly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Policy tunes how often the simulated provider declines.
type Policy struct {
	FullyBookedRate float64
	TimeoutRate     float64
	MaxPartySize    int
	Latency         time.Duration
}

func DefaultPolicy() Policy {
	return Policy{FullyBookedRate: 0.1, TimeoutRate: 0.05, MaxPartySize: 20}
}

// Simulator stands in for a reservation provider.
type Simulator struct {
	policy Policy
	rand   RandomSource
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	calls  atomic.Int64
}

func NewSimulator(policy Policy, source RandomSource, logger *zap.Logger) *Simulator {
	if source == nil {
		source = NewSeededSource(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.MaxPartySize <= 0 {
		policy.MaxPartySize = DefaultPolicy().MaxPartySize
	}
	return &Simulator{
		policy: policy,
		rand:   source,
		logger: logger,
		now:    time.Now,
		newID:  newConfirmationID,
	}
}

func newConfirmationID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "WND-" + strings.ToUpper(raw[:8])
}

// Calls reports how many requests reached the simulated provider.
func (s *Simulator) Calls() int {
	return int(s.calls.Load())
}

// SimulateSingleBooking validates the request and asks the simulated provider for a slot.
// A declined booking is not an error: it comes back as an outcome with Success=false.
func (s *Simulator) SimulateSingleBooking(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	if err := validateRequest(req); err != nil {
		s.logger.Warn("Booking request rejected", zap.Error(err))
		return nil, err
	}
	return s.provide(ctx, req)
}

func (s *Simulator) provide(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	s.calls.Add(1)

	if s.policy.Latency > 0 {
		t := time.NewTimer(s.policy.Latency)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("booking simulation interrupted: %w", ctx.Err())
		case <-t.C:
		}
	}

	outcome := &models.BookingOutcome{
		BusinessID: req.BusinessID,
		Request:    req,
		CreatedAt:  s.now(),
	}

	party := req.BookingDetails.PartySize
	if party < 1 || party > s.policy.MaxPartySize {
		outcome.Error = &models.BookingFailure{
			Code:    models.FailureInvalidPartySize,
			Message: fmt.Sprintf("party size must be between 1 and %d", s.policy.MaxPartySize),
		}
		s.logFailure(req, outcome.Error)
		return outcome, nil
	}

	draw := s.rand.Float64()
	switch {
	case draw < s.policy.FullyBookedRate:
		outcome.Error = &models.BookingFailure{
			Code:    models.FailureFullyBooked,
			Message: "no availability for the requested date and time",
		}
	case draw < s.policy.FullyBookedRate+s.policy.TimeoutRate:
		outcome.Error = &models.BookingFailure{
			Code:    models.FailureProviderTimeout,
			Message: "the reservation provider did not respond in time",
		}
	default:
		outcome.Success = true
		outcome.ConfirmationID = s.newID()
	}

	if !outcome.Success {
		s.logFailure(req, outcome.Error)
		return outcome, nil
	}
	s.logger.Info("Simulated booking confirmed",
		zap.String("business_id", req.BusinessID),
		zap.String("confirmation_id", outcome.ConfirmationID))
	return outcome, nil
}

func (s *Simulator) logFailure(req models.BookingRequest, f *models.BookingFailure) {
	s.logger.Info("Simulated booking declined",
		zap.String("business_id", req.BusinessID),
		zap.String("code", f.Code))
}

func validateRequest(req models.BookingRequest) error {
	if strings.TrimSpace(req.BusinessID) == "" {
		return NewValidationError("missing business ID")
	}
	if strings.TrimSpace(req.Category) == "" {
		return NewValidationError("missing category")
	}
	return nil
}
