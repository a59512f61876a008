package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed draws.
type scriptedSource struct {
	draws []float64
	i     int
}

func (s *scriptedSource) Float64() float64 {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		BusinessID: "biz-1",
		Category:   "restaurant",
		BookingDetails: models.BookingDetails{
			Date: "2025-06-01", Time: "19:30", PartySize: 2,
		},
		UserContact: models.UserContact{Name: "Sam", Email: "sam@example.com"},
	}
}

func TestSimulateSingleBooking_ValidationSkipsProvider(t *testing.T) {
	sim := NewSimulator(DefaultPolicy(), &scriptedSource{draws: []float64{0.9}}, nil)

	req := validRequest()
	req.BusinessID = ""
	outcome, err := sim.SimulateSingleBooking(context.Background(), req)
	assert.Nil(t, outcome)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeBookingValidation, verr.Code)

	req = validRequest()
	req.Category = "  "
	_, err = sim.SimulateSingleBooking(context.Background(), req)
	assert.Error(t, err)

	assert.Equal(t, 0, sim.Calls())
}

func TestSimulateSingleBooking_DrawPolicy(t *testing.T) {
	policy := Policy{FullyBookedRate: 0.2, TimeoutRate: 0.1, MaxPartySize: 10}
	sim := NewSimulator(policy, &scriptedSource{draws: []float64{0.05, 0.25, 0.5}}, nil)

	first, err := sim.SimulateSingleBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, first.Success)
	assert.Equal(t, models.FailureFullyBooked, first.Error.Code)
	assert.Empty(t, first.ConfirmationID)

	second, err := sim.SimulateSingleBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.FailureProviderTimeout, second.Error.Code)

	third, err := sim.SimulateSingleBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, third.Success)
	assert.Nil(t, third.Error)
	assert.True(t, strings.HasPrefix(third.ConfirmationID, "WND-"))
	assert.Len(t, third.ConfirmationID, 12)
	assert.Equal(t, "biz-1", third.BusinessID)

	assert.Equal(t, 3, sim.Calls())
}

func TestSimulateSingleBooking_InvalidPartySize(t *testing.T) {
	sim := NewSimulator(Policy{MaxPartySize: 8}, &scriptedSource{draws: []float64{0.99}}, nil)

	for _, size := range []int{0, -1, 9} {
		req := validRequest()
		req.BookingDetails.PartySize = size
		outcome, err := sim.SimulateSingleBooking(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, outcome.Success)
		assert.Equal(t, models.FailureInvalidPartySize, outcome.Error.Code)
	}
}

func TestSimulateSingleBooking_SeededSequenceIsRepeatable(t *testing.T) {
	run := func() []bool {
		sim := NewSimulator(Policy{FullyBookedRate: 0.4, TimeoutRate: 0.2, MaxPartySize: 10}, NewSeededSource(42), nil)
		var seq []bool
		for i := 0; i < 25; i++ {
			outcome, err := sim.SimulateSingleBooking(context.Background(), validRequest())
			require.NoError(t, err)
			seq = append(seq, outcome.Success)
		}
		return seq
	}

	first := run()
	assert.Equal(t, first, run())
	assert.Contains(t, first, true)
	assert.Contains(t, first, false)
}

func TestSimulateSingleBooking_LatencyRespectsContext(t *testing.T) {
	sim := NewSimulator(Policy{Latency: time.Hour}, &scriptedSource{draws: []float64{0.9}}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	outcome, err := sim.SimulateSingleBooking(ctx, validRequest())
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
