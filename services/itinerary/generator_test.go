package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripRequest() models.ItineraryRequest {
	return models.ItineraryRequest{
		Destination: "Lisbon",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		GroupSize:   2,
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(tripRequest()))

	bad := tripRequest()
	bad.Destination = " "
	assert.Error(t, ValidateRequest(bad))

	bad = tripRequest()
	bad.EndDate = "2025-05-30"
	assert.Error(t, ValidateRequest(bad))

	bad = tripRequest()
	bad.StartDate = "June 1st"
	assert.Error(t, ValidateRequest(bad))

	bad = tripRequest()
	bad.GroupSize = 0
	assert.ErrorIs(t, ValidateRequest(bad), ErrInvalidRequest)
}

func TestHTTPGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ItineraryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Lisbon", req.Destination)
		_ = json.NewEncoder(w).Encode(models.Itinerary{Days: []models.Day{
			{Date: "2025-06-01", Activities: []models.PlannedActivity{act("10:00", "museum", "$")}},
		}})
	}))
	defer srv.Close()

	it, err := NewHTTPGenerator(srv.URL, time.Second, nil).Generate(context.Background(), tripRequest())
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	assert.Equal(t, "museum", it.Days[0].Activities[0].Category)
}

func TestHTTPGenerator_Errors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(srv.URL, time.Second, nil)
	_, err := gen.Generate(context.Background(), tripRequest())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 1, calls)

	bad := tripRequest()
	bad.GroupSize = 0
	_, err = gen.Generate(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 1, calls)
}

func TestHTTPGenerator_UpstreamFailuresAreBackendUnavailable(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer garbage.Close()

	_, err := NewHTTPGenerator(garbage.URL, time.Second, nil).Generate(context.Background(), tripRequest())
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	down := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := down.URL
	down.Close()

	_, err = NewHTTPGenerator(url, time.Second, nil).Generate(context.Background(), tripRequest())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
