package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wanderly/models"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidRequest wraps every trip request validation failure.
	ErrInvalidRequest = errors.New("invalid itinerary request")
	// ErrBackendUnavailable wraps failures to reach or understand the itinerary backend.
	ErrBackendUnavailable = errors.New("itinerary backend unavailable")
)

// Generator produces an itinerary for a trip request.
type Generator interface {
	Generate(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error)
}

// HTTPGenerator calls the itinerary generation backend.
type HTTPGenerator struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPGenerator(url string, timeout time.Duration, logger *zap.Logger) *HTTPGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGenerator{url: url, client: &http.Client{Timeout: timeout}, logger: logger}
}

// ValidateRequest checks a trip request before it leaves the process.
func ValidateRequest(req models.ItineraryRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidRequest)
	}
	if req.GroupSize < 1 {
		return fmt.Errorf("%w: group size must be at least 1", ErrInvalidRequest)
	}
	return nil
}

func (g *HTTPGenerator) Generate(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Error("Failed to call itinerary backend", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Error("Itinerary backend returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var it models.Itinerary
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		g.logger.Error("Failed to decode itinerary", zap.Error(err))
		return nil, fmt.Errorf("%w: decode itinerary: %w", ErrBackendUnavailable, err)
	}
	return &it, nil
}
