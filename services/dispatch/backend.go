package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wanderly/models"

	"go.uber.org/zap"
)

// Backend is the single call contract to the recommendation service.
type Backend interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error)
}

const maxResponseBytes = 4 << 20

// HTTPBackend posts JSON to the recommendation service.
type HTTPBackend struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPBackend(url string, timeout time.Duration, logger *zap.Logger) *HTTPBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPBackend{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (b *HTTPBackend) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Message: "failed to encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return nil, newNetworkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		b.logger.Warn("Recommendation backend unreachable", zap.String("url", b.url), zap.Error(err))
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b.logger.Warn("Recommendation backend returned non-OK status", zap.Int("status", resp.StatusCode))
		return nil, &Error{
			Kind:       KindBackendRejected,
			Message:    rejectionMessage(body, resp.StatusCode),
			StatusCode: resp.StatusCode,
			Terminal:   !retryableStatus(resp.StatusCode),
		}
	}

	var out models.RecommendationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		b.logger.Error("Failed to decode recommendation response", zap.Error(err))
		return nil, newMalformedError(err)
	}
	return &out, nil
}

// retryableStatus: server-side and throttling failures may clear on their own.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func rejectionMessage(body []byte, status int) string {
	var errResp models.RecommendationResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return fmt.Sprintf("recommendation backend returned status %d", status)
}
