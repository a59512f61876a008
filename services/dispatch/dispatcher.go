// Package dispatch sends user utterances to the recommendation backend with a bounded retry policy.
package dispatch

import (
	"context"
	"strings"
	"time"

	"wanderly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxRetries = 3

// Dispatcher is stateless between calls; the attempt counter lives inside one Send.
type Dispatcher struct {
	backend      Backend
	logger       *zap.Logger
	maxRetries   int
	backoff      time.Duration
	newSessionID func() string
	sleep        func(ctx context.Context, d time.Duration) error
}

type Option func(*Dispatcher)

// WithDefaultMaxRetries is used when a DispatchContext carries no MaxRetries.
func WithDefaultMaxRetries(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxRetries = n
		}
	}
}

// WithBackoff enables exponential backoff between attempts; zero means immediate retry.
func WithBackoff(base time.Duration) Option {
	return func(d *Dispatcher) { d.backoff = base }
}

func WithSessionIDGenerator(gen func() string) Option {
	return func(d *Dispatcher) { d.newSessionID = gen }
}

func NewDispatcher(backend Backend, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		backend:      backend,
		logger:       logger,
		maxRetries:   DefaultMaxRetries,
		newSessionID: func() string { return uuid.New().String() },
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send dispatches utterance with the prior history. Empty input fails locally without
// touching the backend. Retryable failures are retried up to the attempt cap; the last
// error is returned once the cap is reached.
func (d *Dispatcher) Send(ctx context.Context, utterance string, history []models.Message, dc models.DispatchContext) (*models.AssistantTurn, error) {
	text, err := ValidateUtterance(utterance)
	if err != nil {
		return nil, err
	}

	req := models.RecommendationRequest{
		Message:             text,
		Location:            dc.Location,
		UserPreferences:     dc.UserPreferences,
		ConversationHistory: serializeHistory(history),
		SessionID:           d.newSessionID(),
	}

	maxAttempts := 1
	if dc.RetryOnFailure {
		maxAttempts = dc.MaxRetries
		if maxAttempts <= 0 {
			maxAttempts = d.maxRetries
		}
	}

	var lastErr *Error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 && d.backoff > 0 {
			wait := d.backoff << (attempt - 2)
			if err := d.sleep(ctx, wait); err != nil {
				lastErr.Err = err
				break
			}
		}

		turn, derr := d.attempt(ctx, req)
		if derr == nil {
			turn.Attempts = attempt
			d.logger.Debug("Dispatch succeeded",
				zap.String("session_id", req.SessionID),
				zap.Int("attempt", attempt),
				zap.Int("businesses", len(turn.Businesses)))
			return turn, nil
		}

		derr.Attempts = attempt
		lastErr = derr
		d.logger.Warn("Dispatch attempt failed",
			zap.String("session_id", req.SessionID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.String("kind", string(derr.Kind)),
			zap.Error(derr))

		if !derr.Retryable() || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (d *Dispatcher) attempt(ctx context.Context, req models.RecommendationRequest) (*models.AssistantTurn, *Error) {
	resp, err := d.backend.Recommend(ctx, req)
	if err != nil {
		if de, ok := AsError(err); ok {
			// copy so Attempts bookkeeping never leaks into a stub's shared error value
			cp := *de
			return nil, &cp
		}
		return nil, newNetworkError(err)
	}
	if resp == nil {
		return nil, newMalformedError(nil)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = msgRequestFailed
		}
		return nil, &Error{Kind: KindBackendRejected, Message: msg, Terminal: resp.Terminal}
	}
	if resp.Data == nil || strings.TrimSpace(resp.Data.Message) == "" {
		msg := resp.Error
		if msg == "" {
			msg = msgInvalidResponse
		}
		return nil, &Error{Kind: KindMalformedResponse, Message: msg}
	}

	return &models.AssistantTurn{
		Message:    resp.Data.Message,
		Businesses: resp.Data.Businesses,
		Metadata:   resp.Data.Metadata,
		SessionID:  req.SessionID,
	}, nil
}

func serializeHistory(history []models.Message) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history))
	for _, m := range history {
		out = append(out, models.HistoryEntry{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp})
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
