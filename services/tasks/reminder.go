package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderly/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

const bookingLayout = "2006-01-02 15:04"

// ReminderScheduler queues a reminder for delivery at fireAt.
type ReminderScheduler interface {
	Schedule(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}

// ParseReminderPayload decodes the payload of a booking reminder task.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// ReminderFireTime is the booking's local date and time minus lead. It reports false when the
// booking time does not parse or the fire time is not after now.
func ReminderFireTime(details models.BookingDetails, lead time.Duration, now time.Time) (time.Time, bool) {
	at, err := time.ParseInLocation(bookingLayout, details.Date+" "+details.Time, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	fireAt := at.Add(-lead)
	if !fireAt.After(now) {
		return time.Time{}, false
	}
	return fireAt, true
}

// NewReminderPayload builds the reminder for a confirmed booking.
func NewReminderPayload(userID, conversationID, businessName string, outcome models.BookingOutcome, fireAt time.Time) models.ReminderPayload {
	d := outcome.Request.BookingDetails
	return models.ReminderPayload{
		UserID:         userID,
		ConversationID: conversationID,
		BusinessID:     outcome.BusinessID,
		ConfirmationID: outcome.ConfirmationID,
		Title:          "Upcoming reservation",
		Body:           fmt.Sprintf("%s at %s on %s, party of %d", businessName, d.Time, d.Date, d.PartySize),
		FireDate:       fireAt.Format(time.RFC3339),
	}
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler enqueues reminders on the asynq reminder queue.
type AsynqReminderScheduler struct {
	client enqueuer
	logger *zap.Logger
}

func NewAsynqReminderScheduler(client *asynq.Client, logger *zap.Logger) *AsynqReminderScheduler {
	return newScheduler(client, logger)
}

func newScheduler(client enqueuer, logger *zap.Logger) *AsynqReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqReminderScheduler{client: client, logger: logger}
}

func (s *AsynqReminderScheduler) Schedule(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		s.logger.Error("Failed to enqueue booking reminder",
			zap.String("confirmationId", payload.ConfirmationID), zap.Error(err))
		return err
	}
	s.logger.Info("Booking reminder scheduled",
		zap.String("taskId", info.ID),
		zap.String("confirmationId", payload.ConfirmationID),
		zap.Time("fireAt", fireAt))
	return nil
}
