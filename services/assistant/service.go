package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"wanderly/models"
	"wanderly/services/booking"
	"wanderly/services/dispatch"
	"wanderly/services/storage"
	"wanderly/services/suggestion"
	"wanderly/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service keeps a registry of live conversations keyed by id.
type Service struct {
	dispatcher Dispatcher
	booker     Booker
	cache      storage.UserCache
	reminders  tasks.ReminderScheduler
	logger     *zap.Logger

	reminderLead   time.Duration
	retryOnFailure bool
	maxRetries     int
	now            func() time.Time
	newID          func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(dispatcher Dispatcher, booker Booker, opts ...Option) *Service {
	s := &Service{
		dispatcher:     dispatcher,
		booker:         booker,
		logger:         zap.NewNop(),
		retryOnFailure: true,
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
		sessions:       make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartConversation opens a session. When the user has cached preferences and none were
// given, the cached ones become the session default.
func (s *Service) StartConversation(ctx context.Context, opts StartOptions) (*Session, error) {
	if opts.Location != nil {
		if err := opts.Location.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.Preferences == nil && opts.UserID != "" && s.cache != nil {
		prefs, err := s.cache.GetPreferences(ctx, opts.UserID)
		if err != nil {
			s.logger.Warn("Failed to load cached preferences", zap.String("userId", opts.UserID), zap.Error(err))
		}
		opts.Preferences = prefs
	}

	sess := newSession(s.newID(), opts, s.now)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Conversation started", zap.String("conversationId", sess.ID), zap.String("userId", opts.UserID))
	return sess, nil
}

func (s *Service) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return sess, nil
}

func (s *Service) EndConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrConversationNotFound
	}
	delete(s.sessions, id)
	return nil
}

// SendMessage appends the user's utterance, dispatches it with the prior history and
// appends exactly one assistant message on success. Empty input appends nothing.
func (s *Service) SendMessage(ctx context.Context, convID, utterance string, opts SendOptions) (*Reply, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()
	return s.send(ctx, sess, utterance, opts)
}

func (s *Service) send(ctx context.Context, sess *Session, utterance string, opts SendOptions) (*Reply, error) {
	text, err := dispatch.ValidateUtterance(utterance)
	if err != nil {
		return nil, err
	}
	if opts.Location != nil {
		if err := opts.Location.Validate(); err != nil {
			return nil, &dispatch.Error{Kind: dispatch.KindInvalidInput, Message: err.Error()}
		}
	}

	history := sess.Store.Messages()
	sess.Store.AppendUserMessage(text)
	sess.Store.RecordInteraction(models.EventMessageSent, map[string]any{"utterance": text})

	return s.dispatchTurn(ctx, sess, text, history, opts)
}

func (s *Service) dispatchTurn(ctx context.Context, sess *Session, text string, history []models.Message, opts SendOptions) (*Reply, error) {
	dc := s.dispatchContext(sess, opts)
	turn, err := s.dispatcher.Send(ctx, text, history, dc)
	if err != nil {
		f := &Failure{Kind: string(dispatch.KindNetworkFailure), Message: err.Error(), Utterance: text, OccurredAt: s.now()}
		if de, ok := dispatch.AsError(err); ok {
			f.Kind = string(de.Kind)
			f.Message = de.Message
			f.Retryable = de.Retryable()
		}
		sess.mu.Lock()
		sess.lastErr = f
		sess.lastUtterance = text
		sess.mu.Unlock()
		sess.Store.RecordInteraction(models.EventDispatchFailed, map[string]any{"kind": f.Kind, "message": f.Message})
		s.logger.Warn("Dispatch failed",
			zap.String("conversationId", sess.ID),
			zap.String("kind", f.Kind),
			zap.Error(err))
		return nil, err
	}

	sess.mu.Lock()
	sess.lastErr = nil
	sess.lastUtterance = ""
	sess.mu.Unlock()

	msg := sess.Store.AppendAssistantMessage(turn.Message, turn.Metadata, turn.Businesses)
	return &Reply{Message: msg, SessionID: turn.SessionID, Attempts: turn.Attempts}, nil
}

func (s *Service) dispatchContext(sess *Session, opts SendOptions) models.DispatchContext {
	sess.mu.RLock()
	dc := models.DispatchContext{
		Location:        sess.location,
		UserPreferences: sess.preferences,
		RetryOnFailure:  s.retryOnFailure,
		MaxRetries:      s.maxRetries,
	}
	sess.mu.RUnlock()

	if opts.Location != nil {
		dc.Location = opts.Location
	}
	if opts.Preferences != nil {
		dc.UserPreferences = opts.Preferences
	}
	if opts.RetryOnFailure != nil {
		dc.RetryOnFailure = *opts.RetryOnFailure
	}
	if opts.MaxRetries > 0 {
		dc.MaxRetries = opts.MaxRetries
	}
	return dc
}

// RetryLast re-dispatches the utterance of the last failed send. The user message from the
// failed attempt stays; only the dispatch is repeated.
func (s *Service) RetryLast(ctx context.Context, convID string, opts SendOptions) (*Reply, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()

	sess.mu.RLock()
	text := sess.lastUtterance
	sess.mu.RUnlock()
	if text == "" {
		return nil, ErrNothingToRetry
	}

	history := sess.Store.Messages()
	if n := len(history); n > 0 && history[n-1].Role == models.RoleUser && history[n-1].Content == text {
		history = history[:n-1]
	}
	return s.dispatchTurn(ctx, sess, text, history, opts)
}

// DismissError clears the shown failure without touching messages or bookings.
func (s *Service) DismissError(convID string) error {
	sess, err := s.Session(convID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	had := sess.lastErr != nil
	sess.lastErr = nil
	sess.mu.Unlock()
	if had {
		sess.Store.RecordInteraction(models.EventErrorDismissed, nil)
	}
	return nil
}

// NewConversation starts a new chat within the session.
func (s *Service) NewConversation(convID string) error {
	sess, err := s.Session(convID)
	if err != nil {
		return err
	}
	sess.op.Lock()
	defer sess.op.Unlock()

	sess.Store.Clear()
	sess.mu.Lock()
	sess.lastErr = nil
	sess.lastUtterance = ""
	sess.selected = nil
	sess.mu.Unlock()
	return nil
}

// ApplySuggestion records the click, then executes the resolved action.
func (s *Service) ApplySuggestion(ctx context.Context, convID string, sg models.Suggestion, opts SendOptions) (*ActionResult, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()

	sess.Store.RecordInteraction(models.EventSuggestionClicked, map[string]any{
		"id":     sg.ID,
		"text":   sg.Text,
		"action": string(sg.Action),
	})

	action := suggestion.Resolve(sg)
	result := &ActionResult{Action: action.Kind.String(), Matched: true}

	if action.Selects() && action.Business != nil {
		sess.selectBusiness(action.Business)
		sess.Store.RecordInteraction(models.EventBusinessSelected, map[string]any{
			"businessId": action.Business.ID,
			"name":       action.Business.Name,
		})
		result.Selected = action.Business
	}
	if action.ShouldDispatch() {
		reply, err := s.send(ctx, sess, action.Utterance, opts)
		if err != nil {
			return result, err
		}
		result.Reply = reply
	}
	return result, nil
}

// ApplySuggestedAction maps a free-text action label to an utterance and dispatches it.
func (s *Service) ApplySuggestedAction(ctx context.Context, convID, label string, business *models.Business, opts SendOptions) (*ActionResult, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()

	res := suggestion.ResolveLabel(label, business)
	payload := map[string]any{"label": label, "matched": res.Matched(), "utterance": res.Utterance}
	if business != nil {
		payload["businessId"] = business.ID
	}
	sess.Store.RecordInteraction(models.EventActionClicked, payload)

	result := &ActionResult{Action: suggestion.Dispatch.String(), Matched: res.Matched()}
	reply, err := s.send(ctx, sess, res.Utterance, opts)
	if err != nil {
		return result, err
	}
	result.Reply = reply
	return result, nil
}

// Book runs one reservation attempt. A declined booking is returned as an outcome, not an error.
func (s *Service) Book(ctx context.Context, convID string, req models.BookingRequest) (*models.BookingOutcome, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()
	return s.book(ctx, sess, req)
}

func (s *Service) book(ctx context.Context, sess *Session, req models.BookingRequest) (*models.BookingOutcome, error) {
	sess.Store.RecordInteraction(models.EventBookingAttempted, map[string]any{
		"businessId": req.BusinessID,
		"category":   req.Category,
		"date":       req.BookingDetails.Date,
		"time":       req.BookingDetails.Time,
		"partySize":  req.BookingDetails.PartySize,
	})

	outcome, err := s.booker.SimulateSingleBooking(ctx, req)
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			sess.setFailure(&Failure{Kind: FailureBookingValidation, Message: verr.Message, OccurredAt: s.now()})
		}
		return nil, err
	}

	result := map[string]any{"businessId": outcome.BusinessID, "success": outcome.Success}
	if outcome.Success {
		result["confirmationId"] = outcome.ConfirmationID
	} else if outcome.Error != nil {
		result["code"] = outcome.Error.Code
	}
	sess.Store.RecordInteraction(models.EventBookingResult, result)

	if !outcome.Success {
		f := &Failure{Kind: FailureBookingProvider, Message: "booking failed", Retryable: true, OccurredAt: s.now()}
		if outcome.Error != nil {
			f.Message = outcome.Error.Message
		}
		sess.setFailure(f)
		return outcome, nil
	}

	sess.mu.Lock()
	sess.bookings = append(sess.bookings, *outcome)
	sess.mu.Unlock()

	s.persistBooking(ctx, sess, *outcome)
	s.scheduleReminder(ctx, sess, *outcome)
	return outcome, nil
}

// persistBooking and scheduleReminder are best effort: the booking already stands.
func (s *Service) persistBooking(ctx context.Context, sess *Session, outcome models.BookingOutcome) {
	if s.cache == nil || sess.UserID == "" {
		return
	}
	if err := s.cache.AppendBooking(ctx, sess.UserID, outcome); err != nil {
		s.logger.Warn("Failed to cache booking",
			zap.String("userId", sess.UserID),
			zap.String("confirmationId", outcome.ConfirmationID),
			zap.Error(err))
	}
}

func (s *Service) scheduleReminder(ctx context.Context, sess *Session, outcome models.BookingOutcome) {
	if s.reminders == nil {
		return
	}
	fireAt, ok := tasks.ReminderFireTime(outcome.Request.BookingDetails, s.reminderLead, s.now())
	if !ok {
		s.logger.Debug("Skipping reminder", zap.String("confirmationId", outcome.ConfirmationID))
		return
	}
	payload := tasks.NewReminderPayload(sess.UserID, sess.ID, sess.businessName(outcome.BusinessID), outcome, fireAt)
	if err := s.reminders.Schedule(ctx, payload, fireAt); err != nil {
		s.logger.Warn("Failed to schedule reminder", zap.String("confirmationId", outcome.ConfirmationID), zap.Error(err))
	}
}

// BookItinerary books every activity that needs a booking and is not already settled.
// Activities that fail validation or are declined are marked failed; the rest are confirmed.
func (s *Service) BookItinerary(ctx context.Context, convID string, it models.Itinerary, contact models.UserContact, partySize int) (*ItineraryBookingResult, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	sess.op.Lock()
	defer sess.op.Unlock()

	out := copyItinerary(it)
	result := &ItineraryBookingResult{Outcomes: []models.BookingOutcome{}}

	for di := range out.Days {
		day := &out.Days[di]
		for ai := range day.Activities {
			act := &day.Activities[ai]
			if !act.BookingRequired {
				continue
			}
			if act.BookingStatus != models.BookingNone && act.BookingStatus != models.BookingPending && act.BookingStatus != "" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			req := models.BookingRequest{
				BusinessID: act.Activity.ID,
				Category:   act.Category,
				BookingDetails: models.BookingDetails{
					Date:      day.Date,
					Time:      act.Time,
					PartySize: partySize,
				},
				UserContact: contact,
			}
			outcome, err := s.book(ctx, sess, req)
			switch {
			case err != nil && ctx.Err() != nil:
				return nil, err
			case err != nil:
				act.BookingStatus = models.BookingFailed
				result.Failed++
			case outcome.Success:
				act.BookingStatus = models.BookingConfirmed
				result.Confirmed++
				result.Outcomes = append(result.Outcomes, *outcome)
			default:
				act.BookingStatus = models.BookingFailed
				result.Failed++
				result.Outcomes = append(result.Outcomes, *outcome)
			}
		}
	}

	sess.Store.RecordInteraction(models.EventItineraryBooked, map[string]any{
		"confirmed": result.Confirmed,
		"failed":    result.Failed,
	})
	result.Itinerary = out
	return result, nil
}

func copyItinerary(it models.Itinerary) models.Itinerary {
	out := models.Itinerary{TotalEstimatedCost: it.TotalEstimatedCost, Days: make([]models.Day, len(it.Days))}
	for i, d := range it.Days {
		d.Activities = append([]models.PlannedActivity(nil), d.Activities...)
		out.Days[i] = d
	}
	return out
}

// BookingHistory returns the confirmed bookings of the user, falling back to the
// conversation's own when there is no user or no cache.
func (s *Service) BookingHistory(ctx context.Context, convID string) ([]models.BookingOutcome, error) {
	sess, err := s.Session(convID)
	if err != nil {
		return nil, err
	}
	if s.cache == nil || sess.UserID == "" {
		return sess.Bookings(), nil
	}
	history, err := s.cache.GetBookingHistory(ctx, sess.UserID)
	if err != nil {
		s.logger.Warn("Failed to read cached bookings", zap.String("userId", sess.UserID), zap.Error(err))
		return sess.Bookings(), nil
	}
	if history == nil {
		history = []models.BookingOutcome{}
	}
	return history, nil
}

func (s *Service) SavePreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	if s.cache == nil {
		return ErrCacheUnavailable
	}
	if userID == "" {
		return ErrMissingUserID
	}
	return s.cache.SetPreferences(ctx, userID, prefs)
}

// LoadPreferences returns nil without error on a cache miss.
func (s *Service) LoadPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	if s.cache == nil {
		return nil, ErrCacheUnavailable
	}
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.cache.GetPreferences(ctx, userID)
}
