package assistant

import (
	"sync"
	"time"

	"wanderly/models"
	"wanderly/services/conversation"
)

// Session is one conversation. op serializes dispatches and bookings so at most one is in
// flight; mu guards the remaining state.
type Session struct {
	ID     string
	UserID string
	Store  *conversation.Store

	op sync.Mutex

	mu            sync.RWMutex
	location      *models.Location
	preferences   *models.Preferences
	lastErr       *Failure
	lastUtterance string
	selected      *models.Business
	bookings      []models.BookingOutcome
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID           string                  `json:"id"`
	UserID       string                  `json:"userId,omitempty"`
	Messages     []models.Message        `json:"messages"`
	Interactions int                     `json:"interactions"`
	LastError    *Failure                `json:"lastError,omitempty"`
	Selected     *models.Business        `json:"selected,omitempty"`
	Bookings     []models.BookingOutcome `json:"bookings"`
}

func newSession(id string, opts StartOptions, now func() time.Time) *Session {
	return &Session{
		ID:          id,
		UserID:      opts.UserID,
		Store:       conversation.NewStore(conversation.WithClock(now)),
		location:    opts.Location,
		preferences: opts.Preferences,
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ID:           s.ID,
		UserID:       s.UserID,
		Messages:     s.Store.Messages(),
		Interactions: len(s.Store.Interactions()),
		LastError:    copyFailure(s.lastErr),
		Selected:     s.selected,
		Bookings:     append([]models.BookingOutcome{}, s.bookings...),
	}
}

// LastError returns the failure currently shown, or nil.
func (s *Session) LastError() *Failure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFailure(s.lastErr)
}

func (s *Session) Bookings() []models.BookingOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BookingOutcome{}, s.bookings...)
}

func (s *Session) Selected() *models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *Session) setFailure(f *Failure) {
	s.mu.Lock()
	s.lastErr = f
	s.mu.Unlock()
}

func (s *Session) selectBusiness(b *models.Business) {
	s.mu.Lock()
	s.selected = b
	s.mu.Unlock()
}

// businessName looks the id up among businesses the assistant has shown, newest first.
func (s *Session) businessName(id string) string {
	if sel := s.Selected(); sel != nil && sel.ID == id {
		return sel.Name
	}
	msgs := s.Store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		for _, b := range msgs[i].Businesses {
			if b.ID == id && b.Name != "" {
				return b.Name
			}
		}
	}
	return id
}

func copyFailure(f *Failure) *Failure {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}
