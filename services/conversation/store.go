// Package conversation holds the ordered message history and interaction log of one conversation.
package conversation

import (
	"sync"
	"time"

	"wanderly/models"

	"github.com/google/uuid"
)

// Store owns the lifecycle of a conversation's messages. Messages are appended in
// completion order and never mutated; only Clear removes them.
type Store struct {
	mu           sync.RWMutex
	messages     []models.Message
	interactions []models.InteractionEvent

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the message id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) AppendUserMessage(content string) models.Message {
	return s.append(models.Message{Role: models.RoleUser, Content: content})
}

func (s *Store) AppendAssistantMessage(content string, metadata *models.MessageMetadata, businesses []models.Business) models.Message {
	return s.append(models.Message{
		Role:       models.RoleAssistant,
		Content:    content,
		Metadata:   metadata,
		Businesses: businesses,
	})
}

func (s *Store) append(msg models.Message) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.newID()
	msg.Timestamp = s.now()
	s.messages = append(s.messages, msg)
	return msg
}

// RecordInteraction appends to the interaction log. It never touches the messages.
func (s *Store) RecordInteraction(eventType string, payload map[string]any) models.InteractionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := models.InteractionEvent{Type: eventType, Payload: payload, Timestamp: s.now()}
	s.interactions = append(s.interactions, ev)
	return ev
}

// Clear resets both the messages and the interaction log ("new chat").
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.interactions = nil
}

// Messages returns a copy of the ordered history.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Interactions() []models.InteractionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InteractionEvent, len(s.interactions))
	copy(out, s.interactions)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message, if any.
func (s *Store) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
