package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. It is never mutated after being appended.
type Message struct {
	ID         string           `json:"id"`
	Role       Role             `json:"role"`
	Content    string           `json:"content"`
	Timestamp  time.Time        `json:"timestamp"`
	Businesses []Business       `json:"businesses,omitempty"`
	Metadata   *MessageMetadata `json:"metadata,omitempty"`
}

type MessageMetadata struct {
	RequiresClarification  bool         `json:"requiresClarification"`
	SuggestedActions       []string     `json:"suggestedActions,omitempty"`
	InteractiveSuggestions []Suggestion `json:"interactiveSuggestions,omitempty"`
	AIDecision             *Decision    `json:"aiDecision,omitempty"`
}

// Decision is the backend's explanation of how it read the request.
type Decision struct {
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

type SuggestionAction string

const (
	ActionQuery   SuggestionAction = "query"
	ActionBook    SuggestionAction = "book"
	ActionExplore SuggestionAction = "explore"
	ActionClarify SuggestionAction = "clarify"
	ActionDefault SuggestionAction = "default"
)

// Suggestion is a clickable follow-up attached to an assistant message.
type Suggestion struct {
	ID     string           `json:"id"`
	Text   string           `json:"text"`
	Action SuggestionAction `json:"action"`
	Data   *SuggestionData  `json:"data,omitempty"`
}

type SuggestionData struct {
	Business *Business `json:"business,omitempty"`
}

// InteractionEvent is an analytics/debug entry, kept apart from the message list.
type InteractionEvent struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Interaction event types recorded by the assistant.
const (
	EventMessageSent       = "message_sent"
	EventDispatchFailed    = "dispatch_failed"
	EventSuggestionClicked = "suggestion_clicked"
	EventActionClicked     = "suggested_action_clicked"
	EventBusinessSelected  = "business_selected"
	EventBookingAttempted  = "booking_attempted"
	EventBookingResult     = "booking_result"
	EventErrorDismissed    = "error_dismissed"
	EventItineraryBooked   = "itinerary_booked"
)
