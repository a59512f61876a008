package models

import "time"

// DispatchContext is passed per call and never stored.
type DispatchContext struct {
	Location        *Location    `json:"location,omitempty"`
	UserPreferences *Preferences `json:"userPreferences,omitempty"`
	RetryOnFailure  bool         `json:"retryOnFailure"`
	MaxRetries      int          `json:"maxRetries"`
}

// AssistantTurn is the normalized successful backend reply.
type AssistantTurn struct {
	Message    string           `json:"message"`
	Businesses []Business       `json:"businesses,omitempty"`
	Metadata   *MessageMetadata `json:"metadata,omitempty"`
	SessionID  string           `json:"sessionId"`
	Attempts   int              `json:"attempts"`
}

// HistoryEntry is the wire form of a prior message sent to the backend.
type HistoryEntry struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// RecommendationRequest is the recommendation backend request body.
type RecommendationRequest struct {
	Message             string         `json:"message"`
	Location            *Location      `json:"location,omitempty"`
	UserPreferences     *Preferences   `json:"user_preferences,omitempty"`
	ConversationHistory []HistoryEntry `json:"conversation_history"`
	SessionID           string         `json:"session_id"`
}

// RecommendationResponse is the recommendation backend response body.
type RecommendationResponse struct {
	Success  bool                `json:"success"`
	Data     *RecommendationData `json:"data,omitempty"`
	Error    string              `json:"error,omitempty"`
	Terminal bool                `json:"terminal,omitempty"`
}

type RecommendationData struct {
	Message    string           `json:"message"`
	Businesses []Business       `json:"businesses,omitempty"`
	Metadata   *MessageMetadata `json:"metadata,omitempty"`
}
