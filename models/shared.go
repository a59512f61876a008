package models

// ReminderPayload is carried by a booking reminder task.
type ReminderPayload struct {
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
	BusinessID     string `json:"businessId"`
	ConfirmationID string `json:"confirmationId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	FireDate       string `json:"fireDate"`
}
