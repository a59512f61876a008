package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Conversation endpoints
	StartConversationHandler gin.HandlerFunc
	GetConversationHandler   gin.HandlerFunc
	SendMessageHandler       gin.HandlerFunc
	RetryHandler             gin.HandlerFunc
	DismissErrorHandler      gin.HandlerFunc
	ResetHandler             gin.HandlerFunc
	EndConversationHandler   gin.HandlerFunc
	ApplySuggestionHandler   gin.HandlerFunc
	ApplyActionHandler       gin.HandlerFunc

	// Booking endpoints
	BookHandler           gin.HandlerFunc
	BookingHistoryHandler gin.HandlerFunc
	BookItineraryHandler  gin.HandlerFunc

	// Itinerary endpoints
	EvaluateItineraryHandler gin.HandlerFunc
	GenerateItineraryHandler gin.HandlerFunc

	// Preference endpoints
	GetPreferencesHandler gin.HandlerFunc
	PutPreferencesHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(chat *ChatHandler, book *BookingHandler, itin *ItineraryHandler, prefs *PreferencesHandler) *HandlerBundle {
	return &HandlerBundle{
		StartConversationHandler: chat.StartConversationHandler,
		GetConversationHandler:   chat.GetConversationHandler,
		SendMessageHandler:       chat.SendMessageHandler,
		RetryHandler:             chat.RetryHandler,
		DismissErrorHandler:      chat.DismissErrorHandler,
		ResetHandler:             chat.ResetHandler,
		EndConversationHandler:   chat.EndConversationHandler,
		ApplySuggestionHandler:   chat.ApplySuggestionHandler,
		ApplyActionHandler:       chat.ApplyActionHandler,

		BookHandler:           book.BookHandler,
		BookingHistoryHandler: book.BookingHistoryHandler,
		BookItineraryHandler:  book.BookItineraryHandler,

		EvaluateItineraryHandler: itin.EvaluateHandler,
		GenerateItineraryHandler: itin.GenerateHandler,

		GetPreferencesHandler: prefs.GetPreferencesHandler,
		PutPreferencesHandler: prefs.PutPreferencesHandler,
	}
}
