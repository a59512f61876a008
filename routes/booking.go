package routes

import (
	"wanderly/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the reservation endpoints of a conversation.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/conversations/:id")
	{
		booking.POST("/bookings", hb.BookHandler)
		booking.GET("/bookings", hb.BookingHistoryHandler)
		booking.POST("/itinerary/bookings", hb.BookItineraryHandler)
	}
}
