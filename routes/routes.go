package routes

import (
	"net/http"
	"time"

	"wanderly/handlers"
	"wanderly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes registers chat endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		api.POST("", hb.StartConversationHandler)
		api.GET("/:id/messages", hb.GetConversationHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
		api.POST("/:id/retry", hb.RetryHandler)
		api.DELETE("/:id/error", hb.DismissErrorHandler)
		api.POST("/:id/reset", hb.ResetHandler)
		api.DELETE("/:id", hb.EndConversationHandler)
		api.POST("/:id/suggestions", hb.ApplySuggestionHandler)
		api.POST("/:id/actions", hb.ApplyActionHandler)
	}
}

// RegisterItineraryRoutes registers itinerary scoring and generation.
func RegisterItineraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/itinerary")
	{
		api.POST("/evaluate", hb.EvaluateItineraryHandler)
		api.POST("/generate", hb.GenerateItineraryHandler)
	}
}

// RegisterUserRoutes registers per-user preference endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("/:id/preferences", hb.GetPreferencesHandler)
		api.PUT("/:id/preferences", hb.PutPreferencesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wanderly", "health": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterConversationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}
