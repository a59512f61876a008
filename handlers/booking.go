package handlers

import (
	"net/http"

	"wanderly/models"
	"wanderly/services/assistant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler handles reservation endpoints of a conversation.
type BookingHandler struct {
	Svc *assistant.Service
}

func NewBookingHandler(svc *assistant.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

type bookItineraryRequest struct {
	Itinerary   models.Itinerary   `json:"itinerary"`
	UserContact models.UserContact `json:"userContact"`
	PartySize   int                `json:"partySize"`
}

// BookHandler returns the outcome with 200 whether confirmed or declined; Success tells them apart.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := h.Svc.Book(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !outcome.Success {
		code := ""
		if outcome.Error != nil {
			code = outcome.Error.Code
		}
		getLogger(c).Info("Booking declined", zap.String("businessId", outcome.BusinessID), zap.String("code", code))
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *BookingHandler) BookingHistoryHandler(c *gin.Context) {
	history, err := h.Svc.BookingHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": history})
}

func (h *BookingHandler) BookItineraryHandler(c *gin.Context) {
	var req bookItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.PartySize == 0 {
		req.PartySize = 1
	}
	result, err := h.Svc.BookItinerary(c.Request.Context(), c.Param("id"), req.Itinerary, req.UserContact, req.PartySize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
