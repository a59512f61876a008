package handlers

import (
	"errors"
	"net/http"

	"wanderly/services/assistant"
	"wanderly/services/booking"
	"wanderly/services/dispatch"
	"wanderly/services/itinerary"
	"wanderly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	if de, ok := dispatch.AsError(err); ok {
		status := http.StatusBadGateway
		if de.Kind == dispatch.KindInvalidInput {
			status = http.StatusBadRequest
		}
		getLogger(c).Debug("Dispatch error", zap.Int("attempts", de.Attempts), zap.Error(err))
		utils.JSONErrorResponse(c, status, utils.ErrorResponse{
			Message:   de.Message,
			Code:      string(de.Kind),
			Retryable: de.Retryable(),
		})
		return
	}

	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONErrorResponse(c, http.StatusBadRequest, utils.ErrorResponse{Message: verr.Message, Code: verr.Code})
	case errors.Is(err, itinerary.ErrBackendUnavailable):
		utils.JSONErrorResponse(c, http.StatusBadGateway, utils.ErrorResponse{
			Message:   "Itinerary service unavailable",
			Details:   err.Error(),
			Code:      codeItineraryBackend,
			Retryable: true,
		})
	case errors.Is(err, assistant.ErrConversationNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, assistant.ErrNothingToRetry):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, assistant.ErrMissingUserID), errors.Is(err, itinerary.ErrInvalidRequest):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, assistant.ErrCacheUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, err.Error(), "")
	default:
		getLogger(c).Error("Request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

const codeItineraryBackend = "itinerary_backend_failure"

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
