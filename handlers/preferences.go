package handlers

import (
	"net/http"

	"wanderly/models"
	"wanderly/services/assistant"
	"wanderly/utils"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	Svc *assistant.Service
}

func NewPreferencesHandler(svc *assistant.Service) *PreferencesHandler {
	return &PreferencesHandler{Svc: svc}
}

// GetPreferencesHandler answers 404 when nothing fresh is cached for the user.
func (h *PreferencesHandler) GetPreferencesHandler(c *gin.Context) {
	prefs, err := h.Svc.LoadPreferences(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if prefs == nil {
		utils.JSONError(c, http.StatusNotFound, "no saved preferences", "")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) PutPreferencesHandler(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Svc.SavePreferences(c.Request.Context(), c.Param("id"), prefs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
