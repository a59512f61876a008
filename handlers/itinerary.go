package handlers

import (
	"net/http"

	"wanderly/models"
	"wanderly/services/itinerary"

	"github.com/gin-gonic/gin"
)

// ItineraryHandler scores itineraries and proxies generation requests.
type ItineraryHandler struct {
	Scorer    *itinerary.Scorer
	Generator itinerary.Generator
}

func NewItineraryHandler(scorer *itinerary.Scorer, gen itinerary.Generator) *ItineraryHandler {
	return &ItineraryHandler{Scorer: scorer, Generator: gen}
}

// EvaluateHandler scores the posted itinerary; ?preset= overrides the configured preset.
func (h *ItineraryHandler) EvaluateHandler(c *gin.Context) {
	var it models.Itinerary
	if err := c.ShouldBindJSON(&it); err != nil {
		badRequest(c, err)
		return
	}
	if name := c.Query("preset"); name != "" {
		preset, err := itinerary.ParsePreset(name)
		if err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, h.Scorer.EvaluateWith(it, preset))
		return
	}
	c.JSON(http.StatusOK, h.Scorer.Evaluate(it))
}

func (h *ItineraryHandler) GenerateHandler(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	it, err := h.Generator.Generate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"itinerary": it,
		"balance":   h.Scorer.Evaluate(*it),
	})
}
