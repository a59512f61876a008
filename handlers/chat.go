package handlers

import (
	"errors"
	"io"
	"net/http"

	"wanderly/models"
	"wanderly/services/assistant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes conversations over HTTP.
type ChatHandler struct {
	Svc *assistant.Service
}

func NewChatHandler(svc *assistant.Service) *ChatHandler {
	return &ChatHandler{Svc: svc}
}

type sendMessageRequest struct {
	Message string `json:"message"`
	assistant.SendOptions
}

type applySuggestionRequest struct {
	Suggestion models.Suggestion `json:"suggestion"`
	assistant.SendOptions
}

type applyActionRequest struct {
	Label    string           `json:"label" binding:"required"`
	Business *models.Business `json:"business,omitempty"`
	assistant.SendOptions
}

// bindOptional binds a JSON body when one was sent.
func bindOptional(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *ChatHandler) StartConversationHandler(c *gin.Context) {
	var opts assistant.StartOptions
	if err := bindOptional(c, &opts); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.Svc.StartConversation(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, models.ErrInvalidLatitude) || errors.Is(err, models.ErrInvalidLongitude) {
			badRequest(c, err)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *ChatHandler) GetConversationHandler(c *gin.Context) {
	sess, err := h.Svc.Session(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	reply, err := h.Svc.SendMessage(c.Request.Context(), c.Param("id"), req.Message, req.SendOptions)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("Assistant replied",
		zap.String("conversationId", c.Param("id")),
		zap.Int("attempts", reply.Attempts))
	c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) RetryHandler(c *gin.Context) {
	var opts assistant.SendOptions
	if err := bindOptional(c, &opts); err != nil {
		badRequest(c, err)
		return
	}
	reply, err := h.Svc.RetryLast(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) DismissErrorHandler(c *gin.Context) {
	if err := h.Svc.DismissError(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetHandler starts a new chat inside the conversation.
func (h *ChatHandler) ResetHandler(c *gin.Context) {
	if err := h.Svc.NewConversation(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) EndConversationHandler(c *gin.Context) {
	if err := h.Svc.EndConversation(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) ApplySuggestionHandler(c *gin.Context) {
	var req applySuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.Svc.ApplySuggestion(c.Request.Context(), c.Param("id"), req.Suggestion, req.SendOptions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) ApplyActionHandler(c *gin.Context) {
	var req applyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.Svc.ApplySuggestedAction(c.Request.Context(), c.Param("id"), req.Label, req.Business, req.SendOptions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
