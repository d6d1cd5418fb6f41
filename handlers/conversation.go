package handlers

import (
	"errors"
	"net/http"

	"venueflow/models"
	"venueflow/services/workflow"
	"venueflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversationHandler exposes message processing over HTTP.
type ConversationHandler struct {
	Svc    workflow.WorkflowService
	Logger *zap.Logger
}

func NewConversationHandler(svc workflow.WorkflowService, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Logger: logger}
}

// HandleMessage processes one inbound client message for an event.
func (h *ConversationHandler) HandleMessage(c *gin.Context) {
	eventID := c.Param("eventID")
	if eventID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing event ID", "")
		return
	}

	var req models.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid message payload", err.Error())
		return
	}

	result, err := h.Svc.ProcessMessage(c.Request.Context(), eventID, req.Text)
	if err != nil {
		if errors.Is(err, workflow.ErrEventClosed) {
			utils.JSONError(c, http.StatusConflict, "Event is closed", "")
			return
		}
		h.Logger.Error("Failed to process message",
			zap.String("eventID", eventID), zap.Error(err))
		// Routing already committed what it could; the client sees a
		// degraded "we'll get back to you", never a raw internal error.
		utils.JSONError(c, http.StatusInternalServerError, "Message handed to our team", "")
		return
	}

	c.JSON(http.StatusOK, result)
}
