package handlers

import (
	"errors"
	"net/http"

	eventRepo "venueflow/database/repository/event"
	"venueflow/models"
	"venueflow/services/workflow"
	"venueflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler exposes event lifecycle endpoints.
type EventHandler struct {
	Svc    workflow.WorkflowService
	Logger *zap.Logger
}

func NewEventHandler(svc workflow.WorkflowService, logger *zap.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

// CreateEvent starts a new event conversation from an intake request.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid intake payload", err.Error())
		return
	}

	state, err := h.Svc.CreateEvent(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("Failed to create event", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create event", "")
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetEvent returns the full booking state, audit log included.
func (h *EventHandler) GetEvent(c *gin.Context) {
	state, err := h.Svc.GetEvent(c.Request.Context(), c.Param("eventID"))
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Event not found", "")
			return
		}
		h.Logger.Error("Failed to load event", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load event", "")
		return
	}
	c.JSON(http.StatusOK, state)
}

// CancelEvent moves an event to its terminal Cancelled status.
func (h *EventHandler) CancelEvent(c *gin.Context) {
	err := h.Svc.CancelEvent(c.Request.Context(), c.Param("eventID"))
	if err != nil {
		switch {
		case errors.Is(err, eventRepo.ErrEventNotFound):
			utils.JSONError(c, http.StatusNotFound, "Event not found", "")
		case errors.Is(err, workflow.ErrEventClosed):
			utils.JSONError(c, http.StatusConflict, "Event already closed", "")
		default:
			h.Logger.Error("Failed to cancel event", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel event", "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
