package handlers

import (
	"net/http"

	"venueflow/services/approval"
	"venueflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApprovalHandler exposes the human-in-the-loop gate.
type ApprovalHandler struct {
	Svc    approval.ApprovalService
	Logger *zap.Logger
}

func NewApprovalHandler(svc approval.ApprovalService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{Svc: svc, Logger: logger}
}

// ListPending returns all drafts awaiting approval, with their routing state
// (caller step, hashes) attached for the reviewer.
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	drafts, err := h.Svc.ListPending(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to list pending drafts", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list pending drafts", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

type decideRequest struct {
	Approve   bool   `json:"approve"`
	DecidedBy string `json:"decided_by" binding:"required"`
}

// Decide approves or rejects one pending draft.
func (h *ApprovalHandler) Decide(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid decision payload", err.Error())
		return
	}

	draft, err := h.Svc.Decide(c.Request.Context(), c.Param("draftID"), req.Approve, req.DecidedBy)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to decide draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}
