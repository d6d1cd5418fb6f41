package routes

import (
	"venueflow/handlers"
	"venueflow/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Conversation *handlers.ConversationHandler
	Event        *handlers.EventHandler
	Approval     *handlers.ApprovalHandler
}

// RegisterRoutes registers all endpoints.
func RegisterRoutes(r *gin.Engine, b *HandlerBundle) {
	events := r.Group("/api/events")
	{
		events.POST("", b.Event.CreateEvent)
		events.GET("/:eventID", b.Event.GetEvent)
		events.POST("/:eventID/cancel", b.Event.CancelEvent)
		events.POST("/:eventID/message", b.Conversation.HandleMessage)
	}

	approvals := r.Group("/api/approvals")
	approvals.Use(middleware.ApproverAuthMiddleware())
	{
		approvals.GET("/pending", b.Approval.ListPending)
		approvals.POST("/:draftID/decide", b.Approval.Decide)
	}
}
