// File: internal/conversation/handler.go
package conversation

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/middleware"
)

// Handler holds dependencies for conversation handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new conversation handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("conversation-handler")}
}

// RegisterRoutes sets up the routes for conversation operations. All of
// them require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	convGroup := router.Group("/conversations")
	convGroup.Use(authMW)
	{
		convGroup.GET("", h.listConversations)
		convGroup.POST("", h.startConversation)
		convGroup.GET("/:id", h.getConversation)
		convGroup.GET("/:id/messages", h.listMessages)
		convGroup.POST("/:id/messages", h.sendMessage)
		convGroup.POST("/:id/read", h.markRead)
	}
}

func (h *Handler) listConversations(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	summaries, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversations retrieved successfully.", summaries)
}

func (h *Handler) startConversation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	conv, created, err := h.service.Start(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if created {
		common.RespondCreated(c, "Conversation started successfully.", ToDetail(conv, userID))
		return
	}
	common.RespondOK(c, "Conversation retrieved successfully.", ToDetail(conv, userID))
}

func (h *Handler) getConversation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid conversation ID format."))
		return
	}

	conv, err := h.service.Get(c.Request.Context(), userID, conversationID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversation retrieved successfully.", ToDetail(conv, userID))
}

func (h *Handler) listMessages(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid conversation ID format."))
		return
	}

	conv, err := h.service.Get(c.Request.Context(), userID, conversationID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Messages retrieved successfully.", ToDetail(conv, userID).Messages)
}

func (h *Handler) sendMessage(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid conversation ID format."))
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	msg, err := h.service.Send(c.Request.Context(), userID, conversationID, req.Body)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message sent successfully.", ToMessageResponse(msg, userID))
}

func (h *Handler) markRead(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid conversation ID format."))
		return
	}

	updated, err := h.service.MarkRead(c.Request.Context(), userID, conversationID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Messages marked as read.", gin.H{"updated": updated})
}
