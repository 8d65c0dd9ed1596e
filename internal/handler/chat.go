package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

type ChatHandler struct {
	chatService service.ChatService
	log         logger.Logger
}

func NewChatHandler(chatService service.ChatService, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		_ = c.Error(apperrors.ErrInternalServer)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("decode send_message body: %v: %w", err, apperrors.ErrInvalidPayload))
		return
	}

	if _, err := h.chatService.AppendText(c.Request.Context(), session.ID, req.Message); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": apperrors.StatusSuccess})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		_ = c.Error(apperrors.ErrInternalServer)
		return
	}

	messages, err := h.chatService.Project(c.Request.Context(), session.ID)
	if err != nil {
		h.log.Error("Failed to project messages", "error", err, "session_id", session.ID)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
