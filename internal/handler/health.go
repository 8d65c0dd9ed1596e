package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/service"
)

type HealthHandler struct {
	chatService service.ChatService
}

func NewHealthHandler(chatService service.ChatService) *HealthHandler {
	return &HealthHandler{chatService: chatService}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "chat-relay",
		"messages": h.chatService.Count(),
	})
}
