package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{
		chatService: services.NewChatService(db),
	}
}

// List returns the project chat history
// GET /api/projects/:id/messages
func (h *ChatHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	messages, err := h.chatService.List(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, messages)
}

// Send appends a chat message
// POST /api/projects/:id/messages
func (h *ChatHandler) Send(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.Send(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message)
}
