package services

import (
	"strings"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// List returns a project's chat history in the order it was written.
// Members only.
func (s *ChatService) List(projectID, userID uint) ([]models.ProjectMessage, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	var messages []models.ProjectMessage
	if err := s.db.Preload("Sender").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Send appends a message to the project chat. Messages are never edited or
// deleted afterwards.
func (s *ChatService) Send(projectID, userID uint, req *SendMessageRequest) (*models.ProjectMessage, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, userID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewBadRequest("message cannot be empty")
	}

	message := models.ProjectMessage{
		ProjectID: projectID,
		SenderID:  userID,
		Content:   content,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}
