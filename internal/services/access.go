package services

import (
	"errors"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

// findProject loads a project or returns a NotFound error.
func findProject(db *gorm.DB, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// isOwnerOrMember reports whether the user owns the project or holds an
// accepted membership row.
func isOwnerOrMember(db *gorm.DB, project *models.Project, userID uint) bool {
	if userID == 0 {
		return false
	}
	if project.OwnerID == userID {
		return true
	}
	var count int64
	db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND status = ?", project.ID, userID, models.MemberStatusMember).
		Count(&count)
	return count > 0
}
