package services

import (
	"mime/multipart"
	"os"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Description    string `json:"description"`
	RequiredSkills string `json:"required_skills"` // comma-separated tags
	Thumbnail      string `json:"thumbnail"`
	GeminiAPIKey   string `json:"gemini_api_key"`
}

type UpdateProjectRequest struct {
	Title          *string `json:"title" binding:"omitempty,max=200"`
	Description    *string `json:"description"`
	RequiredSkills *string `json:"required_skills"`
	Thumbnail      *string `json:"thumbnail"`
	GeminiAPIKey   *string `json:"gemini_api_key"`
}

// ProjectDetail bundles a project with the caller's relationship to it so the
// client can decide which controls to show.
type ProjectDetail struct {
	models.Project
	IsOwner     bool `json:"is_owner"`
	IsMember    bool `json:"is_member"`
	HasPending  bool `json:"has_pending_request"`
	MemberCount int  `json:"member_count"`
}

// Create registers a new project owned by the caller.
func (s *ProjectService) Create(ownerID uint, req *CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		OwnerID:        ownerID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: models.JoinTags(req.RequiredSkills),
		Thumbnail:      req.Thumbnail,
		GeminiAPIKey:   req.GeminiAPIKey,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	LogInfo("project", "create", "project created: "+project.Title, &ownerID, "", nil)
	return &project, nil
}

// Get returns a project with ownership and membership flags for the caller.
// Anonymous callers (userID 0) see all flags false.
func (s *ProjectService) Get(projectID, userID uint) (*ProjectDetail, error) {
	var project models.Project
	if err := s.db.Preload("Owner").First(&project, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	detail := &ProjectDetail{Project: project}
	detail.IsOwner = userID != 0 && project.OwnerID == userID

	var memberCount int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND status = ?", projectID, models.MemberStatusMember).
		Count(&memberCount)
	detail.MemberCount = int(memberCount)

	if userID != 0 && !detail.IsOwner {
		var membership models.ProjectMember
		err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error
		if err == nil {
			detail.IsMember = membership.Status == models.MemberStatusMember
			detail.HasPending = membership.Status == models.MemberStatusPending
		}
	}
	return detail, nil
}

// Update applies a partial edit. Only the owner may update a project.
func (s *ProjectService) Update(projectID, userID uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, response.NewForbidden("only the project owner can edit the project")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RequiredSkills != nil {
		updates["required_skills"] = models.JoinTags(*req.RequiredSkills)
	}
	if req.Thumbnail != nil {
		updates["thumbnail"] = *req.Thumbnail
	}
	if req.GeminiAPIKey != nil {
		updates["gemini_api_key"] = *req.GeminiAPIKey
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return project, nil
}

// UpdateThumbnail stores an uploaded project image and records its path,
// replacing any previous upload. Owner only.
func (s *ProjectService) UpdateThumbnail(projectID, userID uint, header *multipart.FileHeader) (*models.Project, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, response.NewForbidden("only the project owner can edit the project")
	}

	path, err := StoreImage(header)
	if err != nil {
		return nil, err
	}

	previous := project.Thumbnail
	if err := s.db.Model(project).Update("thumbnail", path).Error; err != nil {
		removeStoredBlob(path)
		return nil, err
	}
	removeStoredBlob(previous)

	project.Thumbnail = path
	return project, nil
}

// Delete removes a project and everything hanging off it: tasks, membership
// rows, chat history and file records in one transaction, then the uploaded
// blobs from disk.
func (s *ProjectService) Delete(projectID, userID uint) error {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return response.NewForbidden("only the project owner can delete the project")
	}

	var files []models.ProjectFile
	s.db.Where("project_id = ?", projectID).Find(&files)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return err
	}

	// Blob removal happens after the transaction commits; a leftover file is
	// recoverable garbage, a dangling DB row is not.
	for _, f := range files {
		if err := os.Remove(f.StoredPath); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", f.StoredPath).Msg("failed to remove project file blob")
		}
	}
	removeStoredBlob(project.Thumbnail)

	LogInfo("project", "delete", "project deleted: "+project.Title, &userID, "", nil)
	return nil
}

// ListOwned returns the caller's own projects, newest first.
func (s *ProjectService) ListOwned(userID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListJoined returns projects where the caller is an accepted member.
func (s *ProjectService) ListJoined(userID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Preload("Owner").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ? AND project_members.status = ?", userID, models.MemberStatusMember).
		Order("projects.created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
