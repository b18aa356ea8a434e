package services

import (
	"errors"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// TeamView is the owner's management view: accepted members plus the queue
// of pending join requests.
type TeamView struct {
	Members []models.ProjectMember `json:"members"`
	Pending []models.ProjectMember `json:"pending"`
}

// RequestJoin records a join request. Requesting again while pending, already
// a member, or owning the project is a no-op rather than an error.
func (s *TeamService) RequestJoin(projectID, userID uint) error {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID == userID {
		return nil
	}

	var existing models.ProjectMember
	err = s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	membership := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Status:    models.MemberStatusPending,
	}
	if err := s.db.Create(&membership).Error; err != nil {
		return err
	}

	LogInfo("team", "join_request", "join requested", &userID, "", map[string]uint{"project_id": projectID})
	return nil
}

// ListTeam returns the project's team view. Owner only.
func (s *TeamService) ListTeam(projectID, userID uint) (*TeamView, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, response.NewForbidden("only the project owner can manage the team")
	}

	view := &TeamView{
		Members: []models.ProjectMember{},
		Pending: []models.ProjectMember{},
	}

	var rows []models.ProjectMember
	if err := s.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		switch row.Status {
		case models.MemberStatusMember:
			view.Members = append(view.Members, row)
		case models.MemberStatusPending:
			view.Pending = append(view.Pending, row)
		}
	}
	return view, nil
}

// Accept promotes a pending join request to membership. Owner only; a request
// that is not pending reads as not found.
func (s *TeamService) Accept(projectID, requesterID, ownerID uint) error {
	return s.resolveRequest(projectID, requesterID, ownerID, true)
}

// Reject discards a pending join request. Owner only.
func (s *TeamService) Reject(projectID, requesterID, ownerID uint) error {
	return s.resolveRequest(projectID, requesterID, ownerID, false)
}

func (s *TeamService) resolveRequest(projectID, requesterID, ownerID uint, accept bool) error {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != ownerID {
		return response.NewForbidden("only the project owner can manage the team")
	}

	var membership models.ProjectMember
	err = s.db.Where("project_id = ? AND user_id = ? AND status = ?",
		projectID, requesterID, models.MemberStatusPending).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("join request not found")
		}
		return err
	}

	if accept {
		if err := s.db.Model(&membership).Update("status", models.MemberStatusMember).Error; err != nil {
			return err
		}
		LogInfo("team", "accept", "join request accepted", &ownerID, "", map[string]uint{
			"project_id": projectID, "user_id": requesterID,
		})
		return nil
	}

	if err := s.db.Delete(&membership).Error; err != nil {
		return err
	}
	LogInfo("team", "reject", "join request rejected", &ownerID, "", map[string]uint{
		"project_id": projectID, "user_id": requesterID,
	})
	return nil
}

// RemoveMember kicks an accepted member off the team. Owner only.
func (s *TeamService) RemoveMember(projectID, memberID, ownerID uint) error {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != ownerID {
		return response.NewForbidden("only the project owner can manage the team")
	}

	result := s.db.Where("project_id = ? AND user_id = ? AND status = ?",
		projectID, memberID, models.MemberStatusMember).Delete(&models.ProjectMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("member not found")
	}
	return nil
}
