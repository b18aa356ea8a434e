package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{
		teamService: services.NewTeamService(db),
	}
}

// RequestJoin asks to join a project's team
// POST /api/projects/:id/join
func (h *TeamHandler) RequestJoin(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	if err := h.teamService.RequestJoin(projectID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListTeam returns members and pending requests. Owner only.
// GET /api/projects/:id/team
func (h *TeamHandler) ListTeam(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	view, err := h.teamService.ListTeam(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// Accept approves a pending join request. Owner only.
// POST /api/projects/:id/team/:userId/accept
func (h *TeamHandler) Accept(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}
	requesterID, ok := parseID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	if err := h.teamService.Accept(projectID, requesterID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Reject discards a pending join request. Owner only.
// POST /api/projects/:id/team/:userId/reject
func (h *TeamHandler) Reject(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}
	requesterID, ok := parseID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	if err := h.teamService.Reject(projectID, requesterID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RemoveMember takes an accepted member off the team. Owner only.
// DELETE /api/projects/:id/team/:userId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}
	memberID, ok := parseID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(projectID, memberID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
