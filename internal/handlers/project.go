package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService     *services.ProjectService
	matchmakingService *services.MatchmakingService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService:     services.NewProjectService(db),
		matchmakingService: services.NewMatchmakingService(db),
	}
}

// List returns all projects ranked against the caller's skills. Anonymous
// callers get the default newest-first feed.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	ranked, err := h.matchmakingService.FindProjects(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, ranked)
}

// GetByID returns one project with the caller's membership flags
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	detail, err := h.projectService.Get(id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Create registers a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// Update edits a project. Owner only.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(id, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// UploadThumbnail replaces a project's image. Owner only.
// PUT /api/projects/:id/thumbnail
func (h *ProjectHandler) UploadThumbnail(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "missing image field")
		return
	}

	project, err := h.projectService.UpdateThumbnail(id, middleware.GetUserID(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project and its dependents. Owner only.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListMine returns the caller's own projects
// GET /api/projects/mine
func (h *ProjectHandler) ListMine(c *gin.Context) {
	projects, err := h.projectService.ListOwned(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// ListJoined returns projects the caller has been accepted into
// GET /api/projects/joined
func (h *ProjectHandler) ListJoined(c *gin.Context) {
	projects, err := h.projectService.ListJoined(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// parseID reads a numeric path parameter and writes a 400 on failure.
func parseID(c *gin.Context, param, errMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		response.BadRequest(c, errMsg)
		return 0, false
	}
	return uint(id), true
}
