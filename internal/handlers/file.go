package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(db *gorm.DB) *FileHandler {
	return &FileHandler{
		fileService: services.NewFileService(db),
	}
}

// List returns a project's shared files
// GET /api/projects/:id/files
func (h *FileHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	files, err := h.fileService.List(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, files)
}

// Upload stores a file shared with the team
// POST /api/projects/:id/files
func (h *FileHandler) Upload(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}

	file, err := h.fileService.Upload(projectID, middleware.GetUserID(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, file)
}

// Download streams a file back to a team member
// GET /api/files/:id
func (h *FileHandler) Download(c *gin.Context) {
	fileID, ok := parseID(c, "id", "invalid file id")
	if !ok {
		return
	}

	file, err := h.fileService.Open(fileID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(file.StoredPath, file.Name)
}

// Delete removes a shared file
// DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	fileID, ok := parseID(c, "id", "invalid file id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(fileID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
