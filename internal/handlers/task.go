package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService      *services.TaskService
	analyticsService *services.AnalyticsService
	aiService        *services.AIService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService:      services.NewTaskService(db),
		analyticsService: services.NewAnalyticsService(db),
		aiService:        services.NewAIService(db),
	}
}

// List returns a project's board
// GET /api/projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	tasks, err := h.taskService.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create adds a task to the board. Owner only.
// POST /api/projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// UpdateStatus moves a task to another board column
// PUT /api/tasks/:id/status/:status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, ok := parseID(c, "id", "invalid task id")
	if !ok {
		return
	}

	status, ok := models.ParseTaskStatus(c.Param("status"))
	if !ok {
		response.BadRequest(c, "status must be TODO, IN_PROGRESS or DONE")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, status, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Analytics returns the board's status distribution and contribution ranking
// GET /api/projects/:id/analytics
func (h *TaskHandler) Analytics(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	analytics, err := h.analyticsService.ForProject(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, analytics)
}

// GenerateTasks asks the AI model to populate the board. Owner only.
// POST /api/projects/:id/tasks/generate
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	projectID, ok := parseID(c, "id", "invalid project id")
	if !ok {
		return
	}

	tasks, err := h.aiService.GenerateTasks(c.Request.Context(), projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, tasks)
}
