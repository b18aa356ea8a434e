package services

import (
	"errors"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db  *gorm.DB
	hub *BoardHub
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, hub: GetBoardHub()}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ApplyTransition moves a task to the target status, adjusting the assignee
// per the pull system: completing claims the task for the actor, moving back
// to TODO unclaims it, IN_PROGRESS leaves the assignee alone. Holds for any
// prior state.
func ApplyTransition(task *models.Task, target models.TaskStatus, actorID uint) {
	task.Status = target
	switch target {
	case models.TaskStatusDone:
		task.AssigneeID = &actorID
	case models.TaskStatusTodo:
		task.AssigneeID = nil
	}
}

// List returns a project's board, oldest tasks first.
func (s *TaskService) List(projectID uint) ([]models.Task, error) {
	if _, err := findProject(s.db, projectID); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create adds a task to the board. Only the project owner may create tasks.
func (s *TaskService) Create(projectID, actorID uint, req *CreateTaskRequest) (*models.Task, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, response.NewForbidden("only the project owner can create tasks")
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(BoardEvent{ProjectID: projectID, TaskID: task.ID, Status: task.Status, Action: "created"})
	return &task, nil
}

// UpdateStatus transitions a task. The actor must be the project owner or an
// accepted member; the target status literal is validated at the handler
// boundary before reaching here.
func (s *TaskService) UpdateStatus(taskID uint, target models.TaskStatus, actorID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	project, err := findProject(s.db, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrMember(s.db, project, actorID) {
		return nil, response.NewForbidden("you are not a member of this project")
	}

	ApplyTransition(&task, target, actorID)

	// Single-row update; concurrent updates are last-write-wins, which is a
	// known and accepted race for this board.
	if err := s.db.Model(&task).Select("status", "assignee_id").Updates(map[string]interface{}{
		"status":      task.Status,
		"assignee_id": task.AssigneeID,
	}).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(BoardEvent{ProjectID: task.ProjectID, TaskID: task.ID, Status: task.Status, Action: "updated"})
	return &task, nil
}
