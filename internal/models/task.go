package models

import (
	"time"
)

// TaskStatus is the closed set of board columns a task can occupy.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus validates a status literal from the request boundary.
// Anything outside the three known values is rejected rather than stored.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(s), true
	}
	return "", false
}

// Task is a unit of work on a project board.
//
// AssigneeID implements the pull system: it is set to whoever moves the task
// to DONE and cleared when the task moves back to TODO.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"index;not null" json:"project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"` // optional guide text
	Status      TaskStatus `gorm:"size:20;default:TODO;not null" json:"status"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`
	Assignee    *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
