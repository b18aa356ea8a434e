package models

import (
	"time"
)

// ProjectFile records an uploaded blob shared with a project team.
// Name is the display name the uploader chose; StoredPath is where the
// blob actually lives on disk.
type ProjectFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"index;not null" json:"project_id"`
	Project      *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UploadedByID uint      `gorm:"not null" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	StoredPath   string    `gorm:"size:500;not null" json:"-"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (ProjectFile) TableName() string { return "project_files" }
