package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a student project looking for collaborators.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OwnerID        uint           `gorm:"index;not null" json:"owner_id"`
	Owner          *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	RequiredSkills string         `gorm:"size:1000" json:"required_skills"` // comma-separated tags
	Thumbnail      string         `gorm:"size:500" json:"thumbnail"`
	GeminiAPIKey   string         `gorm:"size:255" json:"-"` // optional, enables AI task generation
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// RequiredSkillSet returns the project's required skill tags as a normalized set.
func (p *Project) RequiredSkillSet() map[string]struct{} {
	return TagSet(p.RequiredSkills)
}
