package models

import (
	"time"
)

// Membership statuses. A pending row is a join request awaiting owner approval;
// accepting flips the same row to member, so a user is never in both sets.
const (
	MemberStatusPending = "pending"
	MemberStatusMember  = "member"
)

// ProjectMember represents a user's membership state within a project.
// The owner has no row; ownership lives on the project itself.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string    `gorm:"size:20;default:pending;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
