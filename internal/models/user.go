package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered student account.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password      string         `gorm:"size:255" json:"-"` // bcrypt hash
	Email         string         `gorm:"size:255" json:"email"`
	IsStudent     bool           `gorm:"default:true" json:"is_student"`
	Skills        string         `gorm:"size:1000" json:"skills"` // comma-separated tags: python,css
	Bio           string         `gorm:"type:text" json:"bio"`
	PortfolioLink string         `gorm:"size:500" json:"portfolio_link"`
	Avatar        string         `gorm:"size:500" json:"avatar"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// SkillSet returns the user's skill tags as a normalized set.
func (u *User) SkillSet() map[string]struct{} {
	return TagSet(u.Skills)
}
