package models

import (
	"time"
)

// PeerReview is an immutable rating one student gives another.
// Duplicate reviewer/reviewee pairs are allowed.
type PeerReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewerID uint      `gorm:"index;not null" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	RevieweeID uint      `gorm:"index;not null" json:"reviewee_id"`
	Reviewee   *User     `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"` // 1-5
	Feedback   string    `gorm:"type:text" json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PeerReview) TableName() string { return "peer_reviews" }
