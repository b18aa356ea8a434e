package services

import (
	"errors"
	"fmt"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewRequest struct {
	RevieweeID uint   `json:"reviewee_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Feedback   string `json:"feedback"`
}

// Create records a peer review. Ratings outside 1-5 are rejected; strongly
// negative feedback is flagged for operators but stored anyway.
func (s *ReviewService) Create(reviewerID uint, req *CreateReviewRequest) (*models.PeerReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, response.NewBadRequest("rating must be between 1 and 5")
	}
	if req.RevieweeID == reviewerID {
		return nil, response.NewBadRequest("you cannot review yourself")
	}

	var reviewee models.User
	if err := s.db.First(&reviewee, req.RevieweeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	score := SentimentScore(req.Feedback)
	if score < SentimentThreshold {
		logger.Warn().
			Uint("reviewer_id", reviewerID).
			Uint("reviewee_id", req.RevieweeID).
			Float64("polarity", score).
			Msg("strongly negative review feedback")
		LogWarning("review", "negative_feedback",
			fmt.Sprintf("review flagged with polarity %.2f", score),
			&reviewerID, "", map[string]uint{"reviewee_id": req.RevieweeID})
	}

	review := models.PeerReview{
		ReviewerID: reviewerID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Feedback:   req.Feedback,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReceived returns the reviews written about a user, newest first.
func (s *ReviewService) ListReceived(userID uint) ([]models.PeerReview, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var reviews []models.PeerReview
	if err := s.db.Preload("Reviewer").
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
