package services

import (
	"errors"
	"mime/multipart"

	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UpdateProfileRequest struct {
	Email         *string `json:"email" binding:"omitempty,email"`
	Skills        *string `json:"skills"` // comma-separated tags
	Bio           *string `json:"bio"`
	PortfolioLink *string `json:"portfolio_link"`
	Avatar        *string `json:"avatar"`
}

// PublicProfile is the view other students see: the account plus a summary
// of its peer reviews.
type PublicProfile struct {
	User          *models.User        `json:"user"`
	Reviews       []models.PeerReview `json:"reviews"`
	ReviewCount   int                 `json:"review_count"`
	AverageRating float64             `json:"average_rating"`
}

// UpdateProfile applies a partial update to the caller's own profile.
// Only fields present in the request change.
func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Skills != nil {
		updates["skills"] = models.JoinTags(*req.Skills)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.PortfolioLink != nil {
		updates["portfolio_link"] = *req.PortfolioLink
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// UpdateAvatar stores an uploaded profile picture and records its path,
// replacing any previous upload.
func (s *UserService) UpdateAvatar(userID uint, header *multipart.FileHeader) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	path, err := StoreImage(header)
	if err != nil {
		return nil, err
	}

	previous := user.Avatar
	if err := s.db.Model(&user).Update("avatar", path).Error; err != nil {
		removeStoredBlob(path)
		return nil, err
	}
	removeStoredBlob(previous)

	user.Avatar = path
	return &user, nil
}

// GetProfile returns another student's public profile with their received
// reviews, newest first.
func (s *UserService) GetProfile(userID uint) (*PublicProfile, error) {
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

	profile := &PublicProfile{
		User:        &user,
		Reviews:     reviews,
		ReviewCount: len(reviews),
	}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		profile.AverageRating = float64(sum) / float64(len(reviews))
	}
	return profile, nil
}
