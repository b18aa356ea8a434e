package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService   *services.UserService
	reviewService *services.ReviewService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userService:   services.NewUserService(db),
		reviewService: services.NewReviewService(db),
	}
}

// UpdateProfile edits the caller's own profile
// PUT /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// UploadAvatar replaces the caller's profile picture
// PUT /api/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "missing image field")
		return
	}

	user, err := h.userService.UpdateAvatar(middleware.GetUserID(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// GetProfile returns a student's public profile with their reviews
// GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.userService.GetProfile(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// CreateReview records a peer review about another student
// POST /api/reviews
func (h *UserHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, review)
}

// ListReviews returns the reviews a student has received
// GET /api/users/:id/reviews
func (h *UserHandler) ListReviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	reviews, err := h.reviewService.ListReceived(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, reviews)
}
