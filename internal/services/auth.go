package services

import (
	"errors"
	"strings"

	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/internal/utils"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
	Skills   string `json:"skills"` // comma-separated tags
	Bio      string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new student account and logs it in immediately.
// Usernames are unique; the skill list is normalized before storage.
func (s *AuthService) Register(req *RegisterRequest) (*LoginResponse, error) {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("username already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  req.Username,
		Password:  hash,
		Email:     req.Email,
		IsStudent: true,
		Skills:    models.JoinTags(req.Skills),
		Bio:       req.Bio,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The count above races with concurrent registrations; the unique
		// index is the authority.
		if isDuplicateKey(err) {
			return nil, response.NewConflict("username already taken")
		}
		return nil, err
	}

	LogInfo("auth", "register", "new account: "+user.Username, &user.ID, "", nil)

	token, err := utils.GenerateToken(user.ID, user.Username, "student", config.GlobalConfig.JWT.ExpireHour)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: &user}, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid username or password")
	}

	role := "user"
	if user.IsStudent {
		role = "student"
	}
	token, err := utils.GenerateToken(user.ID, user.Username, role, config.GlobalConfig.JWT.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: &user}, nil
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// Relies on gorm's TranslateError, with a message check for drivers that
// bypass translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

// CurrentUser loads the account behind a token's user ID.
func (s *AuthService) CurrentUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
