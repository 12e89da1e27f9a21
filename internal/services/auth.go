package services

import (
	"errors"
	"time"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/internal/utils"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// AuthService handles account registration and sign-in.
type AuthService struct {
	db          *gorm.DB
	expireHours int
}

func NewAuthService(db *gorm.DB, expireHours int) *AuthService {
	return &AuthService{db: db, expireHours: expireHours}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account and returns a session token.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, string, error) {
	var count int64
	s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		return nil, "", response.NewConflict("username or email already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.expireHours)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns a session token. The failure
// message does not say whether the account exists.
func (s *AuthService) Login(req *LoginRequest) (*models.User, string, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", response.NewUnauthorized("invalid username or password")
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", response.NewForbidden("account is disabled")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, "", response.NewUnauthorized("invalid username or password")
	}

	now := time.Now()
	s.db.Model(&user).UpdateColumn("last_login", now)
	user.LastLogin = &now

	token, err := utils.GenerateToken(user.ID, user.Username, s.expireHours)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUserByID returns a user profile.
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
