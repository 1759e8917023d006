// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/pkg/auth"
)

// Service errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account is disabled")
)

// Service handles user business logic
type Service struct {
	db          *gorm.DB
	jwtManager  *auth.JWTManager
	passwordMgr *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, jwtManager *auth.JWTManager, passwordMgr *auth.PasswordManager) *Service {
	return &Service{
		db:          db,
		jwtManager:  jwtManager,
		passwordMgr: passwordMgr,
	}
}

// RegisterRequest represents a signup payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=buyer seller"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned on successful register/login
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"-"`
}

// Register creates a new user account and issues a session token
func (s *Service) Register(req *RegisterRequest) (*AuthResult, error) {
	if err := s.passwordMgr.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	var count int64
	if err := s.db.Model(&User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := s.passwordMgr.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleBuyer
	}

	user := &User{
		Name:     strings.TrimSpace(req.Name),
		Phone:    phone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Phone, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(req *LoginRequest) (*AuthResult, error) {
	var user User
	err := s.db.Where("phone = ?", strings.TrimSpace(req.Phone)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if err := s.passwordMgr.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Phone, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: &user, Token: token}, nil
}

// GetByID returns a user by ID
func (s *Service) GetByID(id uint) (*User, error) {
	var user User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfileRequest represents a profile update payload
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile updates mutable profile fields
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
