// internal/domain/seller/service.go
package seller

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Service errors
var (
	ErrSellerNotFound = errors.New("seller profile not found")
)

// Service handles seller profile business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new seller service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProfileRequest represents a seller profile create/update payload
type ProfileRequest struct {
	ShopName    string `json:"shop_name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	GSTIN       string `json:"gstin" binding:"omitempty,max=20"`
}

// GetByUserID returns the seller profile for a user
func (s *Service) GetByUserID(userID uint) (*Seller, error) {
	var seller Seller
	err := s.db.Where("user_id = ?", userID).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	return &seller, nil
}

// GetByID returns a seller profile by its ID
func (s *Service) GetByID(id uint) (*Seller, error) {
	var seller Seller
	if err := s.db.First(&seller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	return &seller, nil
}

// Upsert creates or updates the seller profile for a user
func (s *Service) Upsert(userID uint, req *ProfileRequest) (*Seller, error) {
	var seller Seller
	err := s.db.Where("user_id = ?", userID).First(&seller).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	seller.UserID = userID
	seller.ShopName = strings.TrimSpace(req.ShopName)
	seller.Description = strings.TrimSpace(req.Description)
	seller.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))

	if seller.ID == 0 {
		seller.IsApproved = true
		if err := s.db.Create(&seller).Error; err != nil {
			return nil, fmt.Errorf("failed to create seller: %w", err)
		}
	} else {
		if err := s.db.Save(&seller).Error; err != nil {
			return nil, fmt.Errorf("failed to update seller: %w", err)
		}
	}
	return &seller, nil
}
