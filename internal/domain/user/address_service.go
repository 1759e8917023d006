// internal/domain/user/address_service.go
package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Address errors
var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressLimit    = errors.New("address limit reached")
)

// AddressService handles saved-address business logic
type AddressService struct {
	db           *gorm.DB
	maxAddresses int
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB, maxAddresses int) *AddressService {
	return &AddressService{db: db, maxAddresses: maxAddresses}
}

// AddressRequest represents an address create/update payload
type AddressRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Phone   string `json:"phone" binding:"required,min=10,max=15"`
	Line1   string `json:"line1" binding:"required,min=3,max=255"`
	City    string `json:"city" binding:"required,min=2,max=100"`
	State   string `json:"state" binding:"omitempty,max=100"`
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
}

// List returns all addresses for a user, newest first
func (s *AddressService) List(userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Get returns a single address owned by the user
func (s *AddressService) Get(userID, addressID uint) (*Address, error) {
	var address Address
	err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}

// Create adds a new address, enforcing the per-user limit
func (s *AddressService) Create(userID uint, req *AddressRequest) (*Address, error) {
	var count int64
	if err := s.db.Model(&Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	if int(count) >= s.maxAddresses {
		return nil, ErrAddressLimit
	}

	address := &Address{
		UserID:  userID,
		Name:    req.Name,
		Phone:   req.Phone,
		Line1:   req.Line1,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	}
	if err := s.db.Create(address).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

// Update modifies an existing address owned by the user
func (s *AddressService) Update(userID, addressID uint, req *AddressRequest) (*Address, error) {
	address, err := s.Get(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Name = req.Name
	address.Phone = req.Phone
	address.Line1 = req.Line1
	address.City = req.City
	address.State = req.State
	address.Pincode = req.Pincode

	if err := s.db.Save(address).Error; err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

// Delete removes an address owned by the user
func (s *AddressService) Delete(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
