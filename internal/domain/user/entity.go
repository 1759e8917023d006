// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role values carried in the session token
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents the user entity
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100" json:"name"`
	Phone     string         `gorm:"uniqueIndex;not null;size:20" json:"phone"`
	Email     string         `gorm:"size:255" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // Don't return in JSON
	Role      string         `gorm:"size:20;default:'buyer'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents a saved delivery address
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Line1     string    `gorm:"size:255;not null" json:"line1"`
	City      string    `gorm:"size:100;not null" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	Pincode   string    `gorm:"size:10;not null" json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	return nil
}

// IsSeller returns true if the user has the seller role
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
