// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Service errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrPriceAboveMRP   = errors.New("price cannot exceed mrp")
	ErrNotProductOwner = errors.New("product belongs to another seller")
)

// Sort options accepted by the catalog listing
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortPopular   = "popular"
)

// Service handles product business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest represents catalog listing query parameters
type ListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	MinPrice int64  `form:"min_price"`
	MaxPrice int64  `form:"max_price"`
	Sort     string `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc rating popular"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ListResult is a paginated catalog page
type ListResult struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// List returns active products matching the filters
func (s *Service) List(req *ListRequest) (*ListResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", req.Category)
	}
	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}
	if req.Search != "" {
		term := "%" + strings.TrimSpace(req.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	err := query.
		Order(buildOrderClause(req.Sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListResult{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// buildOrderClause maps a sort option to a whitelisted ORDER BY clause
func buildOrderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price ASC"
	case SortPriceDesc:
		return "price DESC"
	case SortRating:
		return "rating DESC, rating_count DESC"
	case SortPopular:
		return "sold DESC"
	default:
		return "created_at DESC"
	}
}

// GetByID returns an active product with its seller's shop name
func (s *Service) GetByID(id uint) (*ProductWithSeller, error) {
	var result ProductWithSeller
	err := s.db.Model(&Product{}).
		Select("products.*, sellers.shop_name").
		Joins("LEFT JOIN sellers ON sellers.id = products.seller_id").
		Where("products.id = ? AND products.is_active = ?", id, true).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &result, nil
}
