// internal/domain/product/seller_service.go
package product

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateRequest represents a seller's product create payload
type CreateRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=255"`
	Description  string   `json:"description" binding:"omitempty,max=5000"`
	Category     string   `json:"category" binding:"required,max=100"`
	Subcategory  string   `json:"subcategory" binding:"omitempty,max=100"`
	Images       []string `json:"images" binding:"omitempty,max=10,dive,url"`
	Price        int64    `json:"price" binding:"required,gt=0"`
	MRP          int64    `json:"mrp" binding:"required,gt=0"`
	Stock        int      `json:"stock" binding:"gte=0"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors"`
	Tags         []string `json:"tags"`
	FreeDelivery bool     `json:"free_delivery"`
	DeliveryDays int      `json:"delivery_days" binding:"omitempty,gte=1,lte=30"`
}

// UpdateRequest represents a seller's partial product update
type UpdateRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Description  *string   `json:"description" binding:"omitempty,max=5000"`
	Category     *string   `json:"category" binding:"omitempty,max=100"`
	Subcategory  *string   `json:"subcategory" binding:"omitempty,max=100"`
	Images       *[]string `json:"images" binding:"omitempty,max=10,dive,url"`
	Price        *int64    `json:"price" binding:"omitempty,gt=0"`
	MRP          *int64    `json:"mrp" binding:"omitempty,gt=0"`
	Stock        *int      `json:"stock" binding:"omitempty,gte=0"`
	Sizes        *[]string `json:"sizes"`
	Colors       *[]string `json:"colors"`
	Tags         *[]string `json:"tags"`
	IsActive     *bool     `json:"is_active"`
	FreeDelivery *bool     `json:"free_delivery"`
	DeliveryDays *int      `json:"delivery_days" binding:"omitempty,gte=1,lte=30"`
}

// ListBySeller returns all products owned by a seller, newest first
func (s *Service) ListBySeller(sellerID uint) ([]Product, error) {
	var products []Product
	err := s.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}
	return products, nil
}

// Create adds a new product for the seller
func (s *Service) Create(sellerID uint, req *CreateRequest) (*Product, error) {
	if req.Price > req.MRP {
		return nil, ErrPriceAboveMRP
	}

	deliveryDays := req.DeliveryDays
	if deliveryDays == 0 {
		deliveryDays = 5
	}

	product := &Product{
		SellerID:     sellerID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Images:       req.Images,
		Price:        req.Price,
		MRP:          req.MRP,
		Stock:        req.Stock,
		Sizes:        req.Sizes,
		Colors:       req.Colors,
		Tags:         req.Tags,
		IsActive:     true,
		FreeDelivery: req.FreeDelivery,
		DeliveryDays: deliveryDays,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// getOwned fetches a product and checks seller ownership
func (s *Service) getOwned(sellerID, productID uint) (*Product, error) {
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product.SellerID != sellerID {
		return nil, ErrNotProductOwner
	}
	return &product, nil
}

// Update applies a partial update to a product owned by the seller
func (s *Service) Update(sellerID, productID uint, req *UpdateRequest) (*Product, error) {
	product, err := s.getOwned(sellerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MRP != nil {
		product.MRP = *req.MRP
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.Colors != nil {
		product.Colors = *req.Colors
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.FreeDelivery != nil {
		product.FreeDelivery = *req.FreeDelivery
	}
	if req.DeliveryDays != nil {
		product.DeliveryDays = *req.DeliveryDays
	}

	if product.Price > product.MRP {
		return nil, ErrPriceAboveMRP
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product owned by the seller. Products already referenced
// by order items are deactivated instead of deleted so order history stays
// resolvable.
func (s *Service) Delete(sellerID, productID uint) error {
	product, err := s.getOwned(sellerID, productID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Table("order_items").Where("product_id = ?", product.ID).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}

	if refs > 0 {
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"seller_id":  sellerID,
			"order_refs": refs,
		}).Info("Product referenced by orders, deactivating instead of deleting")
		if err := s.db.Model(product).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate product: %w", err)
		}
		return nil
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
