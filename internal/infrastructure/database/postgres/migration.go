// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/domain/order"
	"github.com/jhuggee/marketplace-backend/internal/domain/product"
	"github.com/jhuggee/marketplace-backend/internal/domain/seller"
	"github.com/jhuggee/marketplace-backend/internal/domain/user"
	"github.com/jhuggee/marketplace-backend/internal/domain/wishlist"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&user.Address{},
		&seller.Seller{},
		&product.Product{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&wishlist.WishlistItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Catalog listing paths
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC, rating_count DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_sold ON products(sold DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id, created_at DESC)",

		// Order listing paths
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_seller ON order_items(seller_id)",

		// Address lookups
		"CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedAdminUser creates the initial admin account if none exists
func (m *Migration) SeedAdminUser(phone, password string) error {
	if phone == "" || password == "" {
		return nil
	}

	var count int64
	if err := m.db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Name:     "Admin",
		Phone:    phone,
		Password: string(hashed),
		Role:     user.RoleAdmin,
		IsActive: true,
	}
	if err := m.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Admin user seeded")
	return nil
}

// Run executes the full migration sequence
func (m *Migration) Run(adminPhone, adminPassword string) error {
	if err := m.RunAutoMigrations(); err != nil {
		return err
	}
	if err := m.CreateIndexes(); err != nil {
		return err
	}
	return m.SeedAdminUser(adminPhone, adminPassword)
}
