// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/domain/cart"
	"github.com/jhuggee/marketplace-backend/internal/domain/checkout"
	"github.com/jhuggee/marketplace-backend/internal/domain/order"
	"github.com/jhuggee/marketplace-backend/internal/domain/payment"
	"github.com/jhuggee/marketplace-backend/internal/domain/product"
	"github.com/jhuggee/marketplace-backend/internal/domain/seller"
	"github.com/jhuggee/marketplace-backend/internal/domain/user"
	"github.com/jhuggee/marketplace-backend/internal/domain/wishlist"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/handlers"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/auth"
)

// SetupRoutes wires every API route under the given group. The payment
// gateway is injected so tests can substitute a fake.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, gateway payment.Gateway, cfg *config.Config) {
	jwtManager := auth.NewJWTManager(cfg)
	passwordMgr := auth.NewPasswordManager(cfg)

	userService := user.NewService(db, jwtManager, passwordMgr)
	addressService := user.NewAddressService(db, cfg.Checkout.MaxAddresses)
	sellerService := seller.NewService(db)
	productService := product.NewService(db)
	cartService := cart.NewService(db)
	orderService := order.NewService(db, redisClient, gateway, cartService, &cfg.Checkout)
	checkoutService := checkout.NewService(cartService, &cfg.Checkout)
	wishlistService := wishlist.NewService(db)

	authHandler := handlers.NewAuthHandler(userService, cfg)
	productHandler := handlers.NewProductHandler(productService)
	sellerProductHandler := handlers.NewSellerProductHandler(sellerService, productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminOrderHandler := handlers.NewAdminOrderHandler(orderService)
	addressHandler := handlers.NewAddressHandler(addressService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	authRequired := middleware.AuthMiddleware(cfg, jwtManager)

	// Public auth endpoints
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("")
		protected.Use(authRequired)
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.PATCH("/me", authHandler.UpdateProfile)
		}
	}

	// Public catalog
	products := rg.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
	}

	// Cart
	cartGroup := rg.Group("/cart")
	cartGroup.Use(authRequired)
	{
		cartGroup.GET("", cartHandler.Get)
		cartGroup.POST("", cartHandler.Add)
		cartGroup.PATCH("/:itemID", cartHandler.UpdateQuantity)
		cartGroup.DELETE("/:itemID", cartHandler.Remove)
		cartGroup.DELETE("", cartHandler.Clear)
	}

	// Checkout summary
	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(authRequired)
	{
		checkoutGroup.GET("/summary", checkoutHandler.Summary)
	}

	// Orders
	orders := rg.Group("/orders")
	orders.Use(authRequired)
	{
		orders.POST("", orderHandler.Create)
		orders.POST("/payment", orderHandler.CreatePayment)
		orders.POST("/verify", orderHandler.Verify)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id/cancel", orderHandler.Cancel)
	}

	// Saved addresses
	profile := rg.Group("/profile")
	profile.Use(authRequired)
	{
		profile.GET("/addresses", addressHandler.List)
		profile.POST("/addresses", addressHandler.Create)
		profile.PUT("/addresses/:id", addressHandler.Update)
		profile.DELETE("/addresses/:id", addressHandler.Delete)
	}

	// Wishlist
	wishlistGroup := rg.Group("/wishlist")
	wishlistGroup.Use(authRequired)
	{
		wishlistGroup.GET("", wishlistHandler.List)
		wishlistGroup.POST("", wishlistHandler.Add)
		wishlistGroup.DELETE("/:productID", wishlistHandler.Remove)
	}

	// Seller surface
	sellerGroup := rg.Group("/seller")
	sellerGroup.Use(authRequired, middleware.SellerMiddleware())
	{
		sellerGroup.GET("/profile", sellerProductHandler.GetProfile)
		sellerGroup.PUT("/profile", sellerProductHandler.UpsertProfile)
		sellerGroup.GET("/products", sellerProductHandler.ListProducts)
		sellerGroup.POST("/products", sellerProductHandler.CreateProduct)
		sellerGroup.PATCH("/products/:id", sellerProductHandler.UpdateProduct)
		sellerGroup.DELETE("/products/:id", sellerProductHandler.DeleteProduct)
	}

	// Admin surface
	admin := rg.Group("/admin")
	admin.Use(authRequired, middleware.AdminMiddleware())
	{
		admin.GET("/orders", adminOrderHandler.List)
		admin.PUT("/orders/:id/status", adminOrderHandler.UpdateStatus)
	}
}
