// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-state/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-state/internal/remote"
	"github.com/your-org/storefront-state/internal/session"
	"github.com/your-org/storefront-state/internal/state"
)

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, provider *session.Provider, manager *state.Manager, client *remote.Client) {
	SetupAuthRoutes(rg, cfg, provider, manager)
	SetupCartRoutes(rg, cfg, manager)
	SetupWishlistRoutes(rg, cfg, manager)
	SetupSavedRoutes(rg, cfg, manager)
	SetupCompareRoutes(rg, cfg, manager)
	SetupSubscriptionRoutes(rg, cfg, manager)
	SetupOrderRoutes(rg, cfg, manager)
	SetupReviewRoutes(rg, cfg, manager)
	SetupStoreRoutes(rg, cfg, client)
	SetupAdminRoutes(rg, cfg, client)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, provider *session.Provider, manager *state.Manager) {
	authHandler := handlers.NewAuthHandler(provider, manager)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.Profile)
		}
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	cartHandler := handlers.NewCartHandler(manager)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartLine)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupWishlistRoutes sets up wishlist related routes
func SetupWishlistRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	wishlistHandler := handlers.NewWishlistHandler(manager)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/items", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/toggle", wishlistHandler.ToggleWishlist)
		wishlist.GET("/contains/:productId", wishlistHandler.ContainsProduct)
	}
}

// SetupSavedRoutes sets up saved-for-later routes
func SetupSavedRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	savedHandler := handlers.NewSavedHandler(manager)

	saved := rg.Group("/saved")
	saved.Use(middleware.AuthMiddleware(cfg))
	{
		saved.GET("", savedHandler.GetSaved)
		saved.POST("", savedHandler.SaveForLater)
		saved.DELETE("/:id", savedHandler.RemoveSaved)
		saved.POST("/:id/move-to-cart", savedHandler.MoveToCart)
	}
}

// SetupCompareRoutes sets up product comparison routes
func SetupCompareRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	compareHandler := handlers.NewCompareHandler(manager)

	compare := rg.Group("/compare")
	compare.Use(middleware.AuthMiddleware(cfg))
	{
		compare.GET("", compareHandler.GetComparison)
		compare.POST("/items", compareHandler.AddToComparison)
		compare.DELETE("/items/:productId", compareHandler.RemoveFromComparison)
		compare.DELETE("", compareHandler.ClearComparison)
	}
}

// SetupSubscriptionRoutes sets up subscription and usage routes
func SetupSubscriptionRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	subscriptionHandler := handlers.NewSubscriptionHandler(manager)

	subscription := rg.Group("/subscription")
	subscription.Use(middleware.AuthMiddleware(cfg))
	{
		subscription.GET("", subscriptionHandler.GetStatus)
		subscription.GET("/usage", subscriptionHandler.GetUsage)
		subscription.GET("/can-add-product", subscriptionHandler.CanAddProduct)
	}
}

// SetupOrderRoutes sets up order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	orderHandler := handlers.NewOrderHandler(manager)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("/:id/reorder", orderHandler.Reorder)
	}
}

// SetupReviewRoutes sets up review routes
func SetupReviewRoutes(rg *gin.RouterGroup, cfg *config.Config, manager *state.Manager) {
	reviewHandler := handlers.NewReviewHandler(manager)

	// Reading reviews works without a session; voting requires one
	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("/:id/reviews", reviewHandler.GetProductReviews)
	}

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(cfg))
	{
		reviews.POST("/:id/helpful", reviewHandler.VoteHelpful)
	}
}

// SetupStoreRoutes sets up seller store routes
func SetupStoreRoutes(rg *gin.RouterGroup, cfg *config.Config, client *remote.Client) {
	storeHandler := handlers.NewStoreHandler(client.Procs)

	stores := rg.Group("/stores")
	{
		// View tracking accepts anonymous traffic
		tracked := stores.Group("")
		tracked.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			tracked.POST("/:id/views", storeHandler.TrackView)
		}

		protected := stores.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/:id/analytics", storeHandler.GetAnalyticsSummary)
		}
	}

	// Owner-scoped routes live under /seller to keep /stores/:id free of
	// static siblings
	seller := rg.Group("/seller")
	seller.Use(middleware.AuthMiddleware(cfg))
	{
		seller.GET("/low-stock", storeHandler.GetLowStockProducts)
	}
}

// SetupAdminRoutes sets up moderation routes
func SetupAdminRoutes(rg *gin.RouterGroup, cfg *config.Config, client *remote.Client) {
	adminHandler := handlers.NewAdminHandler(client.Reviews)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.PUT("/reviews/:id/approve", adminHandler.ApproveReview)
	}
}
