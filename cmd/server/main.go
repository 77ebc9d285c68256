package main

import (
	"log"
	"time"

	"cartscout-backend/internal/cache"
	"cartscout-backend/internal/cart"
	"cartscout-backend/internal/config"
	"cartscout-backend/internal/database"
	"cartscout-backend/internal/handlers"
	"cartscout-backend/internal/middleware"
	"cartscout-backend/internal/upstream"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

func main() {
	cfg := config.Load()

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}
	defer redisClient.Close()

	views := cache.NewRedisCache(redisClient, cfg.ViewCacheTTL, cfg.NavigatorTTL)
	store := upstream.NewClient(cfg.UpstreamAPIURL, cfg.UpstreamTimeout)
	engine := cart.NewEngine(store, views)
	lookups := gocache.New(cfg.ProductCacheTTL, 2*cfg.ProductCacheTTL)

	r := gin.Default()

	// Initialize session store
	middleware.InitSessionStore(cfg.SessionSecret)

	r.Use(middleware.HealthCheck("/health"))
	r.Use(middleware.SecurityHeaders())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Session + optional user identity: every caller gets a session id,
	// a valid bearer token upgrades it to a user-owned cart
	r.Use(middleware.SessionMiddleware())
	r.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(engine, views)
	comparisonHandler := handlers.NewComparisonHandler(store, views, time.Now)
	productHandler := handlers.NewProductHandler(store, lookups, time.Now)
	archiveHandler := handlers.NewArchiveHandler(database.NewArchiveQueries(db), engine)

	// Cart routes
	cartGroup := r.Group("/api/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/products", cartHandler.AddProduct)
		cartGroup.POST("/categories", cartHandler.AddCategory)
		cartGroup.PUT("/products/:id/quantity", cartHandler.UpdateProductQuantity)
		cartGroup.PUT("/categories/:id/quantity", cartHandler.UpdateCategoryQuantity)
		cartGroup.DELETE("/items/:type/:id", cartHandler.RemoveItem)
		cartGroup.POST("/choose", cartHandler.ChooseProduct)
		cartGroup.POST("/switch", cartHandler.SwitchProduct)
		cartGroup.GET("/contains/:barcode", productHandler.CartContains)
	}

	// Comparison routes
	comparisonGroup := r.Group("/api/comparison")
	{
		comparisonGroup.GET("", comparisonHandler.GetComparison)
		comparisonGroup.POST("/next", comparisonHandler.NextShop)
		comparisonGroup.POST("/prev", comparisonHandler.PrevShop)
		comparisonGroup.POST("/select", comparisonHandler.SelectShop)
		comparisonGroup.POST("/flip", comparisonHandler.FlipItem)
	}

	// Product routes
	r.GET("/api/products/barcode/:code", productHandler.GetByBarcode)

	// Archive routes
	archiveGroup := r.Group("/api/archives")
	{
		archiveGroup.GET("", archiveHandler.ListArchives)
		archiveGroup.POST("", archiveHandler.CreateArchive)
		archiveGroup.POST("/:id/restore", archiveHandler.RestoreArchive)
		archiveGroup.DELETE("/:id", archiveHandler.DeleteArchive)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
