package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"menu-service/internal/handler"
	mid "menu-service/internal/middleware"
	"menu-service/internal/scope"
	"menu-service/pkg/config"
	"menu-service/pkg/database"
	"menu-service/pkg/jwtutil"
	"menu-service/pkg/logger"
	"menu-service/prometheus"
)

func main() {
	// Load .env file; missing file is fine, env vars may be set elsewhere
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting menu-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	db := database.GetDB()

	// The authorization gate gets an explicit rule per entity; nothing is
	// registered anywhere else.
	gate := scope.NewGate(
		scope.NewResolver(db),
		appConfig.Auth.RequireAuthForRead,
		scope.Rule{Entity: scope.EntityTenant, SuperuserOnly: true},
		scope.Rule{Entity: scope.EntityCategory, PublicRead: true},
		scope.Rule{Entity: scope.EntitySubcategory, PublicRead: true},
		scope.Rule{Entity: scope.EntityItem, PublicRead: true},
	)
	h := handler.New(gate, db)

	e := echo.New()

	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public menu API
	menuAPI := e.Group("/api/menu", mid.OptionalAuthMiddleware)
	menuAPI.GET("/categories", h.MenuCategories)
	menuAPI.GET("/categories/:categoryID/subcategories", h.MenuSubcategories)
	menuAPI.GET("/categories/:categoryID/items", h.MenuItemsByCategory)
	menuAPI.GET("/subcategories/:subcategoryID/items", h.MenuItemsBySubcategory)

	// Admin API - every route carries an authenticated caller; the gate
	// enforces the staff capability on mutations
	adminAPI := e.Group("/api/admin", mid.AuthMiddleware)

	adminAPI.GET("/tenants", h.ListTenants)
	adminAPI.POST("/tenants", h.CreateTenant)
	adminAPI.GET("/tenants/:id", h.GetTenant)
	adminAPI.PUT("/tenants/:id", h.UpdateTenant)
	adminAPI.DELETE("/tenants/:id", h.DeleteTenant)

	adminAPI.GET("/categories", h.ListCategories)
	adminAPI.POST("/categories", h.CreateCategory)
	adminAPI.POST("/categories/order", h.ReorderCategories)
	adminAPI.GET("/categories/:id", h.GetCategory)
	adminAPI.PUT("/categories/:id", h.UpdateCategory)
	adminAPI.DELETE("/categories/:id", h.DeleteCategory)
	adminAPI.GET("/categories/:categoryID/subcategories", h.ListSubcategories)
	adminAPI.GET("/categories/:categoryID/items", h.ListItems)

	adminAPI.GET("/subcategories", h.ListSubcategories)
	adminAPI.POST("/subcategories", h.CreateSubcategory)
	adminAPI.POST("/subcategories/order", h.ReorderSubcategories)
	adminAPI.GET("/subcategories/:id", h.GetSubcategory)
	adminAPI.PUT("/subcategories/:id", h.UpdateSubcategory)
	adminAPI.DELETE("/subcategories/:id", h.DeleteSubcategory)
	adminAPI.GET("/subcategories/:subcategoryID/items", h.ListItems)

	adminAPI.GET("/items", h.ListItems)
	adminAPI.POST("/items", h.CreateItem)
	adminAPI.POST("/items/order", h.ReorderItems)
	adminAPI.GET("/items/:id", h.GetItem)
	adminAPI.PUT("/items/:id", h.UpdateItem)
	adminAPI.DELETE("/items/:id", h.DeleteItem)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
