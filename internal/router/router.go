package router

import (
	"database/sql"

	"quincaillerie_backend/internal/handlers"
	"quincaillerie_backend/internal/repositories"
	"quincaillerie_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Config carries the environment-driven knobs the services need.
type Config struct {
	MainStoreID     string
	MainStorePolicy services.MainStorePolicy
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg Config) {
	// Initialize Repositories
	productRepo := repositories.NewProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	txDB := repositories.WrapDB(db)

	// Initialize Services
	inventoryService := services.NewInventoryService(productRepo, txDB, cfg.MainStoreID)
	salesService := services.NewSalesService(saleRepo, productRepo, txDB, cfg.MainStoreID)
	reportService := services.NewReportService(reportRepo)
	storeService := services.NewStoreService(storeRepo, reportRepo, txDB, cfg.MainStorePolicy)
	categoryService := services.NewCategoryService(categoryRepo, txDB)
	settingService := services.NewSettingService(settingRepo, txDB, cfg.MainStoreID)
	exportService := services.NewExportService(saleRepo, productRepo, cfg.MainStoreID)

	// Initialize Handlers
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	saleHandler := handlers.NewSaleHandler(salesService, reportService)
	storeHandler := handlers.NewStoreHandler(storeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	settingHandler := handlers.NewSettingHandler(settingService)
	exportHandler := handlers.NewExportHandler(exportService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupInventoryRoutes(apiV1, inventoryHandler)
		SetupSaleRoutes(apiV1, saleHandler)
		SetupStoreRoutes(apiV1, storeHandler)
		SetupCategoryRoutes(apiV1, categoryHandler)
		SetupSettingRoutes(apiV1, settingHandler)
		SetupExportRoutes(apiV1, exportHandler)
	}
}
