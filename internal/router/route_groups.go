package router

import (
	"quincaillerie_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupInventoryRoutes sets up the inventory routes.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := apiGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", inventoryHandler.GetInventory)
		inventoryRoutes.GET("/low-stock", inventoryHandler.GetLowStock)
		inventoryRoutes.GET("/category/:category", inventoryHandler.GetByCategory)
		inventoryRoutes.GET("/barcode/:barcode", inventoryHandler.FindByBarcode)
		inventoryRoutes.POST("", inventoryHandler.AddProduct)
		inventoryRoutes.PATCH("/stock", inventoryHandler.UpdateStock)
		inventoryRoutes.PATCH("/:id", inventoryHandler.UpdateProduct)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteProduct)
	}
}

// SetupSaleRoutes sets up the sale and report routes.
func SetupSaleRoutes(apiGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := apiGroup.Group("/sales")
	{
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/daily", saleHandler.GetDailySales)
		saleRoutes.GET("/range", saleHandler.GetSalesByRange)
		saleRoutes.GET("/stats", saleHandler.GetSalesStats)
		saleRoutes.GET("/categories", saleHandler.GetSalesByCategory)
		saleRoutes.GET("/top-products", saleHandler.GetTopProducts)
		saleRoutes.GET("/monthly", saleHandler.GetMonthlySales)
		saleRoutes.GET("/day/:date", saleHandler.GetSalesByDay)
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.DELETE("/:id", saleHandler.DeleteSale)
	}
}

// SetupStoreRoutes sets up the store routes.
func SetupStoreRoutes(apiGroup *gin.RouterGroup, storeHandler *handlers.StoreHandler) {
	storeRoutes := apiGroup.Group("/stores")
	{
		storeRoutes.GET("", storeHandler.GetStores)
		storeRoutes.GET("/comparison", storeHandler.GetStoreComparison)
		storeRoutes.GET("/:id", storeHandler.GetStoreByID)
		storeRoutes.POST("", storeHandler.CreateStore)
		storeRoutes.PATCH("/:id", storeHandler.UpdateStore)
		storeRoutes.DELETE("/:id", storeHandler.DeleteStore)
	}
}

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(apiGroup *gin.RouterGroup, categoryHandler *handlers.CategoryHandler) {
	categoryRoutes := apiGroup.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetCategories)
		categoryRoutes.GET("/name/:name", categoryHandler.GetCategoryByName)
		categoryRoutes.POST("", categoryHandler.CreateCategory)
		categoryRoutes.PATCH("/:id", categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryHandler.DeleteCategory)
	}
}

// SetupSettingRoutes sets up the application settings routes.
func SetupSettingRoutes(apiGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := apiGroup.Group("/settings")
	{
		settingRoutes.GET("", settingHandler.GetSettings)
		settingRoutes.POST("", settingHandler.SetSettings)
		settingRoutes.GET("/:key", settingHandler.GetSetting)
		settingRoutes.PATCH("/:key", settingHandler.SetSetting)
		settingRoutes.DELETE("/:key", settingHandler.DeleteSetting)
	}
}

// SetupExportRoutes sets up the CSV export routes.
func SetupExportRoutes(apiGroup *gin.RouterGroup, exportHandler *handlers.ExportHandler) {
	exportRoutes := apiGroup.Group("/export")
	{
		exportRoutes.GET("/sales", exportHandler.ExportSales)
		exportRoutes.GET("/inventory", exportHandler.ExportInventory)
	}
}
