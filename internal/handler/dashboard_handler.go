package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"laby-stock-backend/internal/alert"
	"laby-stock-backend/internal/format"
	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
)

// DashboardStats summarizes the current inventory state
type DashboardStats struct {
	TotalProducts     int             `json:"total_products"`
	TotalUnits        int             `json:"total_units"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	StockValueDisplay string          `json:"stock_value_display"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	LowStockCount     int             `json:"low_stock_count"`
	ExpiringSoonCount int             `json:"expiring_soon_count"`
	ExpiredCount      int             `json:"expired_count"`
	CategoryBreakdown map[string]int  `json:"category_breakdown"`
}

// GetDashboard computes inventory totals and alert counts in one pass over
// the product table
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	settings, err := getOrCreateSettings(db)
	if err != nil {
		log.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load settings",
		})
	}

	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		log.Error("Failed to load products for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	stats := DashboardStats{
		TotalProducts:     len(products),
		TotalStockValue:   decimal.Zero,
		CategoryBreakdown: make(map[string]int),
	}

	for _, p := range products {
		stats.TotalUnits += p.Quantity
		stats.TotalStockValue = stats.TotalStockValue.Add(
			p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Category != "" {
			stats.CategoryBreakdown[p.Category]++
		}
	}
	stats.StockValueDisplay = format.Price(stats.TotalStockValue, settings.Currency)

	alerts := alert.Derive(products, thresholdsFrom(settings), time.Now())
	for _, a := range alerts {
		switch a.Kind {
		case alert.KindOutOfStock:
			stats.OutOfStockCount++
		case alert.KindLowStock:
			stats.LowStockCount++
		case alert.KindExpiringSoon:
			stats.ExpiringSoonCount++
		case alert.KindExpired:
			stats.ExpiredCount++
		}
	}

	return c.JSON(http.StatusOK, stats)
}
