package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"laby-stock-backend/internal/format"
	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
)

// SettingsRequest defines the structure for settings update requests
type SettingsRequest struct {
	Currency            string `json:"currency"`
	DateFormat          string `json:"date_format"`
	LowStockThreshold   int    `json:"low_stock_threshold"`
	ExpiryWarningDays   int    `json:"expiry_warning_days"`
	StockAlertsEnabled  bool   `json:"stock_alerts_enabled"`
	ExpiryAlertsEnabled bool   `json:"expiry_alerts_enabled"`
}

// getOrCreateSettings returns the singleton settings row, creating it with
// defaults on first access
func getOrCreateSettings(db *gorm.DB) (*model.Settings, error) {
	settings := model.Settings{
		ID:                  1,
		Currency:            "EUR",
		DateFormat:          model.DateFormatDMY,
		LowStockThreshold:   10,
		ExpiryWarningDays:   30,
		StockAlertsEnabled:  true,
		ExpiryAlertsEnabled: true,
	}
	if err := db.Where("id = ?", 1).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetSettings handles retrieving the application settings
func GetSettings(c echo.Context) error {
	log := logger.FromContext(c)

	settings, err := getOrCreateSettings(database.GetDB())
	if err != nil {
		log.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load settings",
		})
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles updating the application settings
func UpdateSettings(c echo.Context) error {
	log := logger.FromContext(c)

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.LowStockThreshold <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Low stock threshold must be greater than zero",
		})
	}
	if req.ExpiryWarningDays <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Expiry warning days must be greater than zero",
		})
	}
	if !format.KnownCurrency(req.Currency) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unsupported currency code",
		})
	}
	if !format.KnownDateFormat(req.DateFormat) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unsupported date format",
		})
	}

	settings, err := getOrCreateSettings(database.GetDB())
	if err != nil {
		log.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load settings",
		})
	}

	settings.Currency = req.Currency
	settings.DateFormat = req.DateFormat
	settings.LowStockThreshold = req.LowStockThreshold
	settings.ExpiryWarningDays = req.ExpiryWarningDays
	settings.StockAlertsEnabled = req.StockAlertsEnabled
	settings.ExpiryAlertsEnabled = req.ExpiryAlertsEnabled

	if err := database.GetDB().Save(settings).Error; err != nil {
		log.Error("Failed to update settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update settings",
		})
	}

	log.Info("Settings updated",
		zap.String("currency", settings.Currency),
		zap.String("date_format", settings.DateFormat),
		zap.Int("low_stock_threshold", settings.LowStockThreshold),
		zap.Int("expiry_warning_days", settings.ExpiryWarningDays))
	return c.JSON(http.StatusOK, settings)
}
