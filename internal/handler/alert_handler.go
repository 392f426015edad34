package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"laby-stock-backend/internal/alert"
	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
)

// ListAlerts derives the current alert set from the product table, merges
// persisted read marks and prunes marks whose alert no longer derives.
func ListAlerts(c echo.Context) error {
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
		log.Error("Failed to load products for alert derivation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	alerts := alert.Derive(products, thresholdsFrom(settings), time.Now())

	var reads []model.AlertRead
	if err := db.Find(&reads).Error; err != nil {
		log.Error("Failed to load alert read marks", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve alerts",
		})
	}

	readSet := make(map[string]bool, len(reads))
	for _, r := range reads {
		readSet[r.AlertID] = true
	}

	current := make(map[string]bool, len(alerts))
	for i := range alerts {
		current[alerts[i].ID] = true
		alerts[i].Read = readSet[alerts[i].ID]
	}

	// Prune read marks for alerts that no longer derive
	var stale []string
	for id := range readSet {
		if !current[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := db.Where("alert_id IN ?", stale).Delete(&model.AlertRead{}).Error; err != nil {
			log.Warn("Failed to prune stale alert read marks", zap.Error(err))
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == alert.SeverityDanger
		}
		if alerts[i].ProductName != alerts[j].ProductName {
			return alerts[i].ProductName < alerts[j].ProductName
		}
		return alerts[i].ID < alerts[j].ID
	})

	return c.JSON(http.StatusOK, alerts)
}

// MarkAlertRead persists the acknowledgement of a single alert id
func MarkAlertRead(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Alert id is required",
		})
	}

	read := model.AlertRead{AlertID: id, ReadAt: time.Now()}
	// Marking twice is a no-op
	result := database.GetDB().Where("alert_id = ?", id).FirstOrCreate(&read)
	if result.Error != nil {
		log.Error("Failed to mark alert as read",
			zap.String("alert_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to mark alert as read",
		})
	}

	log.Info("Alert marked as read", zap.String("alert_id", id))
	return c.JSON(http.StatusOK, read)
}

// MarkAllAlertsRead persists read marks for every currently derived alert
func MarkAllAlertsRead(c echo.Context) error {
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
		log.Error("Failed to load products for alert derivation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	alerts := alert.Derive(products, thresholdsFrom(settings), time.Now())
	now := time.Now()
	for _, a := range alerts {
		read := model.AlertRead{AlertID: a.ID, ReadAt: now}
		if err := db.Where("alert_id = ?", a.ID).FirstOrCreate(&read).Error; err != nil {
			log.Error("Failed to mark alert as read",
				zap.String("alert_id", a.ID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to mark alerts as read",
			})
		}
	}

	log.Info("All alerts marked as read", zap.Int("count", len(alerts)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "All alerts marked as read",
		"count":   len(alerts),
	})
}

func thresholdsFrom(s *model.Settings) alert.Thresholds {
	return alert.Thresholds{
		LowStock:          s.LowStockThreshold,
		ExpiryWarningDays: s.ExpiryWarningDays,
		StockAlerts:       s.StockAlertsEnabled,
		ExpiryAlerts:      s.ExpiryAlertsEnabled,
	}
}
