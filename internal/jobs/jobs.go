// Package jobs runs the background schedule that keeps the alert and
// inventory gauges fresh between requests.
package jobs

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"laby-stock-backend/internal/alert"
	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/config"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
	"laby-stock-backend/prometheus"
)

// Start registers the metric refresh job and starts the scheduler
func Start(cfg *config.Config) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.Jobs.MetricsRefreshSchedule, RefreshMetrics); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// RefreshMetrics re-derives the alert set and updates the alert and
// inventory gauges. Safe to run any number of times.
func RefreshMetrics() {
	log := logger.GetLogger()
	db := database.GetDB()

	var settings model.Settings
	if err := db.First(&settings, 1).Error; err != nil {
		// No settings row yet means nothing has been configured or stocked
		return
	}

	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		log.Error("Metrics refresh failed to load products", zap.Error(err))
		return
	}

	th := alert.Thresholds{
		LowStock:          settings.LowStockThreshold,
		ExpiryWarningDays: settings.ExpiryWarningDays,
		StockAlerts:       settings.StockAlertsEnabled,
		ExpiryAlerts:      settings.ExpiryAlertsEnabled,
	}
	alerts := alert.Derive(products, th, time.Now())

	counts := map[string]float64{
		alert.KindOutOfStock:   0,
		alert.KindLowStock:     0,
		alert.KindExpiringSoon: 0,
		alert.KindExpired:      0,
	}
	severities := map[string]string{
		alert.KindOutOfStock:   alert.SeverityDanger,
		alert.KindLowStock:     alert.SeverityWarning,
		alert.KindExpiringSoon: alert.SeverityWarning,
		alert.KindExpired:      alert.SeverityDanger,
	}
	for _, a := range alerts {
		counts[a.Kind]++
	}
	for kind, count := range counts {
		prometheus.UpdateAlertCount(kind, severities[kind], count)
	}

	for _, p := range products {
		prometheus.UpdateProductInventory(
			strconv.FormatUint(uint64(p.ID), 10), p.Name, p.Category, float64(p.Quantity))
	}

	log.Debug("Metrics refreshed",
		zap.Int("products", len(products)),
		zap.Int("alerts", len(alerts)))
}
