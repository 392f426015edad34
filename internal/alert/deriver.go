// Package alert derives stock and expiry alerts from the current product
// collection. Alerts are not stored: the deriver is pure and idempotent, and
// alert ids are deterministic ({kind}-{productID}) so read marks persisted
// elsewhere can be merged back in after every recomputation.
package alert

import (
	"fmt"
	"time"

	"laby-stock-backend/internal/model"
)

// Alert kinds
const (
	KindOutOfStock   = "out_of_stock"
	KindLowStock     = "low_stock"
	KindExpiringSoon = "expiring_soon"
	KindExpired      = "expired"
)

// Alert severities
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// Alert is a derived notice about a single product. A product can carry at
// most one stock alert and one expiry alert at the same time.
type Alert struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Message     string `json:"message"`
	Read        bool   `json:"read"`
}

// Thresholds carries the alert configuration taken from the settings row.
type Thresholds struct {
	LowStock          int
	ExpiryWarningDays int
	StockAlerts       bool
	ExpiryAlerts      bool
}

// Derive computes the full alert set for the given products. The same
// products and thresholds always produce the same alerts in the same order.
func Derive(products []model.Product, th Thresholds, today time.Time) []Alert {
	alerts := make([]Alert, 0, len(products))
	for _, p := range products {
		if a, ok := stockAlert(p, th); ok {
			alerts = append(alerts, a)
		}
		if a, ok := expiryAlert(p, th, today); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts
}

func stockAlert(p model.Product, th Thresholds) (Alert, bool) {
	if !th.StockAlerts {
		return Alert{}, false
	}
	switch {
	case p.Quantity == 0:
		return newAlert(KindOutOfStock, SeverityDanger, p,
			fmt.Sprintf("%s is out of stock", p.Name)), true
	case p.Quantity <= th.LowStock:
		return newAlert(KindLowStock, SeverityWarning, p,
			fmt.Sprintf("%s is running low: %d %s left (threshold %d)",
				p.Name, p.Quantity, unitOrDefault(p.Unit), th.LowStock)), true
	}
	return Alert{}, false
}

func expiryAlert(p model.Product, th Thresholds, today time.Time) (Alert, bool) {
	if !th.ExpiryAlerts || p.ExpiryDate == nil {
		return Alert{}, false
	}
	days := DaysUntil(*p.ExpiryDate, today)
	switch {
	case days < 0:
		return newAlert(KindExpired, SeverityDanger, p,
			fmt.Sprintf("%s expired %d day(s) ago", p.Name, -days)), true
	case days <= th.ExpiryWarningDays:
		return newAlert(KindExpiringSoon, SeverityWarning, p,
			fmt.Sprintf("%s expires in %d day(s)", p.Name, days)), true
	}
	return Alert{}, false
}

func newAlert(kind, severity string, p model.Product, msg string) Alert {
	return Alert{
		ID:          ID(kind, p.ID),
		Kind:        kind,
		Severity:    severity,
		ProductID:   p.ID,
		ProductName: p.Name,
		Message:     msg,
	}
}

// ID builds the deterministic alert identifier
func ID(kind string, productID uint) string {
	return fmt.Sprintf("%s-%d", kind, productID)
}

// DaysUntil counts whole calendar days from today until the given date,
// negative if the date is in the past. A date equal to today is 0 days away,
// so a product expiring today is expiring_soon, not expired.
func DaysUntil(date, today time.Time) int {
	d := startOfDay(date)
	t := startOfDay(today)
	return int(d.Sub(t).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "unit(s)"
	}
	return unit
}
