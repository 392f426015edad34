package model

import "time"

// Supported date format codes
const (
	DateFormatDMY = "DD/MM/YYYY"
	DateFormatMDY = "MM/DD/YYYY"
	DateFormatYMD = "YYYY-MM-DD"
)

// Settings is the single application settings row (ID is always 1).
// It holds display preferences and the alert thresholds.
type Settings struct {
	ID                  uint      `json:"id" gorm:"primarykey"`
	Currency            string    `json:"currency" gorm:"type:varchar(10);default:'EUR'"`
	DateFormat          string    `json:"date_format" gorm:"type:varchar(20);default:'DD/MM/YYYY'"`
	LowStockThreshold   int       `json:"low_stock_threshold" gorm:"default:10"`
	ExpiryWarningDays   int       `json:"expiry_warning_days" gorm:"default:30"`
	StockAlertsEnabled  bool      `json:"stock_alerts_enabled" gorm:"default:true"`
	ExpiryAlertsEnabled bool      `json:"expiry_alerts_enabled" gorm:"default:true"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AlertRead persists the acknowledgement of a derived alert. Alerts
// themselves are recomputed from the product table and never stored; the
// deterministic alert id lets read marks survive recomputation.
type AlertRead struct {
	AlertID   string    `json:"alert_id" gorm:"primarykey;type:varchar(100)"`
	ReadAt    time.Time `json:"read_at"`
	CreatedAt time.Time `json:"created_at"`
}
