package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exit reason codes. Free-form in the API; these are the values the
// application itself writes.
const (
	ExitReasonUsage      = "usage"
	ExitReasonSale       = "sale"
	ExitReasonLoss       = "loss"
	ExitReasonExpiration = "expiration"
	ExitReasonOther      = "other"
)

// StockEntry records a stock-increasing transaction (receipt of goods).
// Entries are immutable once created except for deletion, and deleting one
// does not restore the product quantity.
type StockEntry struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	ProductID  uint            `json:"product_id" gorm:"index;not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2)"`
	Date       time.Time       `json:"date"`
	Supplier   string          `json:"supplier" gorm:"type:varchar(255)"`
	LotNumber  string          `json:"lot_number" gorm:"type:varchar(100)"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockExit records a stock-decreasing transaction (consumption, sale,
// loss, disposal). Same deletion semantics as StockEntry.
type StockExit struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason" gorm:"type:varchar(50)"`
	Recipient string    `json:"recipient" gorm:"type:varchar(255)"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
