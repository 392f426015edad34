package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a laboratory product tracked in stock.
// Category, Type and Supplier are referenced by name, not by foreign key;
// the delete guards in the handlers enforce referential safety instead.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);index"`
	Type        string          `json:"type" gorm:"type:varchar(100);index"`
	Supplier    string          `json:"supplier" gorm:"type:varchar(255)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Unit        string          `json:"unit" gorm:"type:varchar(50)"`
	LotNumber   string          `json:"lot_number" gorm:"type:varchar(100)"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
