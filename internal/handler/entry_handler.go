package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
	"laby-stock-backend/prometheus"
)

// EntryRequest defines the structure for stock entry creation requests
type EntryRequest struct {
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Date       *time.Time      `json:"date"`
	Supplier   string          `json:"supplier"`
	LotNumber  string          `json:"lot_number"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// ListEntries handles retrieving stock entries with optional filtering
func ListEntries(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB()
	if productID := c.QueryParam("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if from := c.QueryParam("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.QueryParam("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var entries []model.StockEntry
	result := query.Order("date desc, id desc").Find(&entries)
	if result.Error != nil {
		log.Error("Failed to list stock entries", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve stock entries",
		})
	}

	return c.JSON(http.StatusOK, entries)
}

// GetEntry handles retrieving a single stock entry by ID
func GetEntry(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var entry model.StockEntry
	result := database.GetDB().First(&entry, id)
	if result.Error != nil {
		log.Warn("Stock entry not found", zap.String("entry_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Stock entry not found",
		})
	}

	return c.JSON(http.StatusOK, entry)
}

// CreateEntry handles recording a receipt of goods. The product quantity is
// incremented with a single UPDATE so concurrent movements cannot lose an
// adjustment, and a lot number or expiry date on the entry overwrites the
// product's stored lot/expiry.
func CreateEntry(c echo.Context) error {
	log := logger.FromContext(c)

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "product_id is required",
		})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Entry quantity must be greater than zero",
		})
	}

	var product model.Product
	if err := database.GetDB().First(&product, req.ProductID).Error; err != nil {
		log.Warn("Product not found for stock entry", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	entry := model.StockEntry{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Date:       date,
		Supplier:   req.Supplier,
		LotNumber:  req.LotNumber,
		ExpiryDate: req.ExpiryDate,
	}

	defer prometheus.TrackDBOperation("stock_entry")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", req.Quantity),
		}
		if req.LotNumber != "" {
			updates["lot_number"] = req.LotNumber
		}
		if req.ExpiryDate != nil {
			updates["expiry_date"] = req.ExpiryDate
		}

		if err := tx.Model(&model.Product{}).Where("id = ?", req.ProductID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		log.Error("Failed to create stock entry",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create stock entry",
		})
	}

	prometheus.RecordStockMovement("in")
	if err := database.GetDB().First(&product, req.ProductID).Error; err == nil {
		refreshInventoryGauge(&product)
	}

	log.Info("Stock entry created",
		zap.Uint("entry_id", entry.ID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Int("new_product_quantity", product.Quantity))
	return c.JSON(http.StatusCreated, entry)
}

// DeleteEntry removes a stock entry record. The product quantity is NOT
// adjusted back; deleting a historical transaction leaves stock unchanged.
func DeleteEntry(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.StockEntry{}, id)
	if result.Error != nil {
		log.Error("Failed to delete stock entry",
			zap.String("entry_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete stock entry",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Stock entry not found for deletion", zap.String("entry_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Stock entry not found",
		})
	}

	log.Info("Stock entry deleted", zap.String("entry_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Stock entry deleted successfully",
	})
}
