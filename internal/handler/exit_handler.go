package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
	"laby-stock-backend/prometheus"
)

// errInsufficientStock is returned from the exit transaction when the
// conditional decrement matches no row.
var errInsufficientStock = errors.New("insufficient stock")

// ExitRequest defines the structure for stock exit creation requests
type ExitRequest struct {
	ProductID uint       `json:"product_id"`
	Quantity  int        `json:"quantity"`
	Date      *time.Time `json:"date"`
	Reason    string     `json:"reason"`
	Recipient string     `json:"recipient"`
	Notes     string     `json:"notes"`
}

// ListExits handles retrieving stock exits with optional filtering
func ListExits(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB()
	if productID := c.QueryParam("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if reason := c.QueryParam("reason"); reason != "" {
		query = query.Where("reason = ?", reason)
	}
	if from := c.QueryParam("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.QueryParam("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var exits []model.StockExit
	result := query.Order("date desc, id desc").Find(&exits)
	if result.Error != nil {
		log.Error("Failed to list stock exits", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve stock exits",
		})
	}

	return c.JSON(http.StatusOK, exits)
}

// GetExit handles retrieving a single stock exit by ID
func GetExit(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var exit model.StockExit
	result := database.GetDB().First(&exit, id)
	if result.Error != nil {
		log.Warn("Stock exit not found", zap.String("exit_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Stock exit not found",
		})
	}

	return c.JSON(http.StatusOK, exit)
}

// CreateExit handles recording a stock-decreasing transaction. The decrement
// is a conditional UPDATE (quantity >= requested), so an exit larger than
// the on-hand quantity is rejected and the quantity can never go negative,
// even under concurrent requests.
func CreateExit(c echo.Context) error {
	log := logger.FromContext(c)

	var req ExitRequest
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
			"error": "Exit quantity must be greater than zero",
		})
	}
	if req.Reason == "" {
		req.Reason = model.ExitReasonOther
	}

	var product model.Product
	if err := database.GetDB().First(&product, req.ProductID).Error; err != nil {
		log.Warn("Product not found for stock exit", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	exit := model.StockExit{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Date:      date,
		Reason:    req.Reason,
		Recipient: req.Recipient,
		Notes:     req.Notes,
	}

	defer prometheus.TrackDBOperation("stock_exit")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("id = ? AND quantity >= ?", req.ProductID, req.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", req.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errInsufficientStock
		}
		return tx.Create(&exit).Error
	})
	if errors.Is(err, errInsufficientStock) {
		prometheus.RecordStockRejected("insufficient_stock")
		log.Warn("Insufficient stock for exit",
			zap.Uint("product_id", req.ProductID),
			zap.Int("requested", req.Quantity),
			zap.Int("available", product.Quantity))
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "Insufficient stock for this exit",
			"requested": req.Quantity,
			"available": product.Quantity,
		})
	}
	if err != nil {
		log.Error("Failed to create stock exit",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create stock exit",
		})
	}

	prometheus.RecordStockMovement("out")
	if err := database.GetDB().First(&product, req.ProductID).Error; err == nil {
		refreshInventoryGauge(&product)
	}

	log.Info("Stock exit created",
		zap.Uint("exit_id", exit.ID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.String("reason", req.Reason),
		zap.Int("new_product_quantity", product.Quantity))
	return c.JSON(http.StatusCreated, exit)
}

// DeleteExit removes a stock exit record. As with entries, the product
// quantity is NOT adjusted back.
func DeleteExit(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.StockExit{}, id)
	if result.Error != nil {
		log.Error("Failed to delete stock exit",
			zap.String("exit_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete stock exit",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Stock exit not found for deletion", zap.String("exit_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Stock exit not found",
		})
	}

	log.Info("Stock exit deleted", zap.String("exit_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Stock exit deleted successfully",
	})
}
