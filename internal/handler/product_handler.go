package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
	"laby-stock-backend/prometheus"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Supplier    string          `json:"supplier"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	LotNumber   string          `json:"lot_number"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Description string          `json:"description"`
}

func (r *ProductRequest) validate() string {
	if r.Name == "" {
		return "Product name is required"
	}
	if r.Price.IsNegative() {
		return "Product price cannot be negative"
	}
	if r.Quantity < 0 {
		return "Product quantity cannot be negative"
	}
	return ""
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var products []model.Product

	// Handle query parameters for filtering
	query := db

	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if productType := c.QueryParam("type"); productType != "" {
		query = query.Where("type = ?", productType)
	}
	if q := c.QueryParam("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	result := query.Order("name asc").Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	product := model.Product{
		Name:        req.Name,
		Category:    req.Category,
		Type:        req.Type,
		Supplier:    req.Supplier,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		LotNumber:   req.LotNumber,
		ExpiryDate:  req.ExpiryDate,
		Description: req.Description,
	}

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	refreshInventoryGauge(&product)

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	oldQuantity := product.Quantity

	product.Name = req.Name
	product.Category = req.Category
	product.Type = req.Type
	product.Supplier = req.Supplier
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.Unit = req.Unit
	product.LotNumber = req.LotNumber
	product.ExpiryDate = req.ExpiryDate
	product.Description = req.Description

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	refreshInventoryGauge(&product)

	log.Info("Product updated",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Int("old_quantity", oldQuantity),
		zap.Int("new_quantity", product.Quantity))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product. Movement history referencing the
// product is kept.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

func refreshInventoryGauge(p *model.Product) {
	prometheus.UpdateProductInventory(
		formatUint(p.ID), p.Name, p.Category, float64(p.Quantity))
}

func formatUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
