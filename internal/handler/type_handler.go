package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"laby-stock-backend/internal/model"
	"laby-stock-backend/pkg/database"
	"laby-stock-backend/pkg/logger"
)

// TypeRequest defines the structure for product type creation/update requests
type TypeRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ListTypes handles retrieving all product types
func ListTypes(c echo.Context) error {
	log := logger.FromContext(c)

	var types []model.ProductType
	result := database.GetDB().Order("name asc").Find(&types)
	if result.Error != nil {
		log.Error("Failed to list product types", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product types",
		})
	}

	return c.JSON(http.StatusOK, types)
}

// GetType handles retrieving a single product type by ID
func GetType(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var productType model.ProductType
	result := database.GetDB().First(&productType, id)
	if result.Error != nil {
		log.Warn("Product type not found", zap.String("type_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product type not found",
		})
	}

	return c.JSON(http.StatusOK, productType)
}

// CreateType handles creating a new product type
func CreateType(c echo.Context) error {
	log := logger.FromContext(c)

	var req TypeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Type name is required",
		})
	}

	var count int64
	database.GetDB().Model(&model.ProductType{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Product type with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product type with this name already exists",
		})
	}

	productType := model.ProductType{
		Name: req.Name,
		Code: req.Code,
	}

	result := database.GetDB().Create(&productType)
	if result.Error != nil {
		log.Error("Failed to create product type",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product type",
		})
	}

	log.Info("Product type created",
		zap.Uint("type_id", productType.ID),
		zap.String("name", productType.Name))
	return c.JSON(http.StatusCreated, productType)
}

// UpdateType handles updating an existing product type
func UpdateType(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TypeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Type name is required",
		})
	}

	var productType model.ProductType
	result := database.GetDB().First(&productType, id)
	if result.Error != nil {
		log.Warn("Product type not found for update", zap.String("type_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product type not found",
		})
	}

	if req.Name != productType.Name {
		var count int64
		database.GetDB().Model(&model.ProductType{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product type with this name already exists",
			})
		}
	}

	productType.Name = req.Name
	productType.Code = req.Code

	result = database.GetDB().Save(&productType)
	if result.Error != nil {
		log.Error("Failed to update product type",
			zap.String("type_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product type",
		})
	}

	log.Info("Product type updated",
		zap.String("type_id", id),
		zap.String("name", productType.Name))
	return c.JSON(http.StatusOK, productType)
}

// DeleteType handles deleting a product type, refused while any product
// still references the type name
func DeleteType(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var productType model.ProductType
	result := database.GetDB().First(&productType, id)
	if result.Error != nil {
		log.Warn("Product type not found for deletion", zap.String("type_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product type not found",
		})
	}

	var references int64
	database.GetDB().Model(&model.Product{}).Where("type = ?", productType.Name).Count(&references)
	if references > 0 {
		log.Warn("Product type still referenced by products",
			zap.String("name", productType.Name),
			zap.Int64("references", references))
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "Product type is still referenced by products",
			"references": references,
		})
	}

	result = database.GetDB().Delete(&productType)
	if result.Error != nil {
		log.Error("Failed to delete product type",
			zap.String("type_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product type",
		})
	}

	log.Info("Product type deleted",
		zap.String("type_id", id),
		zap.String("name", productType.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product type deleted successfully",
	})
}
