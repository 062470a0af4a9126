package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// ProductManagementHandler handles the admin product CRUD endpoints.
type ProductManagementHandler struct {
	productMgmtService *service.ProductManagementService
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(productMgmtService *service.ProductManagementService) *ProductManagementHandler {
	return &ProductManagementHandler{productMgmtService: productMgmtService}
}

// ListProducts handles GET /v1/admin/products
func (h *ProductManagementHandler) ListProducts(c *gin.Context) {
	products, err := h.productMgmtService.List()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	var form service.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productMgmtService.Save(c.Request.Context(), "", &form)
	if err != nil {
		if errors.Is(err, utils.ErrValidation) {
			utils.Error(c, 400, "VALIDATION_FAILED", err.Error())
			return
		}
		utils.Error(c, 500, "WRITE_FAILED", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductManagementHandler) UpdateProduct(c *gin.Context) {
	var form service.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productMgmtService.Save(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrValidation):
			utils.Error(c, 400, "VALIDATION_FAILED", err.Error())
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "WRITE_FAILED", "Failed to update product")
		}
		return
	}

	utils.Success(c, 200, "Product updated", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id. The confirm query
// parameter is the explicit confirmation step; without confirm=true no
// write is issued.
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"

	err := h.productMgmtService.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrConfirmationMissing):
			utils.Error(c, 400, "CONFIRMATION_REQUIRED", "Deletion requires confirm=true")
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "WRITE_FAILED", "Failed to delete product")
		}
		return
	}

	utils.Success(c, 200, "Product deleted", nil)
}
