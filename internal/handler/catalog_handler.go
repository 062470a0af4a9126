package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// CatalogHandler exposes the public product catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts handles GET /v1/catalog/products. The optional category
// query filters the list; the category badges in the storefront drive it.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.Error(c, 503, "CATALOG_UNAVAILABLE", "Failed to load products")
		return
	}

	utils.Success(c, 200, "Products retrieved", products)
}

// GetCategories handles GET /v1/catalog/categories.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		utils.Error(c, 503, "CATALOG_UNAVAILABLE", "Failed to load categories")
		return
	}

	utils.Success(c, 200, "Categories retrieved", categories)
}
