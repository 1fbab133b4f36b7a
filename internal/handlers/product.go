package handlers

import (
	"net/http"
	"strconv"

	"github.com/GunarsK-portfolio/inventory-service/internal/audit"
	"github.com/GunarsK-portfolio/inventory-service/internal/middleware"
	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/GunarsK-portfolio/inventory-service/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler serves product lookups, stock updates and admin management.
type ProductHandler struct {
	products service.ProductService
	log      logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(products service.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{products: products, log: log}
}

// SearchRequest is the optional body of a POST search.
type SearchRequest struct {
	Code string `json:"code"`
}

// SearchResponse lists matching products.
type SearchResponse struct {
	Products []view.Product `json:"products"`
	Count    int            `json:"count"`
}

// UpdateProductRequest is a self-service stock update. Omitted fields are kept.
type UpdateProductRequest struct {
	Quantity *FormValue `json:"quantity"`
	Location *FormValue `json:"location"`
}

// ProductRequest is the admin create/edit payload.
type ProductRequest struct {
	Name     string     `json:"name"`
	Code     string     `json:"code"`
	Quantity *FormValue `json:"quantity"`
	Location string     `json:"location"`
}

// ProductResponse wraps a product with a confirmation message.
type ProductResponse struct {
	Message string       `json:"message,omitempty"`
	Product view.Product `json:"product"`
}

// HistoryResponse lists audit records, oldest first.
type HistoryResponse struct {
	Records []audit.Record `json:"records"`
	Count   int            `json:"count"`
}

// Search finds products by exact code, or lists all when code is blank.
func (h *ProductHandler) Search(c *gin.Context) {
	code := c.Query("code")
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		code = req.Code
	}

	result, err := h.products.Search(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Products: result.Products, Count: result.Count})
}

// Get returns one product.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.products.View(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ProductResponse{Product: *product})
}

// Update changes quantity and location of a product.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, service.UpdateRequest{
		Quantity: req.Quantity.ptr(),
		Location: req.Location.ptr(),
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ProductResponse{Message: "product updated", Product: *product})
}

// History returns the audit log.
func (h *ProductHandler) History(c *gin.Context) {
	records, err := h.products.History(c.Request.Context())
	if err != nil {
		logAndRespondError(c, h.log, http.StatusInternalServerError, err, "failed to read history")
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Records: records, Count: len(records)})
}

// List returns every product for the admin panel.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Products: products, Count: len(products)})
}

// Create adds a product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), middleware.SessionFrom(c), req.toService())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ProductResponse{Message: "product created", Product: *product})
}

// Edit overwrites every field of a product.
func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Edit(c.Request.Context(), middleware.SessionFrom(c), id, req.toService())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ProductResponse{Message: "product updated", Product: *product})
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "product deleted"})
}

func (r ProductRequest) toService() service.ProductRequest {
	return service.ProductRequest{
		Name:     r.Name,
		Code:     r.Code,
		Quantity: r.Quantity.text(),
		Location: r.Location,
	}
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
