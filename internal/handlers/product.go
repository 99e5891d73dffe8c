// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service ports.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "product")),
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	SupplierID  string          `json:"supplier_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// Validate validates the create product request
func (r *CreateProductRequest) Validate() error {
	if r.SupplierID == "" {
		return fmt.Errorf("supplier_id is required")
	}
	if _, err := uuid.Parse(r.SupplierID); err != nil {
		return fmt.Errorf("supplier_id must be a valid UUID")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *CreateProductRequest) ToDomain() *domain.Product {
	supplierID, _ := uuid.Parse(r.SupplierID)
	return &domain.Product{
		SupplierID:  supplierID,
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       r.Price,
	}
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := req.ToDomain()
	if err := h.service.CreateProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.String("id", product.ID.String()),
		slog.String("name", product.Name))

	h.respondJSON(w, http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.service.GetProduct(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	if product == nil {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := ports.ProductListParams{
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sort"),
		Page:      1,
		PageSize:  20,
		SortOrder: "asc",
	}

	if supplierID := r.URL.Query().Get("supplier_id"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid supplier_id filter")
			return
		}
		params.SupplierID = &id
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.PageSize = l
		}
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	result, err := h.service.ListProducts(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.service.DeleteProduct(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.String("id", idStr),
			slog.String("error", err.Error()))

		if strings.Contains(err.Error(), "product not found") {
			h.respondError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
		"id":      idStr,
	})
}

func (h *ProductHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ProductHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
