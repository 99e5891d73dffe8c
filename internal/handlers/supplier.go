// internal/handlers/supplier.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	service ports.CatalogService
	logger  *slog.Logger
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(service ports.CatalogService, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "supplier")),
	}
}

// CreateSupplierRequest represents the request body for creating a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// Validate validates the create supplier request
func (r *CreateSupplierRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *CreateSupplierRequest) ToDomain() *domain.Supplier {
	return &domain.Supplier{
		Name:        strings.TrimSpace(r.Name),
		ContactInfo: r.ContactInfo,
	}
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier := req.ToDomain()
	if err := h.service.CreateSupplier(ctx, supplier); err != nil {
		h.logger.ErrorContext(ctx, "failed to create supplier",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	h.logger.InfoContext(ctx, "supplier created",
		slog.String("id", supplier.ID.String()),
		slog.String("name", supplier.Name))

	h.respondJSON(w, http.StatusCreated, supplier)
}

// GetSupplier handles GET /api/v1/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	supplier, err := h.service.GetSupplier(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get supplier",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve supplier")
		return
	}

	if supplier == nil {
		h.respondError(w, http.StatusNotFound, "Supplier not found")
		return
	}

	h.respondJSON(w, http.StatusOK, supplier)
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := ports.SupplierListParams{
		Search:   r.URL.Query().Get("search"),
		Page:     1,
		PageSize: 20,
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

	result, err := h.service.ListSuppliers(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list suppliers",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list suppliers")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	if err := h.service.DeleteSupplier(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete supplier",
			slog.String("id", idStr),
			slog.String("error", err.Error()))

		if strings.Contains(err.Error(), "supplier not found") {
			h.respondError(w, http.StatusNotFound, "Supplier not found")
			return
		}

		h.respondError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}

	h.logger.InfoContext(ctx, "supplier deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Supplier deleted successfully",
		"id":      idStr,
	})
}

func (h *SupplierHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SupplierHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
