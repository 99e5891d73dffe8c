// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// InventoryHandler handles stock-level HTTP requests
type InventoryHandler struct {
	service ports.CatalogService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.CatalogService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// GetInventory handles GET /api/v1/inventory/{product_id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("product_id")

	productID, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	inv, err := h.service.GetInventory(ctx, productID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get inventory",
			slog.String("product_id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}

	if inv == nil {
		h.respondError(w, http.StatusNotFound, "No stock record for product")
		return
	}

	h.respondJSON(w, http.StatusOK, inv)
}

// SetQuantityRequest is the request body for overwriting stock
type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// Validate validates the set quantity request
func (r *SetQuantityRequest) Validate() error {
	if r.Quantity == nil {
		return fmt.Errorf("quantity is required")
	}
	return nil
}

// SetQuantity handles PUT /api/v1/inventory/{product_id}
func (h *InventoryHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("product_id")

	productID, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.service.SetQuantity(ctx, productID, *req.Quantity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to set quantity",
			slog.String("product_id", idStr),
			slog.String("error", err.Error()))

		if strings.Contains(err.Error(), "product not found") {
			h.respondError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.respondError(w, http.StatusInternalServerError, "Failed to update stock")
		return
	}

	h.logger.InfoContext(ctx, "stock level set",
		slog.String("product_id", idStr),
		slog.Int("quantity", *req.Quantity))

	h.respondJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
