// internal/core/services/catalog.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// Ingested record fields. supplier_name, product_name and price are
// required; the rest default to empty.
const (
	FieldSupplierName    = "supplier_name"
	FieldSupplierContact = "supplier_contact"
	FieldProductName     = "product_name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldQuantity        = "quantity"
)

// CatalogService handles supplier, product and inventory business logic
type CatalogService struct {
	repo     ports.CatalogRepository
	notifier ports.Notifier
	logger   *slog.Logger
}

// Statically assert that *CatalogService implements the CatalogService interface.
var _ ports.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new catalog service
func NewCatalogService(repo ports.CatalogRepository, notifier ports.Notifier, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With(slog.String("service", "catalog")),
	}
}

// ReconcileRow applies a single ingested record. Steps run in order and
// stop at the first failure; completed steps are not rolled back, so a
// supplier created before a bad price stays created.
func (s *CatalogService) ReconcileRow(ctx context.Context, record map[string]string) error {
	supplierName, ok := record[FieldSupplierName]
	if !ok || supplierName == "" {
		return fmt.Errorf("missing required field %q", FieldSupplierName)
	}

	supplier, err := s.repo.GetOrCreateSupplier(ctx, supplierName, record[FieldSupplierContact])
	if err != nil {
		return fmt.Errorf("supplier %q: %w", supplierName, err)
	}

	productName, ok := record[FieldProductName]
	if !ok || productName == "" {
		return fmt.Errorf("missing required field %q", FieldProductName)
	}

	priceStr, ok := record[FieldPrice]
	if !ok {
		return fmt.Errorf("missing required field %q", FieldPrice)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceStr))
	if err != nil {
		return fmt.Errorf("invalid price %q", priceStr)
	}
	if price.IsNegative() {
		return fmt.Errorf("invalid price %q: must not be negative", priceStr)
	}

	product, err := s.repo.GetOrCreateProduct(ctx, supplier.ID, productName, record[FieldDescription], price)
	if err != nil {
		return fmt.Errorf("product %q: %w", productName, err)
	}

	if quantityStr, ok := record[FieldQuantity]; ok {
		quantity, err := strconv.Atoi(strings.TrimSpace(quantityStr))
		if err != nil {
			return fmt.Errorf("invalid quantity %q", quantityStr)
		}
		if err := s.applyQuantity(ctx, product, supplier.Name, quantity); err != nil {
			return err
		}
	}

	return nil
}

// SetQuantity overwrites a product's stock level. It shares the write
// path with ReconcileRow, so the low-stock dispatch fires here too.
func (s *CatalogService) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Inventory, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %s", productID)
	}

	if err := s.applyQuantity(ctx, product, product.SupplierName, quantity); err != nil {
		return nil, err
	}

	return s.repo.FindInventoryByProductID(ctx, productID)
}

// applyQuantity is the single inventory write path. A dispatch failure
// inside the notifier never surfaces here.
func (s *CatalogService) applyQuantity(ctx context.Context, product *domain.Product, supplierName string, quantity int) error {
	inv, err := s.repo.UpsertInventory(ctx, product.ID, quantity)
	if err != nil {
		return fmt.Errorf("inventory for product %q: %w", product.Name, err)
	}

	if inv.BelowThreshold() {
		s.notifier.NotifyLowStock(ctx, domain.LowStockEvent{
			ProductName:  product.Name,
			SupplierName: supplierName,
			Quantity:     inv.Quantity,
		})
		s.logger.InfoContext(ctx, "low stock event dispatched",
			slog.String("product", product.Name),
			slog.Int("quantity", inv.Quantity))
	}

	return nil
}

// CreateSupplier saves a new supplier
func (s *CatalogService) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if err := supplier.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	supplier.PrepareForStorage()

	if err := s.repo.SaveSupplier(ctx, supplier); err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "created supplier",
		slog.String("supplier_id", supplier.ID.String()),
		slog.String("name", supplier.Name))

	return nil
}

// GetSupplier retrieves a supplier by ID. Returns nil when no supplier
// matches.
func (s *CatalogService) GetSupplier(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.repo.FindSupplierByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

// ListSuppliers retrieves suppliers with pagination
func (s *CatalogService) ListSuppliers(ctx context.Context, params ports.SupplierListParams) (*ports.SupplierListResult, error) {
	result, err := s.repo.ListSuppliers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return result, nil
}

// DeleteSupplier deletes a supplier and its products
func (s *CatalogService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted supplier",
		slog.String("supplier_id", id.String()))

	return nil
}

// CreateProduct saves a new product
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	product.PrepareForStorage()

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.InfoContext(ctx, "created product",
		slog.String("product_id", product.ID.String()),
		slog.String("name", product.Name))

	return nil
}

// GetProduct retrieves a product by ID. Returns nil when no product
// matches.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts retrieves products with filtering and pagination
func (s *CatalogService) ListProducts(ctx context.Context, params ports.ProductListParams) (*ports.ProductListResult, error) {
	result, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return result, nil
}

// DeleteProduct deletes a product and its inventory record
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted product",
		slog.String("product_id", id.String()))

	return nil
}

// GetInventory retrieves the stock record for a product. Returns nil
// when the product has never had stock recorded.
func (s *CatalogService) GetInventory(ctx context.Context, productID uuid.UUID) (*domain.Inventory, error) {
	inv, err := s.repo.FindInventoryByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inv, nil
}
