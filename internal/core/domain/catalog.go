// internal/core/domain/catalog.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a low-stock alert fires.
// The check is strict: a quantity equal to the threshold does not alert.
const LowStockThreshold = 10

// Supplier represents a product supplier
type Supplier struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product represents a catalog product offered by a single supplier
type Product struct {
	ID           uuid.UUID       `json:"id"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Inventory holds the single stock record for a product
type Inventory struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStockEvent is the payload dispatched when a stock write lands
// below the threshold
type LowStockEvent struct {
	ProductName  string `json:"product_name"`
	SupplierName string `json:"supplier_name"`
	Quantity     int    `json:"quantity"`
}

// ImportResult summarizes a batch ingestion run. Processed counts only
// rows that made it through every step; Errors keeps encounter order.
type ImportResult struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

// Validate performs domain validation on the supplier
func (s *Supplier) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// PrepareForStorage assigns an ID and timestamps before the first insert
func (s *Supplier) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// PrepareForStorage assigns an ID and timestamps before the first insert
func (p *Product) PrepareForStorage() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// BelowThreshold reports whether the current quantity should alert
func (i *Inventory) BelowThreshold() bool {
	return i.Quantity < LowStockThreshold
}
