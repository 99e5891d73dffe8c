package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusioncl/inventoryms/internal/core/domain"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		product   *domain.Product
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_product",
			product: &domain.Product{
				SupplierID: uuid.New(),
				Name:       "Widget",
				Price:      decimal.NewFromFloat(19.99),
			},
			wantError: false,
		},
		{
			name: "missing_name",
			product: &domain.Product{
				SupplierID: uuid.New(),
				Price:      decimal.NewFromFloat(19.99),
			},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name: "missing_supplier",
			product: &domain.Product{
				Name:  "Widget",
				Price: decimal.NewFromFloat(19.99),
			},
			wantError: true,
			errorMsg:  "supplier_id is required",
		},
		{
			name: "negative_price",
			product: &domain.Product{
				SupplierID: uuid.New(),
				Name:       "Widget",
				Price:      decimal.NewFromFloat(-5),
			},
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
		{
			name: "zero_price_is_allowed",
			product: &domain.Product{
				SupplierID: uuid.New(),
				Name:       "Freebie",
				Price:      decimal.Zero,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()

			if tt.wantError {
				require.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSupplier_Validate(t *testing.T) {
	err := (&domain.Supplier{Name: "Acme"}).Validate()
	require.NoError(t, err)

	err = (&domain.Supplier{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestSupplier_PrepareForStorage(t *testing.T) {
	t.Run("generates_uuid_when_nil", func(t *testing.T) {
		s := &domain.Supplier{Name: "Acme"}

		s.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.NotZero(t, s.CreatedAt)
		assert.NotZero(t, s.UpdatedAt)
	})

	t.Run("preserves_existing_uuid", func(t *testing.T) {
		existingID := uuid.New()
		s := &domain.Supplier{ID: existingID, Name: "Acme"}

		s.PrepareForStorage()

		assert.Equal(t, existingID, s.ID)
	})

	t.Run("sets_timestamps", func(t *testing.T) {
		s := &domain.Supplier{Name: "Acme"}
		now := time.Now()

		s.PrepareForStorage()

		assert.WithinDuration(t, now, s.CreatedAt, time.Second)
		assert.WithinDuration(t, now, s.UpdatedAt, time.Second)
	})
}

func TestInventory_BelowThreshold(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     bool
	}{
		{name: "well_below", quantity: 3, want: true},
		{name: "one_below", quantity: 9, want: true},
		{name: "at_threshold", quantity: 10, want: false},
		{name: "above_threshold", quantity: 150, want: false},
		{name: "zero", quantity: 0, want: true},
		{name: "negative", quantity: -2, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &domain.Inventory{Quantity: tt.quantity}
			assert.Equal(t, tt.want, inv.BelowThreshold())
		})
	}
}
