// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
)

// catalogRepository implements ports.CatalogRepository
type catalogRepository struct {
	db     *Database
	logger *slog.Logger
}

var _ ports.CatalogRepository = (*catalogRepository)(nil)

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *Database, logger *slog.Logger) ports.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

const supplierColumns = `id, name, contact_info, created_at, updated_at`

// GetOrCreateSupplier returns the supplier with the given name, inserting
// it if absent. Concurrent callers racing on the same name are resolved by
// the unique constraint: the losing insert sees no row from ON CONFLICT DO
// NOTHING and falls back to a single re-select.
func (r *catalogRepository) GetOrCreateSupplier(ctx context.Context, name, contactInfo string) (*domain.Supplier, error) {
	supplier, err := r.findSupplierByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		return supplier, nil
	}

	query := `
		INSERT INTO suppliers (id, name, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + supplierColumns

	now := time.Now()
	supplier, err = r.scanSupplier(r.db.QueryRow(ctx, query, uuid.New(), name, contactInfo, now))
	if err == nil {
		r.logger.DebugContext(ctx, "supplier created", slog.String("name", name))
		return supplier, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	// Lost the race; the row exists now.
	supplier, err = r.findSupplierByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("supplier %q vanished after conflicting insert", name)
	}
	return supplier, nil
}

func (r *catalogRepository) findSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE name = $1`

	supplier, err := r.scanSupplier(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier by name: %w", err)
	}
	return supplier, nil
}

// GetOrCreateProduct returns the product identified by (supplier, name),
// inserting it with description and price as creation defaults. Race
// handling mirrors GetOrCreateSupplier.
func (r *catalogRepository) GetOrCreateProduct(ctx context.Context, supplierID uuid.UUID, name, description string, price decimal.Decimal) (*domain.Product, error) {
	product, err := r.findProductByName(ctx, supplierID, name)
	if err != nil {
		return nil, err
	}
	if product != nil {
		return product, nil
	}

	query := `
		INSERT INTO products (id, supplier_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (supplier_id, name) DO NOTHING
		RETURNING id, supplier_id, name, description, price, created_at, updated_at`

	now := time.Now()
	product, err = r.scanProduct(r.db.QueryRow(ctx, query, uuid.New(), supplierID, name, description, price, now))
	if err == nil {
		r.logger.DebugContext(ctx, "product created",
			slog.String("name", name),
			slog.String("supplier_id", supplierID.String()))
		return product, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product, err = r.findProductByName(ctx, supplierID, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %q vanished after conflicting insert", name)
	}
	return product, nil
}

func (r *catalogRepository) findProductByName(ctx context.Context, supplierID uuid.UUID, name string) (*domain.Product, error) {
	query := `
		SELECT id, supplier_id, name, description, price, created_at, updated_at
		FROM products
		WHERE supplier_id = $1 AND name = $2`

	product, err := r.scanProduct(r.db.QueryRow(ctx, query, supplierID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return product, nil
}

// UpsertInventory inserts or overwrites the single stock record for a
// product and returns the stored state.
func (r *catalogRepository) UpsertInventory(ctx context.Context, productID uuid.UUID, quantity int) (*domain.Inventory, error) {
	query := `
		INSERT INTO inventory (product_id, quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING product_id, quantity, updated_at`

	inv := &domain.Inventory{}
	err := r.db.QueryRow(ctx, query, productID, quantity, time.Now()).Scan(
		&inv.ProductID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory upserted",
		slog.String("product_id", productID.String()),
		slog.Int("quantity", quantity))

	return inv, nil
}

// SaveSupplier creates a new supplier
func (r *catalogRepository) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		supplier.ID, supplier.Name, supplier.ContactInfo,
		supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	r.logger.DebugContext(ctx, "supplier saved", slog.String("id", supplier.ID.String()))
	return nil
}

// FindSupplierByID retrieves a supplier by ID. Returns nil when no
// supplier matches.
func (r *catalogRepository) FindSupplierByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	supplier, err := r.scanSupplier(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return supplier, nil
}

// ListSuppliers retrieves suppliers with search and pagination
func (r *catalogRepository) ListSuppliers(ctx context.Context, params ports.SupplierListParams) (*ports.SupplierListResult, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)

	qb := squirrel.Select("id", "name", "contact_info", "created_at", "updated_at", "COUNT(*) OVER()").
		From("suppliers").
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		qb = qb.Where(squirrel.ILike{"name": "%" + params.Search + "%"})
	}

	qb = qb.OrderBy("name ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build supplier query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var totalCount int64
	suppliers := make([]*domain.Supplier, 0)
	for rows.Next() {
		supplier := &domain.Supplier{}
		var contactInfo sql.NullString

		err := rows.Scan(&supplier.ID, &supplier.Name, &contactInfo,
			&supplier.CreatedAt, &supplier.UpdatedAt, &totalCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}

		supplier.ContactInfo = contactInfo.String
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}

	return &ports.SupplierListResult{
		Suppliers:  suppliers,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}, nil
}

// DeleteSupplier removes a supplier and, through cascading constraints,
// its products and their stock records.
func (r *catalogRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier not found: %s", id)
	}

	r.logger.InfoContext(ctx, "supplier deleted", slog.String("id", id.String()))
	return nil
}

// SaveProduct creates a new product
func (r *catalogRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, supplier_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		product.ID, product.SupplierID, product.Name, product.Description,
		product.Price, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	r.logger.DebugContext(ctx, "product saved", slog.String("id", product.ID.String()))
	return nil
}

// FindProductByID retrieves a product by ID, joined with its supplier
// name. Returns nil when no product matches.
func (r *catalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT p.id, p.supplier_id, s.name, p.name, p.description, p.price,
		       p.created_at, p.updated_at
		FROM products p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`

	product := &domain.Product{}
	var description sql.NullString

	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.SupplierID, &product.SupplierName,
		&product.Name, &description, &product.Price,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	product.Description = description.String
	return product, nil
}

// ListProducts retrieves products with filtering, sorting and pagination
func (r *catalogRepository) ListProducts(ctx context.Context, params ports.ProductListParams) (*ports.ProductListResult, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)

	qb := squirrel.Select(
		"p.id", "p.supplier_id", "s.name AS supplier_name",
		"p.name", "p.description", "p.price",
		"p.created_at", "p.updated_at", "COUNT(*) OVER()",
	).From("products p").
		Join("suppliers s ON s.id = p.supplier_id").
		PlaceholderFormat(squirrel.Dollar)

	if params.SupplierID != nil {
		qb = qb.Where(squirrel.Eq{"p.supplier_id": *params.SupplierID})
	}
	if params.Search != "" {
		qb = qb.Where(squirrel.ILike{"p.name": "%" + params.Search + "%"})
	}

	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}
	switch params.SortBy {
	case "price":
		qb = qb.OrderBy("p.price " + direction)
	case "created":
		qb = qb.OrderBy("p.created_at " + direction)
	case "supplier":
		qb = qb.OrderBy("s.name "+direction, "p.name ASC")
	default:
		qb = qb.OrderBy("p.name " + direction)
	}

	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var totalCount int64
	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		var description sql.NullString

		err := rows.Scan(
			&product.ID, &product.SupplierID, &product.SupplierName,
			&product.Name, &description, &product.Price,
			&product.CreatedAt, &product.UpdatedAt, &totalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Description = description.String
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return &ports.ProductListResult{
		Products:   products,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}, nil
}

// DeleteProduct removes a product and its stock record
func (r *catalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", id)
	}

	r.logger.InfoContext(ctx, "product deleted", slog.String("id", id.String()))
	return nil
}

// FindInventoryByProductID retrieves the stock record for a product.
// Returns nil when the product has never had stock recorded.
func (r *catalogRepository) FindInventoryByProductID(ctx context.Context, productID uuid.UUID) (*domain.Inventory, error) {
	query := `SELECT product_id, quantity, updated_at FROM inventory WHERE product_id = $1`

	inv := &domain.Inventory{}
	err := r.db.QueryRow(ctx, query, productID).Scan(&inv.ProductID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory: %w", err)
	}
	return inv, nil
}

func (r *catalogRepository) scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	var contactInfo sql.NullString

	err := row.Scan(&supplier.ID, &supplier.Name, &contactInfo,
		&supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, err
	}

	supplier.ContactInfo = contactInfo.String
	return supplier, nil
}

func (r *catalogRepository) scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var description sql.NullString

	err := row.Scan(&product.ID, &product.SupplierID, &product.Name,
		&description, &product.Price, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	return product, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func totalPages(totalCount int64, pageSize int) int {
	return int(math.Ceil(float64(totalCount) / float64(pageSize)))
}
