package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// PostgresProductRepository implements ProductRepository using PostgreSQL with pgxpool
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository creates a new PostgresProductRepository
func NewPostgresProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

// Create creates a new product record in the database
func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.create")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", product.ID.String()))

	query := `
		INSERT INTO products (id, name, unit, stock, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Unit,
		product.Stock,
		product.MinStock,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create product: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a product by its ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", id.String()))

	query := `
		SELECT id, name, unit, stock, min_stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProductRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return product, nil
}

// List retrieves products ordered by name
func (r *PostgresProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.list")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `
		SELECT id, name, unit, stock, min_stock, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	products, err := r.queryProducts(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(products)))
	span.SetStatus(codes.Ok, "")
	return products, nil
}

// ListBelowMinimum retrieves products whose stock is under min_stock
func (r *PostgresProductRepository) ListBelowMinimum(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.list_below_minimum")
	defer span.End()

	query := `
		SELECT id, name, unit, stock, min_stock, created_at, updated_at
		FROM products
		WHERE stock < min_stock
		ORDER BY name
	`

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(products)))
	span.SetStatus(codes.Ok, "")
	return products, nil
}

// Update updates a product's descriptive fields
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.update")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", product.ID.String()))

	query := `
		UPDATE products SET
			name = $2,
			unit = $3,
			min_stock = $4,
			updated_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Unit,
		product.MinStock,
		time.Now(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// AdjustStock applies a manual movement to a product's stock and writes
// the ledger line in the same transaction. ENTRY adds, EXIT subtracts
// and ADJUSTMENT sets the absolute counted value.
func (r *PostgresProductRepository) AdjustStock(ctx context.Context, productID uuid.UUID, kind domain.MovementKind, quantity decimal.Decimal, note string) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.adjust_stock")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", productID.String()),
		attribute.String("kind", string(kind)),
		attribute.String("quantity", quantity.String()),
	)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, name, unit, stock, min_stock, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	product, err := scanProductRow(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	switch kind {
	case domain.MovementEntry:
		product.Stock = product.Stock.Add(quantity)
	case domain.MovementExit:
		product.Stock = product.Stock.Sub(quantity)
	case domain.MovementAdjustment:
		product.Stock = quantity
	default:
		span.SetStatus(codes.Error, "invalid movement kind")
		return nil, domain.ErrInvalidMovementKind
	}

	now := time.Now()
	product.UpdatedAt = now

	_, err = tx.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`,
		productID, product.Stock, now,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to write product stock: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO stock_movements (id, product_id, event_id, kind, quantity, note, created_at)
		 VALUES ($1, $2, NULL, $3, $4, $5, $6)`,
		uuid.New(), productID, string(kind), quantity, note, now,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to record stock movement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return product, nil
}

// Delete deletes a product by its ID
func (r *PostgresProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.product.delete")
	defer span.End()

	span.SetAttributes(attribute.String("product_id", id.String()))

	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (r *PostgresProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanProductRow scans a product from a row or rows cursor
func scanProductRow(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Unit,
		&product.Stock,
		&product.MinStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return product, nil
}

// Ensure PostgresProductRepository implements ProductRepository
var _ ProductRepository = (*PostgresProductRepository)(nil)
