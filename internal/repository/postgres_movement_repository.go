package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// PostgresMovementRepository implements MovementRepository using PostgreSQL.
// The ledger is append-only; writes happen inside stock adjustments and
// settlement transactions, never through this type.
type PostgresMovementRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMovementRepository creates a new PostgresMovementRepository
func NewPostgresMovementRepository(pool *pgxpool.Pool) *PostgresMovementRepository {
	return &PostgresMovementRepository{pool: pool}
}

// ListByProduct retrieves a product's movements, newest first
func (r *PostgresMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.StockMovement, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.movement.list_by_product")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", productID.String()),
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `
		SELECT id, product_id, event_id, kind, quantity, note, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	movements, err := r.queryMovements(ctx, query, productID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(movements)))
	span.SetStatus(codes.Ok, "")
	return movements, nil
}

// ListByEvent retrieves the movements a settled event generated
func (r *PostgresMovementRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.StockMovement, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.movement.list_by_event")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	query := `
		SELECT id, product_id, event_id, kind, quantity, note, created_at
		FROM stock_movements
		WHERE event_id = $1
		ORDER BY created_at
	`

	movements, err := r.queryMovements(ctx, query, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(movements)))
	span.SetStatus(codes.Ok, "")
	return movements, nil
}

func (r *PostgresMovementRepository) queryMovements(ctx context.Context, query string, args ...any) ([]*domain.StockMovement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*domain.StockMovement
	for rows.Next() {
		m := &domain.StockMovement{}
		var kind string
		if err := rows.Scan(
			&m.ID,
			&m.ProductID,
			&m.EventID,
			&kind,
			&m.Quantity,
			&m.Note,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		m.Kind = domain.MovementKind(kind)
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movements: %w", err)
	}

	return movements, nil
}

// Ensure PostgresMovementRepository implements MovementRepository
var _ MovementRepository = (*PostgresMovementRepository)(nil)
