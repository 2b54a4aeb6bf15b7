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

// PostgresPlanningStore implements PlanningStore using pgx transactions.
// Planning and settlement mutate events, products, assets, reservations
// and the movement ledger together, so every step runs on one tx and
// touched rows are taken FOR UPDATE in a fixed order.
type PostgresPlanningStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanningStore creates a new PostgresPlanningStore
func NewPostgresPlanningStore(pool *pgxpool.Pool) *PostgresPlanningStore {
	return &PostgresPlanningStore{pool: pool}
}

// WithTx runs fn inside a database transaction. Any error from fn rolls
// the transaction back.
func (s *PostgresPlanningStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx PlanningTx) error) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.with_tx")
	defer span.End()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &planningTx{tx: tx}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// planningTx implements PlanningTx over a live pgx.Tx
type planningTx struct {
	tx pgx.Tx
}

// LockEvent loads the event row under FOR UPDATE
func (t *planningTx) LockEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.lock_event")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id.String()))

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	event, err := scanEventRow(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrEventNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// GetMenu loads a menu with its entries inside the transaction
func (t *planningTx) GetMenu(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.get_menu")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	menu, err := loadMenu(ctx, t.tx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return menu, nil
}

// LockProducts loads product rows under FOR UPDATE. Rows are locked in
// ID order so concurrent plans touching the same products cannot
// deadlock each other.
func (t *planningTx) LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.lock_products")
	defer span.End()

	span.SetAttributes(attribute.Int("count", len(ids)))

	if len(ids) == 0 {
		span.SetStatus(codes.Ok, "")
		return map[uuid.UUID]*domain.Product{}, nil
	}

	query := `
		SELECT id, name, unit, stock, min_stock, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := t.tx.Query(ctx, query, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	products := make(map[uuid.UUID]*domain.Product, len(ids))
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return products, nil
}

// LockAssets loads asset rows under FOR UPDATE in ID order
func (t *planningTx) LockAssets(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Asset, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.lock_assets")
	defer span.End()

	span.SetAttributes(attribute.Int("count", len(ids)))

	if len(ids) == 0 {
		span.SetStatus(codes.Ok, "")
		return map[uuid.UUID]*domain.Asset{}, nil
	}

	query := `
		SELECT id, name, category, total, available, created_at, updated_at
		FROM assets
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := t.tx.Query(ctx, query, ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock assets: %w", err)
	}
	defer rows.Close()

	assets := make(map[uuid.UUID]*domain.Asset, len(ids))
	for rows.Next() {
		asset := &domain.Asset{}
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Category,
			&asset.Total,
			&asset.Available,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets[asset.ID] = asset
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return assets, nil
}

// GetProductReservations lists the event's current product reservations
func (t *planningTx) GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error) {
	return queryProductReservations(ctx, t.tx, eventID)
}

// GetAssetAllocations lists the event's current asset allocations
func (t *planningTx) GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error) {
	return queryAssetAllocations(ctx, t.tx, eventID)
}

// ReplacePlan deletes the event's previous plan rows and inserts the
// new ones
func (t *planningTx) ReplacePlan(ctx context.Context, eventID uuid.UUID, reservations []*domain.ProductReservation, allocations []*domain.AssetAllocation) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.planning.replace_plan")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID.String()),
		attribute.Int("reservations", len(reservations)),
		attribute.Int("allocations", len(allocations)),
	)

	if _, err := t.tx.Exec(ctx, `DELETE FROM product_reservations WHERE event_id = $1`, eventID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete product reservations: %w", err)
	}
	if _, err := t.tx.Exec(ctx, `DELETE FROM asset_allocations WHERE event_id = $1`, eventID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete asset allocations: %w", err)
	}

	for _, res := range reservations {
		_, err := t.tx.Exec(ctx,
			`INSERT INTO product_reservations (id, event_id, product_id, quantity, shortfall, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			res.ID, res.EventID, res.ProductID, res.Quantity, res.Shortfall, res.CreatedAt,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to insert product reservation: %w", err)
		}
	}

	for _, alloc := range allocations {
		_, err := t.tx.Exec(ctx,
			`INSERT INTO asset_allocations (id, event_id, asset_id, quantity, shortfall, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			alloc.ID, alloc.EventID, alloc.AssetID, alloc.Quantity, alloc.Shortfall, alloc.CreatedAt,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to insert asset allocation: %w", err)
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// SetProductStock writes a product's new absolute stock
func (t *planningTx) SetProductStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`,
		id, stock, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set product stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// SetAssetCounts writes an asset pool's new total and availability.
// The write is conditional on availability staying inside [0, total].
func (t *planningTx) SetAssetCounts(ctx context.Context, id uuid.UUID, total, available int) error {
	if available < 0 || available > total {
		return domain.ErrAssetAvailabilityRange
	}
	result, err := t.tx.Exec(ctx,
		`UPDATE assets SET total = $2, available = $3, updated_at = $4 WHERE id = $1`,
		id, total, available, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set asset counts: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// FinalizeReservation writes the settled consumed and returned
// quantities onto a reservation row. Finalized rows are never touched
// again.
func (t *planningTx) FinalizeReservation(ctx context.Context, id uuid.UUID, consumed, returned decimal.Decimal) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE product_reservations SET consumed = $2, returned = $3 WHERE id = $1`,
		id, consumed, returned,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize product reservation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// FinalizeAllocation writes the settled loss count onto an allocation row
func (t *planningTx) FinalizeAllocation(ctx context.Context, id uuid.UUID, lost int) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE asset_allocations SET lost = $2 WHERE id = $1`,
		id, lost,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize asset allocation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

// InsertMovement appends a stock movement ledger line
func (t *planningTx) InsertMovement(ctx context.Context, movement *domain.StockMovement) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO stock_movements (id, product_id, event_id, kind, quantity, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		movement.ID,
		movement.ProductID,
		movement.EventID,
		string(movement.Kind),
		movement.Quantity,
		movement.Note,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}
	return nil
}

// UpdateEvent persists the event's status and timestamps
func (t *planningTx) UpdateEvent(ctx context.Context, event *domain.Event) error {
	result, err := t.tx.Exec(ctx,
		`UPDATE events SET
			status = $2,
			planned_at = $3,
			settled_at = $4,
			updated_at = $5
		WHERE id = $1`,
		event.ID,
		string(event.Status),
		event.PlannedAt,
		event.SettledAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event row; the reservation and allocation rows
// cascade with it
func (t *planningTx) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	result, err := t.tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// PostgresReservationRepository serves plan reads outside of any
// transaction, for the plan inspection endpoints.
type PostgresReservationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReservationRepository creates a new PostgresReservationRepository
func NewPostgresReservationRepository(pool *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{pool: pool}
}

// GetProductReservations lists the event's product reservations
func (r *PostgresReservationRepository) GetProductReservations(ctx context.Context, eventID uuid.UUID) ([]*domain.ProductReservation, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.reservation.get_product_reservations")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	reservations, err := queryProductReservations(ctx, r.pool, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(reservations)))
	span.SetStatus(codes.Ok, "")
	return reservations, nil
}

// GetAssetAllocations lists the event's asset allocations
func (r *PostgresReservationRepository) GetAssetAllocations(ctx context.Context, eventID uuid.UUID) ([]*domain.AssetAllocation, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.reservation.get_asset_allocations")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID.String()))

	allocations, err := queryAssetAllocations(ctx, r.pool, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(allocations)))
	span.SetStatus(codes.Ok, "")
	return allocations, nil
}

func queryProductReservations(ctx context.Context, q querier, eventID uuid.UUID) ([]*domain.ProductReservation, error) {
	query := `
		SELECT id, event_id, product_id, quantity, shortfall, consumed, returned, created_at
		FROM product_reservations
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*domain.ProductReservation
	for rows.Next() {
		res := &domain.ProductReservation{}
		if err := rows.Scan(
			&res.ID,
			&res.EventID,
			&res.ProductID,
			&res.Quantity,
			&res.Shortfall,
			&res.Consumed,
			&res.Returned,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product reservations: %w", err)
	}

	return reservations, nil
}

func queryAssetAllocations(ctx context.Context, q querier, eventID uuid.UUID) ([]*domain.AssetAllocation, error) {
	query := `
		SELECT id, event_id, asset_id, quantity, shortfall, lost, created_at
		FROM asset_allocations
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*domain.AssetAllocation
	for rows.Next() {
		alloc := &domain.AssetAllocation{}
		if err := rows.Scan(
			&alloc.ID,
			&alloc.EventID,
			&alloc.AssetID,
			&alloc.Quantity,
			&alloc.Shortfall,
			&alloc.Lost,
			&alloc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset allocation: %w", err)
		}
		allocations = append(allocations, alloc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset allocations: %w", err)
	}

	return allocations, nil
}

// Ensure implementations satisfy their interfaces
var (
	_ PlanningStore         = (*PostgresPlanningStore)(nil)
	_ PlanningTx            = (*planningTx)(nil)
	_ ReservationRepository = (*PostgresReservationRepository)(nil)
)
