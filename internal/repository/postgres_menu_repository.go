package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// PostgresMenuRepository implements MenuRepository using PostgreSQL with pgxpool
type PostgresMenuRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMenuRepository creates a new PostgresMenuRepository
func NewPostgresMenuRepository(pool *pgxpool.Pool) *PostgresMenuRepository {
	return &PostgresMenuRepository{pool: pool}
}

// Create creates a new menu record in the database
func (r *PostgresMenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.create")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", menu.ID.String()))

	query := `
		INSERT INTO menus (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		menu.ID,
		menu.Name,
		menu.Description,
		menu.CreatedAt,
		menu.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create menu: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a menu with its product and asset entries
func (r *PostgresMenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	menu, err := loadMenu(ctx, r.pool, id)
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			span.SetStatus(codes.Error, "not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("item_count", len(menu.Items)),
		attribute.Int("asset_count", len(menu.Assets)),
	)
	span.SetStatus(codes.Ok, "")
	return menu, nil
}

// List retrieves menus ordered by name, without their entries
func (r *PostgresMenuRepository) List(ctx context.Context, limit, offset int) ([]*domain.Menu, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.list")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM menus
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		menu := &domain.Menu{}
		if err := rows.Scan(
			&menu.ID,
			&menu.Name,
			&menu.Description,
			&menu.CreatedAt,
			&menu.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(menus)))
	span.SetStatus(codes.Ok, "")
	return menus, nil
}

// AddItem attaches a product entry to a menu
func (r *PostgresMenuRepository) AddItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.add_item")
	defer span.End()

	span.SetAttributes(
		attribute.String("menu_id", item.MenuID.String()),
		attribute.String("product_id", item.ProductID.String()),
	)

	query := `
		INSERT INTO menu_items (id, menu_id, product_id, per_guest)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.MenuID, item.ProductID, item.PerGuest)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to add menu item: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// AddAsset attaches an asset entry to a menu
func (r *PostgresMenuRepository) AddAsset(ctx context.Context, entry *domain.MenuAsset) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.add_asset")
	defer span.End()

	span.SetAttributes(
		attribute.String("menu_id", entry.MenuID.String()),
		attribute.String("asset_id", entry.AssetID.String()),
	)

	query := `
		INSERT INTO menu_assets (id, menu_id, asset_id, mode, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, entry.ID, entry.MenuID, entry.AssetID, entry.Mode, entry.Quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to add menu asset: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// RemoveItem detaches a product entry from a menu
func (r *PostgresMenuRepository) RemoveItem(ctx context.Context, menuID, itemID uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.remove_item")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", menuID.String()))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND menu_id = $2`, itemID, menuID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to remove menu item: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrMenuNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// RemoveAsset detaches an asset entry from a menu
func (r *PostgresMenuRepository) RemoveAsset(ctx context.Context, menuID, entryID uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.remove_asset")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", menuID.String()))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM menu_assets WHERE id = $1 AND menu_id = $2`, entryID, menuID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to remove menu asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrMenuNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete deletes a menu and its entries
func (r *PostgresMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.menu.delete")
	defer span.End()

	span.SetAttributes(attribute.String("menu_id", id.String()))

	// menu_items and menu_assets cascade on delete
	result, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrMenuNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// querier covers both pgxpool.Pool and pgx.Tx, so menu loading can run
// inside the planning transaction too.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// loadMenu loads a menu and both entry lists
func loadMenu(ctx context.Context, q querier, id uuid.UUID) (*domain.Menu, error) {
	menu := &domain.Menu{}
	err := q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM menus WHERE id = $1`, id,
	).Scan(&menu.ID, &menu.Name, &menu.Description, &menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT id, menu_id, product_id, per_guest FROM menu_items WHERE menu_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.MenuItem{}
		if err := rows.Scan(&item.ID, &item.MenuID, &item.ProductID, &item.PerGuest); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		menu.Items = append(menu.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	assetRows, err := q.Query(ctx,
		`SELECT id, menu_id, asset_id, mode, quantity FROM menu_assets WHERE menu_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu assets: %w", err)
	}
	defer assetRows.Close()

	for assetRows.Next() {
		entry := domain.MenuAsset{}
		if err := assetRows.Scan(&entry.ID, &entry.MenuID, &entry.AssetID, &entry.Mode, &entry.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan menu asset: %w", err)
		}
		menu.Assets = append(menu.Assets, entry)
	}
	if err := assetRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu assets: %w", err)
	}

	return menu, nil
}

// Ensure PostgresMenuRepository implements MenuRepository
var _ MenuRepository = (*PostgresMenuRepository)(nil)
