package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/pkg/telemetry"
)

// PostgresAssetRepository implements AssetRepository using PostgreSQL with pgxpool
type PostgresAssetRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAssetRepository creates a new PostgresAssetRepository
func NewPostgresAssetRepository(pool *pgxpool.Pool) *PostgresAssetRepository {
	return &PostgresAssetRepository{pool: pool}
}

// Create creates a new asset pool record in the database
func (r *PostgresAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.create")
	defer span.End()

	span.SetAttributes(attribute.String("asset_id", asset.ID.String()))

	query := `
		INSERT INTO assets (id, name, category, total, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.Name,
		asset.Category,
		asset.Total,
		asset.Available,
		asset.CreatedAt,
		asset.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create asset: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves an asset pool by its ID
func (r *PostgresAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("asset_id", id.String()))

	query := `
		SELECT id, name, category, total, available, created_at, updated_at
		FROM assets
		WHERE id = $1
	`

	asset := &domain.Asset{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Category,
		&asset.Total,
		&asset.Available,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrAssetNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return asset, nil
}

// List retrieves asset pools ordered by name
func (r *PostgresAssetRepository) List(ctx context.Context, limit, offset int) ([]*domain.Asset, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.list")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `
		SELECT id, name, category, total, available, created_at, updated_at
		FROM assets
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
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
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(assets)))
	span.SetStatus(codes.Ok, "")
	return assets, nil
}

// Update updates an asset pool's descriptive fields
func (r *PostgresAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.update")
	defer span.End()

	span.SetAttributes(attribute.String("asset_id", asset.ID.String()))

	query := `
		UPDATE assets SET
			name = $2,
			category = $3,
			updated_at = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, asset.ID, asset.Name, asset.Category, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrAssetNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Resize changes the pool's total and shifts availability by the same
// delta, so units allocated to open events stay allocated. The update
// is conditional to keep availability inside [0, total].
func (r *PostgresAssetRepository) Resize(ctx context.Context, id uuid.UUID, total int) (*domain.Asset, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.resize")
	defer span.End()

	span.SetAttributes(
		attribute.String("asset_id", id.String()),
		attribute.Int("total", total),
	)

	query := `
		UPDATE assets SET
			available = available + ($2 - total),
			total = $2,
			updated_at = $3
		WHERE id = $1
			AND available + ($2 - total) >= 0
		RETURNING id, name, category, total, available, created_at, updated_at
	`

	asset := &domain.Asset{}
	err := r.pool.QueryRow(ctx, query, id, total, time.Now()).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Category,
		&asset.Total,
		&asset.Available,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing row from a rejected shrink
			var exists bool
			if checkErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM assets WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
				span.RecordError(checkErr)
				span.SetStatus(codes.Error, checkErr.Error())
				return nil, fmt.Errorf("failed to check asset existence: %w", checkErr)
			}
			if !exists {
				span.SetStatus(codes.Error, "not found")
				return nil, domain.ErrAssetNotFound
			}
			span.SetStatus(codes.Error, "availability out of range")
			return nil, domain.ErrAssetAvailabilityRange
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to resize asset: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return asset, nil
}

// Delete deletes an asset pool by its ID
func (r *PostgresAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.asset.delete")
	defer span.End()

	span.SetAttributes(attribute.String("asset_id", id.String()))

	result, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrAssetNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ensure PostgresAssetRepository implements AssetRepository
var _ AssetRepository = (*PostgresAssetRepository)(nil)
