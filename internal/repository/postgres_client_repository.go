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

// PostgresClientRepository implements ClientRepository using PostgreSQL with pgxpool
type PostgresClientRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresClientRepository creates a new PostgresClientRepository
func NewPostgresClientRepository(pool *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{pool: pool}
}

// Create creates a new client record in the database
func (r *PostgresClientRepository) Create(ctx context.Context, client *domain.Client) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.client.create")
	defer span.End()

	span.SetAttributes(attribute.String("client_id", client.ID.String()))

	query := `
		INSERT INTO clients (id, name, email, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Notes,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create client: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a client by its ID
func (r *PostgresClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.client.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("client_id", id.String()))

	query := `
		SELECT id, name, email, phone, notes, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	client := &domain.Client{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrClientNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return client, nil
}

// List retrieves clients ordered by name
func (r *PostgresClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.client.list")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `
		SELECT id, name, email, phone, notes, created_at, updated_at
		FROM clients
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client := &domain.Client{}
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Phone,
			&client.Notes,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(clients)))
	span.SetStatus(codes.Ok, "")
	return clients, nil
}

// Update updates an existing client
func (r *PostgresClientRepository) Update(ctx context.Context, client *domain.Client) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.client.update")
	defer span.End()

	span.SetAttributes(attribute.String("client_id", client.ID.String()))

	query := `
		UPDATE clients SET
			name = $2,
			email = $3,
			phone = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Notes,
		time.Now(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrClientNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete deletes a client by its ID
func (r *PostgresClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.client.delete")
	defer span.End()

	span.SetAttributes(attribute.String("client_id", id.String()))

	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrClientNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ensure PostgresClientRepository implements ClientRepository
var _ ClientRepository = (*PostgresClientRepository)(nil)
