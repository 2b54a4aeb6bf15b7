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

// PostgresEventRepository implements EventRepository using PostgreSQL with pgxpool
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

const eventColumns = `
	id, client_id, menu_id, name, venue, guest_count, status,
	starts_at, ends_at, planned_at, settled_at, created_at, updated_at
`

// Create creates a new event record in the database
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", event.ID.String()),
		attribute.String("client_id", event.ClientID.String()),
	)

	query := `
		INSERT INTO events (
			id, client_id, menu_id, name, venue, guest_count, status,
			starts_at, ends_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ClientID,
		event.MenuID,
		event.Name,
		event.Venue,
		event.GuestCount,
		string(event.Status),
		event.StartsAt,
		event.EndsAt,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to create event: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves an event by its ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", id.String()))

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEventRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrEventNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// List retrieves events with optional filters, newest start date first
func (r *PostgresEventRepository) List(ctx context.Context, filter *EventFilter, limit, offset int) ([]*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.list")
	defer span.End()

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	)

	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}
	argn := 0

	if filter != nil {
		if filter.ClientID != nil {
			argn++
			query += fmt.Sprintf(" AND client_id = $%d", argn)
			args = append(args, *filter.ClientID)
		}
		if filter.Status != "" {
			argn++
			query += fmt.Sprintf(" AND status = $%d", argn)
			args = append(args, string(filter.Status))
		}
	}

	query += fmt.Sprintf(" ORDER BY starts_at DESC LIMIT $%d OFFSET $%d", argn+1, argn+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(events)))
	span.SetStatus(codes.Ok, "")
	return events, nil
}

// Update updates an existing event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.update")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", event.ID.String()))

	query := `
		UPDATE events SET
			menu_id = $2,
			name = $3,
			venue = $4,
			guest_count = $5,
			status = $6,
			starts_at = $7,
			ends_at = $8,
			planned_at = $9,
			settled_at = $10,
			updated_at = $11
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.MenuID,
		event.Name,
		event.Venue,
		event.GuestCount,
		string(event.Status),
		event.StartsAt,
		event.EndsAt,
		event.PlannedAt,
		event.SettledAt,
		time.Now(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update event: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrEventNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// UpdateStatus updates only the status of an event
func (r *PostgresEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.event.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", id.String()),
		attribute.String("status", string(status)),
	)

	query := `
		UPDATE events SET
			status = $2,
			updated_at = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, string(status), time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to update event status: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrEventNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// scanEventRow scans an event from a row or rows cursor
func scanEventRow(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	var status string

	err := row.Scan(
		&event.ID,
		&event.ClientID,
		&event.MenuID,
		&event.Name,
		&event.Venue,
		&event.GuestCount,
		&status,
		&event.StartsAt,
		&event.EndsAt,
		&event.PlannedAt,
		&event.SettledAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.Status = domain.EventStatus(status)
	return event, nil
}

// Ensure PostgresEventRepository implements EventRepository
var _ EventRepository = (*PostgresEventRepository)(nil)
