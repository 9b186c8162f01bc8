package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RequestRepository - интерфейс для работы с заявками на поход.
type RequestRepository interface {
	CreateRequest(ctx context.Context, ownerID int64, payload models.CreateRequestPayload) (*models.Request, error)
	GetRequest(ctx context.Context, requestID int64) (*models.Request, error)
	UpdateRequest(ctx context.Context, requestID int64, payload models.UpdateRequestPayload) (*models.Request, error)
	DeleteRequest(ctx context.Context, requestID int64) error
	ListOpenRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error)
	ListOwnerRequests(ctx context.Context, ownerID int64, limit, offset int) ([]models.Request, error)
}

// PostgresRequestRepository - реализация RequestRepository для базы данных.
type PostgresRequestRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresRequestRepository создаёт новый экземпляр PostgresRequestRepository.
func NewPostgresRequestRepository(db *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{DB: db}
}

const requestColumns = `id, owner_id, title, location, description, itinerary, planned_time, budget::text, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.Request, error) {
	var (
		req       models.Request
		itinerary []byte
		budget    string
	)
	if err := row.Scan(
		&req.ID,
		&req.OwnerID,
		&req.Title,
		&req.Location,
		&req.Description,
		&itinerary,
		&req.PlannedTime,
		&budget,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itinerary, &req.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary: %w", err)
	}
	parsed, err := decimal.NewFromString(budget)
	if err != nil {
		return nil, fmt.Errorf("failed to parse budget: %w", err)
	}
	req.Budget = parsed
	return &req, nil
}

// CreateRequest создаёт новую заявку со статусом open.
func (r *PostgresRequestRepository) CreateRequest(ctx context.Context, ownerID int64, payload models.CreateRequestPayload) (*models.Request, error) {
	itinerary, err := json.Marshal(payload.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	now := time.Now().UTC()
	insertQuery := `
		INSERT INTO requests (owner_id, title, location, description, itinerary, planned_time, budget, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + requestColumns
	newRequest, err := scanRequest(r.DB.QueryRow(
		ctx,
		insertQuery,
		ownerID,
		payload.Title,
		payload.Location,
		payload.Description,
		itinerary,
		payload.PlannedTime,
		payload.Budget.String(),
		models.OpenRequest,
		now,
		now))
	if err != nil {
		return nil, fmt.Errorf("failed to insert request: %w", err)
	}
	return newRequest, nil
}

// GetRequest возвращает заявку по ID.
func (r *PostgresRequestRepository) GetRequest(ctx context.Context, requestID int64) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(r.DB.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("request", requestID)
		}
		return nil, err
	}
	return req, nil
}

// UpdateRequest частично обновляет поля заявки.
func (r *PostgresRequestRepository) UpdateRequest(ctx context.Context, requestID int64, payload models.UpdateRequestPayload) (*models.Request, error) {
	var updates []string
	args := []interface{}{requestID}
	argIndex := 2

	if payload.Title != nil {
		updates = append(updates, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *payload.Title)
		argIndex++
	}
	if payload.Location != nil {
		updates = append(updates, fmt.Sprintf("location = $%d", argIndex))
		args = append(args, *payload.Location)
		argIndex++
	}
	if payload.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *payload.Description)
		argIndex++
	}
	if payload.Itinerary != nil {
		itinerary, err := json.Marshal(payload.Itinerary)
		if err != nil {
			return nil, fmt.Errorf("failed to encode itinerary: %w", err)
		}
		updates = append(updates, fmt.Sprintf("itinerary = $%d", argIndex))
		args = append(args, itinerary)
		argIndex++
	}
	if payload.PlannedTime != nil {
		updates = append(updates, fmt.Sprintf("planned_time = $%d", argIndex))
		args = append(args, *payload.PlannedTime)
		argIndex++
	}
	if payload.Budget != nil {
		updates = append(updates, fmt.Sprintf("budget = $%d", argIndex))
		args = append(args, payload.Budget.String())
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewValidationError("body", "no valid fields to update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())

	updateQuery := fmt.Sprintf(
		"UPDATE requests SET %s WHERE id = $1 RETURNING %s",
		strings.Join(updates, ", "), requestColumns)

	updated, err := scanRequest(r.DB.QueryRow(ctx, updateQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("request", requestID)
		}
		return nil, err
	}
	return updated, nil
}

// DeleteRequest удаляет открытую заявку; её предложения уносит каскад по
// внешнему ключу. Заявка, покинувшая статус open, удалению не подлежит.
func (r *PostgresRequestRepository) DeleteRequest(ctx context.Context, requestID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM requests WHERE id = $1 AND status = $2`, requestID, models.OpenRequest)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NewRequestNotOpenError(requestID)
	}
	return nil
}

// ListOpenRequests возвращает открытые заявки с фильтрами и сортировкой.
func (r *PostgresRequestRepository) ListOpenRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1`
	args := []interface{}{models.OpenRequest}
	argIndex := 2

	if len(filter.Locations) > 0 {
		query += fmt.Sprintf(" AND location = ANY($%d)", argIndex)
		args = append(args, pq.Array(filter.Locations))
		argIndex++
	}
	if filter.MinBudget != nil {
		query += fmt.Sprintf(" AND budget >= $%d", argIndex)
		args = append(args, filter.MinBudget.String())
		argIndex++
	}
	if filter.MaxBudget != nil {
		query += fmt.Sprintf(" AND budget <= $%d", argIndex)
		args = append(args, filter.MaxBudget.String())
		argIndex++
	}

	switch filter.SortBy {
	case "budget":
		query += " ORDER BY budget DESC"
	case "days":
		query += " ORDER BY jsonb_array_length(itinerary) DESC"
	case "planned":
		query += " ORDER BY planned_time"
	default:
		query += " ORDER BY created_at DESC"
	}

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// ListOwnerRequests возвращает активные заявки владельца, новые первыми.
func (r *PostgresRequestRepository) ListOwnerRequests(ctx context.Context, ownerID int64, limit, offset int) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
	          WHERE owner_id = $1 AND status = ANY($2)
	          ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	statuses := pq.Array([]string{string(models.OpenRequest), string(models.OngoingRequest)})

	rows, err := r.DB.Query(ctx, query, ownerID, statuses, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
