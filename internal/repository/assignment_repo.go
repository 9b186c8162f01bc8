package repository

import (
	"context"
	"fmt"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AssignmentRepository - интерфейс для чтения подтверждённых походов.
// Записи создаёт только транзакция принятия в BidRepository.
type AssignmentRepository interface {
	ListAssignmentsForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Assignment, error)
}

// PostgresAssignmentRepository - реализация AssignmentRepository для базы данных.
type PostgresAssignmentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAssignmentRepository создает новый экземпляр PostgresAssignmentRepository.
func NewPostgresAssignmentRepository(db *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{DB: db}
}

// ListAssignmentsForUser возвращает походы, где пользователь - владелец заявки
// или гид, с карточкой заявки и карточкой второй стороны, ближайшие первыми.
func (r *PostgresAssignmentRepository) ListAssignmentsForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Assignment, error) {
	query := `
		SELECT a.id, a.request_id, a.requester_id, a.assignee_id, a.start_date, a.end_date, a.remarks, a.status, a.created_at,
		       r.id, r.title, r.location, r.budget::text, r.status,
		       u.id, u.full_name, u.avatar, u.rating
		FROM assignments a
		JOIN requests r ON a.request_id = r.id
		JOIN users u ON u.id = CASE WHEN a.requester_id = $1 THEN a.assignee_id ELSE a.requester_id END
		WHERE a.requester_id = $1 OR a.assignee_id = $1
		ORDER BY a.start_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var (
			assignment  models.Assignment
			summary     models.RequestSummary
			budget      string
			counterpart models.UserSummary
		)
		if err := rows.Scan(
			&assignment.ID,
			&assignment.RequestID,
			&assignment.RequesterID,
			&assignment.AssigneeID,
			&assignment.StartDate,
			&assignment.EndDate,
			&assignment.Remarks,
			&assignment.Status,
			&assignment.CreatedAt,
			&summary.ID,
			&summary.Title,
			&summary.Location,
			&budget,
			&summary.Status,
			&counterpart.ID,
			&counterpart.FullName,
			&counterpart.Avatar,
			&counterpart.Rating); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(budget)
		if err != nil {
			return nil, fmt.Errorf("failed to parse budget: %w", err)
		}
		summary.Budget = parsed
		assignment.Request = &summary
		assignment.Counterpart = &counterpart
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}
