package repository

import (
	"context"
	"errors"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для получения карточек пользователей.
// Полноценный профиль и аутентификация живут во внешнем сервисе.
type UserRepository interface {
	GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetUserSummary возвращает карточку пользователя по ID.
func (r *PostgresUserRepository) GetUserSummary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	var summary models.UserSummary
	query := `SELECT id, full_name, avatar, rating FROM users WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(
		&summary.ID,
		&summary.FullName,
		&summary.Avatar,
		&summary.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("user", userID)
		}
		return nil, err
	}
	return &summary, nil
}
