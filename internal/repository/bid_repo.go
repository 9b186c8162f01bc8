package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bidderID int64, payload models.CreateBidPayload) (*models.Bid, error)
	GetBid(ctx context.Context, bidID int64) (*models.Bid, error)
	BidExistsForBidder(ctx context.Context, requestID, bidderID int64) (bool, error)
	UpdateBid(ctx context.Context, bidID int64, payload models.UpdateBidPayload) (*models.Bid, error)
	CancelBid(ctx context.Context, bidID int64) error
	ListBidsForRequest(ctx context.Context, requestID int64, limit, offset int) ([]models.Bid, error)
	ListBidsForBidder(ctx context.Context, bidderID int64, limit, offset int) ([]models.Bid, error)
	AcceptBid(ctx context.Context, bid *models.Bid, assignment *models.Assignment) (*models.Assignment, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `id, request_id, bidder_id, amount::text, message, status, created_at, updated_at`

// Уникальный индекс на (request_id, bidder_id).
const uniqueViolationCode = "23505"

func scanBid(row pgx.Row) (*models.Bid, error) {
	var (
		bid    models.Bid
		amount string
	)
	if err := row.Scan(
		&bid.ID,
		&bid.RequestID,
		&bid.BidderID,
		&amount,
		&bid.Message,
		&bid.Status,
		&bid.CreatedAt,
		&bid.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	bid.Amount = parsed
	return &bid, nil
}

// CreateBid создает новое предложение со статусом pending.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidderID int64, payload models.CreateBidPayload) (*models.Bid, error) {
	now := time.Now().UTC()
	insertQuery := `
		INSERT INTO bids (request_id, bidder_id, amount, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bidColumns
	newBid, err := scanBid(r.DB.QueryRow(
		ctx,
		insertQuery,
		payload.RequestID,
		bidderID,
		payload.Amount.String(),
		payload.Message,
		models.PendingBid,
		now,
		now))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, models.NewDuplicateBidError(payload.RequestID)
		}
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	return newBid, nil
}

// GetBid возвращает предложение по ID.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidID int64) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("bid", bidID)
		}
		return nil, err
	}
	return bid, nil
}

// BidExistsForBidder проверяет, есть ли у гида предложение по этой заявке.
func (r *PostgresBidRepository) BidExistsForBidder(ctx context.Context, requestID, bidderID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bids WHERE request_id = $1 AND bidder_id = $2)`
	err := r.DB.QueryRow(ctx, query, requestID, bidderID).Scan(&exists)
	return exists, err
}

// UpdateBid перезаписывает сумму и сообщение предложения, пока оно pending.
func (r *PostgresBidRepository) UpdateBid(ctx context.Context, bidID int64, payload models.UpdateBidPayload) (*models.Bid, error) {
	updateQuery := `
		UPDATE bids SET amount = $1, message = $2, updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + bidColumns
	updated, err := scanBid(r.DB.QueryRow(
		ctx,
		updateQuery,
		payload.Amount.String(),
		payload.Message,
		time.Now().UTC(),
		bidID,
		models.PendingBid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewBidNotPendingError(bidID)
		}
		return nil, err
	}
	return updated, nil
}

// CancelBid переводит предложение pending -> cancelled.
func (r *PostgresBidRepository) CancelBid(ctx context.Context, bidID int64) error {
	tag, err := r.DB.Exec(
		ctx,
		`UPDATE bids SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		models.CancelledBid, time.Now().UTC(), bidID, models.PendingBid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NewBidNotPendingError(bidID)
	}
	return nil
}

// ListBidsForRequest возвращает все предложения по заявке с карточками гидов, новые первыми.
func (r *PostgresBidRepository) ListBidsForRequest(ctx context.Context, requestID int64, limit, offset int) ([]models.Bid, error) {
	query := `
		SELECT b.id, b.request_id, b.bidder_id, b.amount::text, b.message, b.status, b.created_at, b.updated_at,
		       u.id, u.full_name, u.avatar, u.rating
		FROM bids b
		JOIN users u ON b.bidder_id = u.id
		WHERE b.request_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, requestID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var (
			bid    models.Bid
			amount string
			bidder models.UserSummary
		)
		if err := rows.Scan(
			&bid.ID,
			&bid.RequestID,
			&bid.BidderID,
			&amount,
			&bid.Message,
			&bid.Status,
			&bid.CreatedAt,
			&bid.UpdatedAt,
			&bidder.ID,
			&bidder.FullName,
			&bidder.Avatar,
			&bidder.Rating); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		bid.Amount = parsed
		bid.Bidder = &bidder
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// ListBidsForBidder возвращает все предложения гида с карточками заявок и их владельцев.
func (r *PostgresBidRepository) ListBidsForBidder(ctx context.Context, bidderID int64, limit, offset int) ([]models.Bid, error) {
	query := `
		SELECT b.id, b.request_id, b.bidder_id, b.amount::text, b.message, b.status, b.created_at, b.updated_at,
		       r.id, r.title, r.location, r.budget::text, r.status,
		       u.id, u.full_name, u.avatar, u.rating
		FROM bids b
		JOIN requests r ON b.request_id = r.id
		JOIN users u ON r.owner_id = u.id
		WHERE b.bidder_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, bidderID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var (
			bid     models.Bid
			amount  string
			budget  string
			summary models.RequestSummary
			owner   models.UserSummary
		)
		if err := rows.Scan(
			&bid.ID,
			&bid.RequestID,
			&bid.BidderID,
			&amount,
			&bid.Message,
			&bid.Status,
			&bid.CreatedAt,
			&bid.UpdatedAt,
			&summary.ID,
			&summary.Title,
			&summary.Location,
			&budget,
			&summary.Status,
			&owner.ID,
			&owner.FullName,
			&owner.Avatar,
			&owner.Rating); err != nil {
			return nil, err
		}
		parsedAmount, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		parsedBudget, err := decimal.NewFromString(budget)
		if err != nil {
			return nil, fmt.Errorf("failed to parse budget: %w", err)
		}
		bid.Amount = parsedAmount
		summary.Budget = parsedBudget
		summary.Owner = &owner
		bid.Request = &summary
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// AcceptBid выполняет атомарный переход принятия предложения: заявка
// закрывается, победитель становится accepted, остальные pending-предложения
// rejected, создаётся ровно один поход. Любая ошибка откатывает всё.
//
// Статус заявки перепроверяется условным UPDATE уже внутри транзакции:
// из двух гонящихся принятий ровно одно увидит заявку открытой.
func (r *PostgresBidRepository) AcceptBid(ctx context.Context, bid *models.Bid, assignment *models.Assignment) (*models.Assignment, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, models.NewTransactionFailedError(err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	tag, err := tx.Exec(
		ctx,
		`UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		models.CompletedRequest, now, bid.RequestID, models.OpenRequest)
	if err != nil {
		return nil, models.NewTransactionFailedError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewRequestNotOpenError(bid.RequestID)
	}

	tag, err = tx.Exec(
		ctx,
		`UPDATE bids SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		models.AcceptedBid, now, bid.ID, models.PendingBid)
	if err != nil {
		return nil, models.NewTransactionFailedError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewBidNotPendingError(bid.ID)
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE bids SET status = $1, updated_at = $2 WHERE request_id = $3 AND id <> $4 AND status = $5`,
		models.RejectedBid, now, bid.RequestID, bid.ID, models.PendingBid)
	if err != nil {
		return nil, models.NewTransactionFailedError(err)
	}

	created := *assignment
	insertQuery := `
		INSERT INTO assignments (request_id, requester_id, assignee_id, start_date, end_date, remarks, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err = tx.QueryRow(
		ctx,
		insertQuery,
		assignment.RequestID,
		assignment.RequesterID,
		assignment.AssigneeID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Remarks,
		assignment.Status,
		now).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, models.NewTransactionFailedError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, models.NewTransactionFailedError(err)
	}
	return &created, nil
}
