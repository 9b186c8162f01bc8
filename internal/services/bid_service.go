package services

import (
	"context"
	"errors"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/repository"
)

type BidService struct {
	repo     repository.BidRepository
	requests repository.RequestRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, requests repository.RequestRepository) *BidService {
	return &BidService{repo: repo, requests: requests}
}

// CreateBid создает новое предложение гида по открытой заявке.
// У одного гида может быть только одно предложение на заявку.
func (s *BidService) CreateBid(ctx context.Context, bidderID int64, payload models.CreateBidPayload) (*models.Bid, error) {
	req, err := s.requests.GetRequest(ctx, payload.RequestID)
	if err != nil {
		var modelErr *models.Error
		if errors.As(err, &modelErr) && modelErr.Code == models.CodeNotFound {
			return nil, models.NewRequestNotOpenError(payload.RequestID)
		}
		return nil, err
	}
	if req.Status != models.OpenRequest {
		return nil, models.NewRequestNotOpenError(payload.RequestID)
	}

	exists, err := s.repo.BidExistsForBidder(ctx, payload.RequestID, bidderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateBidError(payload.RequestID)
	}

	if !payload.Amount.IsPositive() {
		return nil, models.NewValidationError("amount", "must be positive")
	}
	if payload.Message == "" {
		return nil, models.NewValidationError("message", "message is required")
	}

	return s.repo.CreateBid(ctx, bidderID, payload)
}

// UpdateBid перезаписывает сумму и сообщение предложения, пока оно не обработано.
func (s *BidService) UpdateBid(ctx context.Context, bidID, callerID int64, payload models.UpdateBidPayload) (*models.Bid, error) {
	if !payload.Amount.IsPositive() {
		return nil, models.NewValidationError("amount", "must be positive")
	}
	if payload.Message == "" {
		return nil, models.NewValidationError("message", "message is required")
	}

	bid, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if bid.BidderID != callerID {
		return nil, models.NewNotOwnerError("bid")
	}
	if bid.Status != models.PendingBid {
		return nil, models.NewBidNotPendingError(bidID)
	}
	return s.repo.UpdateBid(ctx, bidID, payload)
}

// CancelBid отзывает необработанное предложение гида.
func (s *BidService) CancelBid(ctx context.Context, bidID, callerID int64) error {
	bid, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return err
	}
	if bid.BidderID != callerID {
		return models.NewNotOwnerError("bid")
	}
	if bid.Status != models.PendingBid {
		return models.NewBidNotPendingError(bidID)
	}
	return s.repo.CancelBid(ctx, bidID)
}

// ListBidsForRequest возвращает предложения по заявке для экрана переговоров.
func (s *BidService) ListBidsForRequest(ctx context.Context, requestID int64, limit, offset int) ([]models.Bid, error) {
	if _, err := s.requests.GetRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return s.repo.ListBidsForRequest(ctx, requestID, limit, offset)
}

// ListBidsForBidder возвращает личный реестр предложений гида.
func (s *BidService) ListBidsForBidder(ctx context.Context, bidderID int64, limit, offset int) ([]models.Bid, error) {
	return s.repo.ListBidsForBidder(ctx, bidderID, limit, offset)
}
