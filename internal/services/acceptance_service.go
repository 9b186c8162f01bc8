package services

import (
	"context"
	"time"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/notify"
	"github.com/senyabanana/trek-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AcceptanceService выполняет принятие предложения владельцем заявки:
// единственный код, которому позволено уводить предложение из pending,
// заявку из open и создавать походы.
type AcceptanceService struct {
	bids      repository.BidRepository
	requests  repository.RequestRepository
	publisher notify.Publisher
	logger    zerolog.Logger
}

// NewAcceptanceService создает новый экземпляр AcceptanceService.
// publisher может быть nil - тогда события не публикуются.
func NewAcceptanceService(bids repository.BidRepository, requests repository.RequestRepository, publisher notify.Publisher, logger zerolog.Logger) *AcceptanceService {
	return &AcceptanceService{
		bids:      bids,
		requests:  requests,
		publisher: publisher,
		logger:    logger,
	}
}

// AcceptBid принимает предложение и возвращает созданный поход.
// Переход заявки, победителя, проигравших и создание похода происходят
// в одной транзакции; при любой ошибке наблюдаемое состояние не меняется.
func (s *AcceptanceService) AcceptBid(ctx context.Context, bidID, callerID int64) (*models.Assignment, error) {
	bid, err := s.bids.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}

	req, err := s.requests.GetRequest(ctx, bid.RequestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != callerID {
		return nil, models.NewNotOwnerError("request")
	}
	if req.Status != models.OpenRequest {
		return nil, models.NewRequestNotOpenError(req.ID)
	}
	if bid.Status != models.PendingBid {
		return nil, models.NewBidNotPendingError(bidID)
	}

	assignment := deriveAssignment(req, bid, time.Now().UTC())

	created, err := s.bids.AcceptBid(ctx, bid, assignment)
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, created, bid)
	return created, nil
}

// publishCreated отправляет событие о созданном походе. Ошибка публикации
// не откатывает уже закоммиченное принятие, только логируется.
func (s *AcceptanceService) publishCreated(ctx context.Context, assignment *models.Assignment, bid *models.Bid) {
	if s.publisher == nil {
		return
	}

	event := &models.AssignmentCreatedEvent{
		EventID:      uuid.New().String(),
		AssignmentID: assignment.ID,
		RequestID:    assignment.RequestID,
		RequesterID:  assignment.RequesterID,
		AssigneeID:   assignment.AssigneeID,
		Amount:       bid.Amount.String(),
		StartDate:    assignment.StartDate.Format("2006-01-02"),
		EndDate:      assignment.EndDate.Format("2006-01-02"),
		Timestamp:    time.Now().Unix(),
	}
	if err := s.publisher.PublishAssignmentCreated(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Int64("assignment_id", assignment.ID).
			Msg("failed to publish assignment created event")
	}
}
