package services

import (
	"context"
	"sort"
	"time"

	"github.com/senyabanana/trek-market/internal/models"
)

// fakeStore - репозитории поверх карт в памяти, повторяющие охранные
// условия настоящих Postgres-реализаций.
type fakeStore struct {
	requests    map[int64]*models.Request
	bids        map[int64]*models.Bid
	users       map[int64]*models.UserSummary
	assignments []*models.Assignment
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: make(map[int64]*models.Request),
		bids:     make(map[int64]*models.Bid),
		users:    make(map[int64]*models.UserSummary),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateRequest(_ context.Context, ownerID int64, payload models.CreateRequestPayload) (*models.Request, error) {
	now := time.Now().UTC()
	req := &models.Request{
		ID:          f.id(),
		OwnerID:     ownerID,
		Title:       payload.Title,
		Location:    payload.Location,
		Description: payload.Description,
		Itinerary:   payload.Itinerary,
		PlannedTime: payload.PlannedTime,
		Budget:      payload.Budget,
		Status:      models.OpenRequest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeStore) GetRequest(_ context.Context, requestID int64) (*models.Request, error) {
	req, ok := f.requests[requestID]
	if !ok {
		return nil, models.NewNotFoundError("request", requestID)
	}
	copied := *req
	return &copied, nil
}

func (f *fakeStore) UpdateRequest(_ context.Context, requestID int64, payload models.UpdateRequestPayload) (*models.Request, error) {
	req, ok := f.requests[requestID]
	if !ok {
		return nil, models.NewNotFoundError("request", requestID)
	}
	if payload.Title != nil {
		req.Title = *payload.Title
	}
	if payload.Location != nil {
		req.Location = *payload.Location
	}
	if payload.Description != nil {
		req.Description = *payload.Description
	}
	if payload.Itinerary != nil {
		req.Itinerary = payload.Itinerary
	}
	if payload.PlannedTime != nil {
		req.PlannedTime = *payload.PlannedTime
	}
	if payload.Budget != nil {
		req.Budget = *payload.Budget
	}
	req.UpdatedAt = time.Now().UTC()
	copied := *req
	return &copied, nil
}

func (f *fakeStore) DeleteRequest(_ context.Context, requestID int64) error {
	req, ok := f.requests[requestID]
	if !ok || req.Status != models.OpenRequest {
		return models.NewRequestNotOpenError(requestID)
	}
	delete(f.requests, requestID)
	for id, bid := range f.bids {
		if bid.RequestID == requestID {
			delete(f.bids, id)
		}
	}
	return nil
}

func (f *fakeStore) ListOpenRequests(_ context.Context, filter models.RequestFilter) ([]models.Request, error) {
	var out []models.Request
	for _, req := range f.requests {
		if req.Status != models.OpenRequest {
			continue
		}
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListOwnerRequests(_ context.Context, ownerID int64, limit, offset int) ([]models.Request, error) {
	var out []models.Request
	for _, req := range f.requests {
		if req.OwnerID != ownerID {
			continue
		}
		if req.Status != models.OpenRequest && req.Status != models.OngoingRequest {
			continue
		}
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateBid(_ context.Context, bidderID int64, payload models.CreateBidPayload) (*models.Bid, error) {
	for _, bid := range f.bids {
		if bid.RequestID == payload.RequestID && bid.BidderID == bidderID {
			return nil, models.NewDuplicateBidError(payload.RequestID)
		}
	}
	now := time.Now().UTC()
	bid := &models.Bid{
		ID:        f.id(),
		RequestID: payload.RequestID,
		BidderID:  bidderID,
		Amount:    payload.Amount,
		Message:   payload.Message,
		Status:    models.PendingBid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.bids[bid.ID] = bid
	return bid, nil
}

func (f *fakeStore) GetBid(_ context.Context, bidID int64) (*models.Bid, error) {
	bid, ok := f.bids[bidID]
	if !ok {
		return nil, models.NewNotFoundError("bid", bidID)
	}
	copied := *bid
	return &copied, nil
}

func (f *fakeStore) BidExistsForBidder(_ context.Context, requestID, bidderID int64) (bool, error) {
	for _, bid := range f.bids {
		if bid.RequestID == requestID && bid.BidderID == bidderID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdateBid(_ context.Context, bidID int64, payload models.UpdateBidPayload) (*models.Bid, error) {
	bid, ok := f.bids[bidID]
	if !ok || bid.Status != models.PendingBid {
		return nil, models.NewBidNotPendingError(bidID)
	}
	bid.Amount = payload.Amount
	bid.Message = payload.Message
	bid.UpdatedAt = time.Now().UTC()
	copied := *bid
	return &copied, nil
}

func (f *fakeStore) CancelBid(_ context.Context, bidID int64) error {
	bid, ok := f.bids[bidID]
	if !ok || bid.Status != models.PendingBid {
		return models.NewBidNotPendingError(bidID)
	}
	bid.Status = models.CancelledBid
	return nil
}

func (f *fakeStore) ListBidsForRequest(_ context.Context, requestID int64, limit, offset int) ([]models.Bid, error) {
	var out []models.Bid
	for _, bid := range f.bids {
		if bid.RequestID != requestID {
			continue
		}
		copied := *bid
		if bidder, ok := f.users[bid.BidderID]; ok {
			copied.Bidder = bidder
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) ListBidsForBidder(_ context.Context, bidderID int64, limit, offset int) ([]models.Bid, error) {
	var out []models.Bid
	for _, bid := range f.bids {
		if bid.BidderID != bidderID {
			continue
		}
		copied := *bid
		if req, ok := f.requests[bid.RequestID]; ok {
			copied.Request = &models.RequestSummary{
				ID:       req.ID,
				Title:    req.Title,
				Location: req.Location,
				Budget:   req.Budget,
				Status:   req.Status,
			}
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) AcceptBid(_ context.Context, bid *models.Bid, assignment *models.Assignment) (*models.Assignment, error) {
	req, ok := f.requests[bid.RequestID]
	if !ok || req.Status != models.OpenRequest {
		return nil, models.NewRequestNotOpenError(bid.RequestID)
	}
	target, ok := f.bids[bid.ID]
	if !ok || target.Status != models.PendingBid {
		return nil, models.NewBidNotPendingError(bid.ID)
	}

	req.Status = models.CompletedRequest
	target.Status = models.AcceptedBid
	for _, sibling := range f.bids {
		if sibling.RequestID == bid.RequestID && sibling.ID != bid.ID && sibling.Status == models.PendingBid {
			sibling.Status = models.RejectedBid
		}
	}

	created := *assignment
	created.ID = f.id()
	created.CreatedAt = time.Now().UTC()
	f.assignments = append(f.assignments, &created)
	return &created, nil
}

func (f *fakeStore) ListAssignmentsForUser(_ context.Context, userID int64, limit, offset int) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, assignment := range f.assignments {
		if assignment.RequesterID != userID && assignment.AssigneeID != userID {
			continue
		}
		copied := *assignment
		if req, ok := f.requests[assignment.RequestID]; ok {
			copied.Request = &models.RequestSummary{
				ID:       req.ID,
				Title:    req.Title,
				Location: req.Location,
				Budget:   req.Budget,
				Status:   req.Status,
			}
		}
		counterpartID := assignment.AssigneeID
		if userID == assignment.AssigneeID {
			counterpartID = assignment.RequesterID
		}
		if user, ok := f.users[counterpartID]; ok {
			copied.Counterpart = user
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) GetUserSummary(_ context.Context, userID int64) (*models.UserSummary, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, models.NewNotFoundError("user", userID)
	}
	copied := *user
	return &copied, nil
}

// fakePublisher копит опубликованные события.
type fakePublisher struct {
	events []*models.AssignmentCreatedEvent
	err    error
}

func (p *fakePublisher) PublishAssignmentCreated(_ context.Context, event *models.AssignmentCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
