package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/repository"

	"github.com/shopspring/decimal"
)

// Ограничения полей заявки. Длины считаются в символах, не в байтах.
const (
	titleMinLen       = 5
	titleMaxLen       = 50
	locationMinLen    = 3
	locationMaxLen    = 50
	descriptionMinLen = 20
	descriptionMaxLen = 500
	activityMaxLen    = 200
	budgetMaxDigits   = 6
)

type RequestService struct {
	repo  repository.RequestRepository
	users repository.UserRepository
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(repo repository.RequestRepository, users repository.UserRepository) *RequestService {
	return &RequestService{repo: repo, users: users}
}

// CreateRequest создает новую заявку на поход от имени владельца.
func (s *RequestService) CreateRequest(ctx context.Context, ownerID int64, payload models.CreateRequestPayload) (*models.Request, error) {
	if err := validateTitle(payload.Title); err != nil {
		return nil, err
	}
	if err := validateLocation(payload.Location); err != nil {
		return nil, err
	}
	if err := validateDescription(payload.Description); err != nil {
		return nil, err
	}
	if err := validateBudget(payload.Budget); err != nil {
		return nil, err
	}
	if payload.PlannedTime == "" {
		return nil, models.NewValidationError("plannedTime", "planned date is required")
	}
	if err := validateItinerary(payload.Itinerary); err != nil {
		return nil, err
	}
	return s.repo.CreateRequest(ctx, ownerID, payload)
}

// UpdateRequest частично обновляет открытую заявку. Менять заявку может только владелец.
func (s *RequestService) UpdateRequest(ctx context.Context, requestID, callerID int64, payload models.UpdateRequestPayload) (*models.Request, error) {
	current, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != callerID {
		return nil, models.NewNotOwnerError("request")
	}
	if current.Status != models.OpenRequest {
		return nil, models.NewRequestNotOpenError(requestID)
	}

	if payload.Title != nil {
		if err := validateTitle(*payload.Title); err != nil {
			return nil, err
		}
	}
	if payload.Location != nil {
		if err := validateLocation(*payload.Location); err != nil {
			return nil, err
		}
	}
	if payload.Description != nil {
		if err := validateDescription(*payload.Description); err != nil {
			return nil, err
		}
	}
	if payload.Budget != nil {
		if err := validateBudget(*payload.Budget); err != nil {
			return nil, err
		}
	}
	if payload.PlannedTime != nil && *payload.PlannedTime == "" {
		return nil, models.NewValidationError("plannedTime", "planned date is required")
	}
	if payload.Itinerary != nil {
		if err := validateItinerary(payload.Itinerary); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateRequest(ctx, requestID, payload)
}

// DeleteRequest удаляет открытую заявку владельца вместе с её предложениями.
func (s *RequestService) DeleteRequest(ctx context.Context, requestID, callerID int64) error {
	current, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if current.OwnerID != callerID {
		return models.NewNotOwnerError("request")
	}
	return s.repo.DeleteRequest(ctx, requestID)
}

// GetRequest возвращает заявку с карточкой владельца.
func (s *RequestService) GetRequest(ctx context.Context, requestID int64) (*models.Request, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetUserSummary(ctx, req.OwnerID)
	if err == nil {
		req.Owner = owner
	}
	return req, nil
}

// ListOpenRequests возвращает открытые заявки для витрины гидов.
func (s *RequestService) ListOpenRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	switch filter.SortBy {
	case "", "budget", "days", "planned":
	default:
		return nil, models.NewValidationError("sort", "must be one of budget, days, planned")
	}
	return s.repo.ListOpenRequests(ctx, filter)
}

// ListMyRequests возвращает активные заявки вызывающего.
func (s *RequestService) ListMyRequests(ctx context.Context, ownerID int64, limit, offset int) ([]models.Request, error) {
	return s.repo.ListOwnerRequests(ctx, ownerID, limit, offset)
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return models.NewValidationError("title", "must be 5-50 characters")
	}
	return nil
}

func validateLocation(location string) error {
	if n := utf8.RuneCountInString(location); n < locationMinLen || n > locationMaxLen {
		return models.NewValidationError("location", "must be 3-50 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n < descriptionMinLen || n > descriptionMaxLen {
		return models.NewValidationError("description", "must be 20-500 characters")
	}
	return nil
}

func validateBudget(budget decimal.Decimal) error {
	if !budget.IsPositive() {
		return models.NewValidationError("budget", "must be positive and max 6 digits")
	}
	// Считаются все цифры записи, дробные включительно: 999999.99 не проходит.
	digits := strings.ReplaceAll(budget.String(), ".", "")
	if len(digits) > budgetMaxDigits {
		return models.NewValidationError("budget", "must be positive and max 6 digits")
	}
	return nil
}

func validateItinerary(itinerary []models.ItineraryItem) error {
	if len(itinerary) == 0 {
		return models.NewValidationError("itinerary", "must be a non-empty list")
	}
	for _, item := range itinerary {
		if item.Activity == "" || utf8.RuneCountInString(item.Activity) > activityMaxLen {
			return models.NewValidationError("itinerary", "each activity must be 1-200 characters")
		}
	}
	return nil
}
