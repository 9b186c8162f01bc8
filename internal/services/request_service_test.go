package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/shopspring/decimal"
)

func validRequestPayload() models.CreateRequestPayload {
	return models.CreateRequestPayload{
		Title:       "Annapurna base camp trek",
		Location:    "Nepal",
		Description: "Ten days around the Annapurna massif with a local crew.",
		Itinerary: []models.ItineraryItem{
			{Activity: "Drive to Pokhara"},
			{Activity: "Hike to Ulleri"},
			{Activity: "Summit push and return"},
		},
		PlannedTime: "2026-10-01",
		Budget:      decimal.NewFromInt(500),
	}
}

func errorCode(t *testing.T, err error) models.ErrorCode {
	t.Helper()
	var modelErr *models.Error
	if !errors.As(err, &modelErr) {
		t.Fatalf("expected *models.Error, got %T: %v", err, err)
	}
	return modelErr.Code
}

func TestCreateRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.CreateRequestPayload)
	}{
		{"short title", func(p *models.CreateRequestPayload) { p.Title = "Hey" }},
		{"long title", func(p *models.CreateRequestPayload) { p.Title = strings.Repeat("x", 51) }},
		{"short location", func(p *models.CreateRequestPayload) { p.Location = "NP" }},
		{"short description", func(p *models.CreateRequestPayload) { p.Description = "too short" }},
		{"long description", func(p *models.CreateRequestPayload) { p.Description = strings.Repeat("x", 501) }},
		{"zero budget", func(p *models.CreateRequestPayload) { p.Budget = decimal.Zero }},
		{"negative budget", func(p *models.CreateRequestPayload) { p.Budget = decimal.NewFromInt(-10) }},
		{"seven digit budget", func(p *models.CreateRequestPayload) { p.Budget = decimal.NewFromInt(1000000) }},
		{"fractional budget over six digits", func(p *models.CreateRequestPayload) { p.Budget = decimal.RequireFromString("999999.99") }},
		{"empty itinerary", func(p *models.CreateRequestPayload) { p.Itinerary = nil }},
		{"empty activity", func(p *models.CreateRequestPayload) { p.Itinerary[0].Activity = "" }},
		{"long activity", func(p *models.CreateRequestPayload) { p.Itinerary[0].Activity = strings.Repeat("x", 201) }},
		{"missing planned time", func(p *models.CreateRequestPayload) { p.PlannedTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewRequestService(store, store)

			payload := validRequestPayload()
			tt.mutate(&payload)

			_, err := svc.CreateRequest(context.Background(), 1, payload)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if code := errorCode(t, err); code != models.CodeValidation {
				t.Errorf("error code: got %q, want %q", code, models.CodeValidation)
			}
		})
	}
}

func TestCreateRequestCountsCharactersNotBytes(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	// Кириллица занимает два байта на символ: границы должны
	// считаться по символам.
	payload := validRequestPayload()
	payload.Title = strings.Repeat("я", 50)
	payload.Location = strings.Repeat("я", 50)
	payload.Description = strings.Repeat("я", 20)
	payload.Itinerary = []models.ItineraryItem{{Activity: strings.Repeat("я", 200)}}

	if _, err := svc.CreateRequest(context.Background(), 1, payload); err != nil {
		t.Fatalf("CreateRequest with cyrillic fields at limits: %v", err)
	}

	payload = validRequestPayload()
	payload.Title = strings.Repeat("я", 51)
	_, err := svc.CreateRequest(context.Background(), 1, payload)
	if code := errorCode(t, err); code != models.CodeValidation {
		t.Errorf("51-char title: got %q, want %q", code, models.CodeValidation)
	}
}

func TestCreateRequestFractionalBudgetWithinDigits(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	payload := validRequestPayload()
	payload.Budget = decimal.RequireFromString("9999.99")

	if _, err := svc.CreateRequest(context.Background(), 1, payload); err != nil {
		t.Fatalf("CreateRequest with six-digit fractional budget: %v", err)
	}
}

func TestCreateRequestSuccess(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 7, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.Status != models.OpenRequest {
		t.Errorf("status: got %q, want %q", req.Status, models.OpenRequest)
	}
	if req.OwnerID != 7 {
		t.Errorf("owner: got %d, want 7", req.OwnerID)
	}
}

func TestUpdateRequestOwnership(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 1, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	title := "A different trek title"
	_, err = svc.UpdateRequest(context.Background(), req.ID, 2, models.UpdateRequestPayload{Title: &title})
	if code := errorCode(t, err); code != models.CodeNotOwner {
		t.Errorf("error code: got %q, want %q", code, models.CodeNotOwner)
	}

	updated, err := svc.UpdateRequest(context.Background(), req.ID, 1, models.UpdateRequestPayload{Title: &title})
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title: got %q, want %q", updated.Title, title)
	}
}

func TestUpdateRequestClosedRequest(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 1, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	store.requests[req.ID].Status = models.CompletedRequest

	title := "A different trek title"
	_, err = svc.UpdateRequest(context.Background(), req.ID, 1, models.UpdateRequestPayload{Title: &title})
	if code := errorCode(t, err); code != models.CodeRequestNotOpen {
		t.Errorf("error code: got %q, want %q", code, models.CodeRequestNotOpen)
	}
}

func TestUpdateRequestValidatesSuppliedFields(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 1, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	bad := "x"
	_, err = svc.UpdateRequest(context.Background(), req.ID, 1, models.UpdateRequestPayload{Title: &bad})
	if code := errorCode(t, err); code != models.CodeValidation {
		t.Errorf("error code: got %q, want %q", code, models.CodeValidation)
	}
}

func TestDeleteRequest(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 1, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	if err := svc.DeleteRequest(context.Background(), req.ID, 2); err == nil {
		t.Fatal("expected not-owner error, got nil")
	}
	if err := svc.DeleteRequest(context.Background(), req.ID, 1); err != nil {
		t.Fatalf("DeleteRequest: %v", err)
	}
	if _, err := svc.GetRequest(context.Background(), req.ID); err == nil {
		t.Fatal("expected not-found after delete, got nil")
	}
}

func TestGetRequestAttachesOwnerSummary(t *testing.T) {
	store := newFakeStore()
	store.users[1] = &models.UserSummary{ID: 1, FullName: "Asha Rai", Rating: 4.8}
	svc := NewRequestService(store, store)

	req, err := svc.CreateRequest(context.Background(), 1, validRequestPayload())
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	got, err := svc.GetRequest(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if got.Owner == nil || got.Owner.FullName != "Asha Rai" {
		t.Errorf("owner summary: got %+v, want Asha Rai", got.Owner)
	}
}

func TestListOpenRequestsRejectsUnknownSort(t *testing.T) {
	store := newFakeStore()
	svc := NewRequestService(store, store)

	_, err := svc.ListOpenRequests(context.Background(), models.RequestFilter{SortBy: "price"})
	if code := errorCode(t, err); code != models.CodeValidation {
		t.Errorf("error code: got %q, want %q", code, models.CodeValidation)
	}
}
