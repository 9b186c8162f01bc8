package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string // Статус заявки на поход

const (
	OpenRequest      RequestStatus = "open"      // Заявка открыта для предложений
	OngoingRequest   RequestStatus = "ongoing"   // Поход по заявке идёт
	CompletedRequest RequestStatus = "completed" // Заявка закрыта принятым предложением
	CancelledRequest RequestStatus = "cancelled" // Заявка отменена владельцем
)

// ItineraryItem - один пункт маршрута заявки.
type ItineraryItem struct {
	Activity string `json:"activity"`
}

// Request представляет модель заявки на поход.
type Request struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"ownerId"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Itinerary   []ItineraryItem `json:"itinerary"`
	PlannedTime string          `json:"plannedTime"`
	Budget      decimal.Decimal `json:"budget"`
	Status      RequestStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Owner       *UserSummary    `json:"owner,omitempty"`
}

// CreateRequestPayload представляет структуру запроса для создания заявки.
type CreateRequestPayload struct {
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Itinerary   []ItineraryItem `json:"itinerary"`
	PlannedTime string          `json:"plannedTime"`
	Budget      decimal.Decimal `json:"budget"`
}

// UpdateRequestPayload представляет частичное обновление заявки. Nil-поля не трогаются.
type UpdateRequestPayload struct {
	Title       *string          `json:"title,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Description *string          `json:"description,omitempty"`
	Itinerary   []ItineraryItem  `json:"itinerary,omitempty"`
	PlannedTime *string          `json:"plannedTime,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// RequestFilter - параметры выборки открытых заявок.
type RequestFilter struct {
	Locations []string
	MinBudget *decimal.Decimal
	MaxBudget *decimal.Decimal
	SortBy    string // budget | days | planned
	Limit     int
	Offset    int
}
