package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string // Статус предложения

const (
	PendingBid   BidStatus = "pending"   // Предложение ждёт решения владельца заявки
	AcceptedBid  BidStatus = "accepted"  // Предложение принято
	RejectedBid  BidStatus = "rejected"  // Предложение отклонено при выборе победителя
	CancelledBid BidStatus = "cancelled" // Предложение отозвано гидом
)

// Bid представляет модель предложения по заявке.
type Bid struct {
	ID        int64           `json:"id"`
	RequestID int64           `json:"requestId"`
	BidderID  int64           `json:"bidderId"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message"`
	Status    BidStatus       `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Bidder    *UserSummary    `json:"bidder,omitempty"`
	Request   *RequestSummary `json:"request,omitempty"`
}

// CreateBidPayload представляет структуру запроса для создания предложения.
type CreateBidPayload struct {
	RequestID int64           `json:"requestId"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message"`
}

// UpdateBidPayload представляет структуру запроса для изменения предложения.
type UpdateBidPayload struct {
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
}

// RequestSummary - краткая карточка заявки, прикладывается к предложениям гида.
type RequestSummary struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Location string          `json:"location"`
	Budget   decimal.Decimal `json:"budget"`
	Status   RequestStatus   `json:"status"`
	Owner    *UserSummary    `json:"owner,omitempty"`
}
