package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/services"
	"github.com/senyabanana/trek-market/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BidHandler - структура для обработки HTTP-запросов по предложениям.
type BidHandler struct {
	Service    *services.BidService
	Acceptance *services.AcceptanceService
	Logger     zerolog.Logger
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, acceptance *services.AcceptanceService, logger zerolog.Logger) *BidHandler {
	return &BidHandler{
		Service:    service,
		Acceptance: acceptance,
		Logger:     logger,
	}
}

// CreateBid обрабатывает запросы для создания предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	var payload models.CreateBidPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid request body")
		return
	}

	newBid, err := h.Service.CreateBid(r.Context(), callerID, payload)
	if err != nil {
		respondError(w, h.Logger, err, "failed to create bid")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusCreated, newBid)
}

// UpdateBid обрабатывает изменение суммы и сообщения предложения.
func (h *BidHandler) UpdateBid(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	bidID, err := utils.ParseID(chi.URLParam(r, "bidId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	var payload models.UpdateBidPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateBid(r.Context(), bidID, callerID, payload)
	if err != nil {
		respondError(w, h.Logger, err, "failed to update bid")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, updated)
}

// CancelBid обрабатывает отзыв предложения гидом.
func (h *BidHandler) CancelBid(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	bidID, err := utils.ParseID(chi.URLParam(r, "bidId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	if err := h.Service.CancelBid(r.Context(), bidID, callerID); err != nil {
		respondError(w, h.Logger, err, "failed to cancel bid")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, map[string]bool{"success": true})
}

// ListRequestBids обрабатывает список предложений по заявке.
func (h *BidHandler) ListRequestBids(w http.ResponseWriter, r *http.Request) {
	requestID, err := utils.ParseID(chi.URLParam(r, "requestId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	bids, err := h.Service.ListBidsForRequest(r.Context(), requestID, limit, offset)
	if err != nil {
		respondError(w, h.Logger, err, "failed to list bids")
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, bids)
}

// ListBidderBids обрабатывает личный реестр предложений гида.
func (h *BidHandler) ListBidderBids(w http.ResponseWriter, r *http.Request) {
	bidderID, err := utils.ParseID(chi.URLParam(r, "bidderId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	bids, err := h.Service.ListBidsForBidder(r.Context(), bidderID, limit, offset)
	if err != nil {
		respondError(w, h.Logger, err, "failed to list bids")
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, bids)
}

// AcceptBid обрабатывает принятие предложения владельцем заявки.
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	bidID, err := utils.ParseID(chi.URLParam(r, "bidId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	assignment, err := h.Acceptance.AcceptBid(r.Context(), bidID, callerID)
	if err != nil {
		respondError(w, h.Logger, err, "failed to accept bid")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusCreated, assignment)
}
