package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/services"
	"github.com/senyabanana/trek-market/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RequestHandler - структура для обработки HTTP-запросов по заявкам.
type RequestHandler struct {
	Service *services.RequestService
	Logger  zerolog.Logger
}

// NewRequestHandler создает новый экземпляр RequestHandler.
func NewRequestHandler(service *services.RequestService, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{Service: service, Logger: logger}
}

// CreateRequest обрабатывает запросы для создания заявки.
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	var payload models.CreateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid request body")
		return
	}

	newRequest, err := h.Service.CreateRequest(r.Context(), callerID, payload)
	if err != nil {
		respondError(w, h.Logger, err, "failed to create request")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusCreated, newRequest)
}

// UpdateRequest обрабатывает частичное обновление заявки владельцем.
func (h *RequestHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	requestID, err := utils.ParseID(chi.URLParam(r, "requestId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	var payload models.UpdateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateRequest(r.Context(), requestID, callerID, payload)
	if err != nil {
		respondError(w, h.Logger, err, "failed to update request")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, updated)
}

// DeleteRequest обрабатывает удаление заявки владельцем.
func (h *RequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	requestID, err := utils.ParseID(chi.URLParam(r, "requestId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteRequest(r.Context(), requestID, callerID); err != nil {
		respondError(w, h.Logger, err, "failed to delete request")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, map[string]bool{"success": true})
}

// GetRequest обрабатывает получение заявки с карточкой владельца.
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := utils.ParseID(chi.URLParam(r, "requestId"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	req, err := h.Service.GetRequest(r.Context(), requestID)
	if err != nil {
		respondError(w, h.Logger, err, "failed to fetch request")
		return
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, req)
}

// ListOpenRequests обрабатывает витрину открытых заявок с фильтрами.
func (h *RequestHandler) ListOpenRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if status := query.Get("status"); status != "" && status != string(models.OpenRequest) {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "only open requests are listed")
		return
	}

	limit, offset, err := utils.ParseLimitOffset(query.Get("limit"), query.Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	filter := models.RequestFilter{
		Locations: query["location"],
		SortBy:    query.Get("sort"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := query.Get("min_budget"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid min_budget parameter")
			return
		}
		filter.MinBudget = &min
	}
	if raw := query.Get("max_budget"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, "invalid max_budget parameter")
			return
		}
		filter.MaxBudget = &max
	}

	requests, err := h.Service.ListOpenRequests(r.Context(), filter)
	if err != nil {
		respondError(w, h.Logger, err, "failed to list requests")
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, requests)
}

// ListMyRequests обрабатывает личный список заявок вызывающего.
func (h *RequestHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	requests, err := h.Service.ListMyRequests(r.Context(), callerID, limit, offset)
	if err != nil {
		respondError(w, h.Logger, err, "failed to list requests")
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, requests)
}
