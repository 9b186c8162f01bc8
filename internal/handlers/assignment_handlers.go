package handlers

import (
	"net/http"

	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/services"
	"github.com/senyabanana/trek-market/internal/utils"

	"github.com/rs/zerolog"
)

// AssignmentHandler - структура для обработки HTTP-запросов по походам.
type AssignmentHandler struct {
	Service *services.AssignmentService
	Logger  zerolog.Logger
}

// NewAssignmentHandler создает новый экземпляр AssignmentHandler.
func NewAssignmentHandler(service *services.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{Service: service, Logger: logger}
}

// ListMyAssignments обрабатывает личный список походов вызывающего.
func (h *AssignmentHandler) ListMyAssignments(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.Logger)
	if !ok {
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, models.CodeBadRequest, err.Error())
		return
	}

	assignments, err := h.Service.ListMyAssignments(r.Context(), callerID, limit, offset)
	if err != nil {
		respondError(w, h.Logger, err, "failed to list assignments")
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, assignments)
}
