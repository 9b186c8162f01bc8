package handlers

import (
	"errors"
	"net/http"

	"github.com/senyabanana/trek-market/internal/middleware"
	"github.com/senyabanana/trek-market/internal/models"
	"github.com/senyabanana/trek-market/internal/utils"

	"github.com/rs/zerolog"
)

// respondError переводит ошибку сервиса в HTTP-ответ. Доменные ошибки уходят
// с их кодом и сообщением, всё остальное прячется за fallback.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error, fallback string) {
	var modelErr *models.Error
	if errors.As(err, &modelErr) {
		logger.Warn().Err(err).Msg(fallback)
		utils.SendErrorResponse(w, logger, modelErr.StatusCode, modelErr.Code, modelErr.Message)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	utils.SendErrorResponse(w, logger, http.StatusInternalServerError, models.CodeInternal, fallback)
}

// requireCaller возвращает идентификатор вызывающего или отвечает 401.
func requireCaller(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		utils.SendErrorResponse(w, logger, http.StatusUnauthorized, models.CodeUnauthorized, "missing caller identity")
		return 0, false
	}
	return callerID, true
}
