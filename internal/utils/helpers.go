package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/senyabanana/trek-market/internal/models"

	"github.com/rs/zerolog"
)

const (
	defaultLimit = 20
	maxLimit     = 50
)

// SendErrorResponse отправляет ошибку в формате JSON.
func SendErrorResponse(w http.ResponseWriter, logger zerolog.Logger, statusCode int, code models.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResp := models.Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(&errResp); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
	}
}

// SendJSON отправляет успешный ответ в формате JSON.
func SendJSON(w http.ResponseWriter, logger zerolog.Logger, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// ParseLimitOffset обрабатывает limit и offset.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > maxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:%d]", maxLimit)
		}
	} else {
		limit = defaultLimit
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ParseID обрабатывает числовой идентификатор из пути.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter: %q", raw)
	}
	return id, nil
}
