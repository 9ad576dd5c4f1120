// Package http содержит помощники для единого конверта ответа API:
// {success, data?, message?, errors?}. Это единственное место, где доменные
// ошибки превращаются в статус-коды; остальные слои только сигнализируют
// об ошибке и никогда не пишут ответ сами.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/internal/domain/apperr"
)

// envelope единый формат тела ответа
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// writeJSON сериализует конверт и пишет его с заданным статусом
func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Respond отправляет успешный ответ с данными
func Respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// Message отправляет успешный ответ с текстовым сообщением
func Message(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// ErrorResponse отправляет ответ об ошибке с текстовым сообщением
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// MapError сопоставляет доменную ошибку со статус-кодом и пишет конверт.
// Неопознанные ошибки логируются на сервере и уходят клиенту как
// обезличенный 500.
func MapError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Message: "Validation error",
			Errors:  ve.Fields,
		})
		return
	}
	if re, ok := apperr.AsReference(err); ok {
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Message: re.Error(),
			Errors: map[string][]string{
				"missing":  re.MissingIDs,
				"inactive": re.InactiveIDs,
			},
		})
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.ErrDuplicateOrder):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrQuestionLocked):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("unexpected error")
		ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
