package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	httpresp "github.com/formlab/questionnaire/pkg/http"
)

// Recover возвращает middleware, которое перехватывает панику в обработчике,
// логирует ее и отвечает клиенту обезличенным 500 в общем конверте
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("recovered from panic")
					httpresp.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
