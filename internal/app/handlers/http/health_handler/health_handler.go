package health_handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler обработчик проверки живости сервиса
type HealthHandler struct{}

// NewHealthHandler создает новый экземпляр обработчика
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP обрабатывает GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
