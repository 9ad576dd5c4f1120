package answer_handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/internal/domain/answers/service"
	"github.com/formlab/questionnaire/internal/domain/validate"
	httpresp "github.com/formlab/questionnaire/pkg/http"
)

// AnswerHandler обработчик HTTP-запросов к коллекции ответов
type AnswerHandler struct {
	service *service.AnswerService
	logger  zerolog.Logger
}

// NewAnswerHandler создает новый экземпляр обработчика
func NewAnswerHandler(service *service.AnswerService, logger zerolog.Logger) *AnswerHandler {
	return &AnswerHandler{service: service, logger: logger}
}

// GetAll обрабатывает GET /api/answers
func (h *AnswerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	answers, err := h.service.GetAll(r.Context())
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, answers)
}

// GetByID обрабатывает GET /api/answers/{id}
func (h *AnswerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	answer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, answer)
}

// Create обрабатывает POST /api/answers
func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateAnswerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpresp.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.service.Create(r.Context(), &in)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusCreated, answer)
}

// Update обрабатывает PUT /api/answers/{id}
func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	var in validate.UpdateAnswerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpresp.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, answer)
}

// Delete обрабатывает DELETE /api/answers/{id}
func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Message(w, http.StatusOK, "Answer deleted successfully")
}
