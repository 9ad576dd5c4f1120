package question_handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/internal/domain/questions/service"
	"github.com/formlab/questionnaire/internal/domain/validate"
	httpresp "github.com/formlab/questionnaire/pkg/http"
)

// QuestionHandler обработчик HTTP-запросов к коллекции вопросов
type QuestionHandler struct {
	service *service.QuestionService
	logger  zerolog.Logger
}

// NewQuestionHandler создает новый экземпляр обработчика
func NewQuestionHandler(service *service.QuestionService, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{service: service, logger: logger}
}

// GetAll обрабатывает GET /api/questions с необязательным фильтром ?active=
func (h *QuestionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var activeFilter *bool
	switch r.URL.Query().Get("active") {
	case "true":
		v := true
		activeFilter = &v
	case "false":
		v := false
		activeFilter = &v
	}

	questions, err := h.service.GetAll(r.Context(), activeFilter)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, questions)
}

// GetByID обрабатывает GET /api/questions/{id}
func (h *QuestionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	question, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, question)
}

// Create обрабатывает POST /api/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpresp.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.service.Create(r.Context(), &in)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusCreated, question)
}

// Update обрабатывает PUT /api/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	var in validate.UpdateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpresp.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.service.Update(r.Context(), id, &in)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, question)
}

// AssociateAnswers обрабатывает POST /api/questions/{id}/answers
func (h *QuestionHandler) AssociateAnswers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	var in validate.AssociateAnswersInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpresp.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.service.AssociateAnswers(r.Context(), id, &in)
	if err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Respond(w, http.StatusOK, question)
}

// Delete обрабатывает DELETE /api/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validate.CheckID(id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpresp.MapError(w, h.logger, err)
		return
	}
	httpresp.Message(w, http.StatusOK, "Question deleted successfully")
}
