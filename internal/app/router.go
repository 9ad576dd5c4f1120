package app

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/internal/app/handlers/http/answer_handler"
	"github.com/formlab/questionnaire/internal/app/handlers/http/health_handler"
	"github.com/formlab/questionnaire/internal/app/handlers/http/question_handler"
	answersService "github.com/formlab/questionnaire/internal/domain/answers/service"
	questionsService "github.com/formlab/questionnaire/internal/domain/questions/service"
	"github.com/formlab/questionnaire/middleware"
)

// NewRouter собирает таблицу маршрутов API поверх стандартного ServeMux
func NewRouter(
	answerService *answersService.AnswerService,
	questionService *questionsService.QuestionService,
	logger zerolog.Logger,
) http.Handler {
	mx := http.NewServeMux()

	mx.Handle("GET /health", health_handler.NewHealthHandler())

	ah := answer_handler.NewAnswerHandler(answerService, logger)
	mx.HandleFunc("GET /api/answers", ah.GetAll)
	mx.HandleFunc("POST /api/answers", ah.Create)
	mx.HandleFunc("GET /api/answers/{id}", ah.GetByID)
	mx.HandleFunc("PUT /api/answers/{id}", ah.Update)
	mx.HandleFunc("DELETE /api/answers/{id}", ah.Delete)

	qh := question_handler.NewQuestionHandler(questionService, logger)
	mx.HandleFunc("GET /api/questions", qh.GetAll)
	mx.HandleFunc("POST /api/questions", qh.Create)
	mx.HandleFunc("GET /api/questions/{id}", qh.GetByID)
	mx.HandleFunc("PUT /api/questions/{id}", qh.Update)
	mx.HandleFunc("DELETE /api/questions/{id}", qh.Delete)
	mx.HandleFunc("POST /api/questions/{id}/answers", qh.AssociateAnswers)

	return middleware.Recover(logger)(middleware.Logger(logger)(mx))
}
