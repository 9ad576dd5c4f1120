package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/database/jsonfile"
	answersService "github.com/formlab/questionnaire/internal/domain/answers/service"
	"github.com/formlab/questionnaire/internal/domain/integrity"
	"github.com/formlab/questionnaire/internal/domain/model"
	questionsService "github.com/formlab/questionnaire/internal/domain/questions/service"
)

// newTestServer собирает полный стек приложения поверх файлового хранилища
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("не удалось открыть хранилище: %v", err)
	}
	stores := db.Stores()
	engine := integrity.NewEngine(stores.Answers, stores.Questions)
	router := NewRouter(
		answersService.NewAnswerService(stores.Answers, engine),
		questionsService.NewQuestionService(stores.Questions, engine),
		zerolog.Nop(),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// apiResponse конверт ответа API в тестах
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// doRequest выполняет запрос и разбирает конверт ответа
func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("не удалось сериализовать тело: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("не удалось создать запрос: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("запрос завершился ошибкой: %v", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("не удалось разобрать конверт ответа: %v", err)
	}
	return resp.StatusCode, out
}

// createAnswer создает ответ через API и возвращает его
func createAnswer(t *testing.T, srv *httptest.Server, body map[string]any) model.Answer {
	t.Helper()
	status, resp := doRequest(t, srv, http.MethodPost, "/api/answers", body)
	if status != http.StatusCreated {
		t.Fatalf("создание ответа: статус %d, %+v", status, resp)
	}
	var a model.Answer
	if err := json.Unmarshal(resp.Data, &a); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	return a
}

// createQuestion создает вопрос через API и возвращает его
func createQuestion(t *testing.T, srv *httptest.Server, body map[string]any) model.Question {
	t.Helper()
	status, resp := doRequest(t, srv, http.MethodPost, "/api/questions", body)
	if status != http.StatusCreated {
		t.Fatalf("создание вопроса: статус %d, %+v", status, resp)
	}
	var q model.Question
	if err := json.Unmarshal(resp.Data, &q); err != nil {
		t.Fatalf("не удалось разобрать вопрос: %v", err)
	}
	return q
}

// TestHealth проверяет эндпоинт живости
func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("запрос завершился ошибкой: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("статус %d", resp.StatusCode)
	}
	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if body.Status != "ok" || body.Timestamp == "" {
		t.Errorf("неожиданное тело: %+v", body)
	}
}

// TestAnswerLifecycle проверяет CRUD ответов через HTTP
func TestAnswerLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createAnswer(t, srv, map[string]any{"description": "Да", "order": 1})
	if created.ID == "" || !created.Active {
		t.Fatalf("неожиданный созданный ответ: %+v", created)
	}

	status, resp := doRequest(t, srv, http.MethodGet, "/api/answers/"+created.ID, nil)
	if status != http.StatusOK || !resp.Success {
		t.Errorf("GET по ID: статус %d, %+v", status, resp)
	}

	status, resp = doRequest(t, srv, http.MethodPut, "/api/answers/"+created.ID, map[string]any{"description": "Нет"})
	if status != http.StatusOK {
		t.Fatalf("PUT: статус %d, %+v", status, resp)
	}
	var updated model.Answer
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if updated.Description != "Нет" || updated.Order != 1 {
		t.Errorf("частичное обновление применено неверно: %+v", updated)
	}

	status, resp = doRequest(t, srv, http.MethodDelete, "/api/answers/"+created.ID, nil)
	if status != http.StatusOK || resp.Message != "Answer deleted successfully" {
		t.Errorf("DELETE: статус %d, %+v", status, resp)
	}

	status, _ = doRequest(t, srv, http.MethodGet, "/api/answers/"+created.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("после удаления ожидался 404, получен %d", status)
	}
}

// TestAnswerValidationErrors проверяет конверт ошибки валидации
func TestAnswerValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	status, resp := doRequest(t, srv, http.MethodPost, "/api/answers", map[string]any{"description": "", "order": -1})
	if status != http.StatusBadRequest || resp.Success {
		t.Fatalf("статус %d, %+v", status, resp)
	}
	if resp.Message != "Validation error" {
		t.Errorf("message: %q", resp.Message)
	}
	var fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Errors, &fields); err != nil {
		t.Fatalf("не удалось разобрать errors: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("ожидалось 2 нарушения, получено %v", fields)
	}

	// ничего не записано
	status, resp = doRequest(t, srv, http.MethodGet, "/api/answers", nil)
	var all []model.Answer
	_ = json.Unmarshal(resp.Data, &all)
	if status != http.StatusOK || len(all) != 0 {
		t.Errorf("отклоненный ответ сохранен: %v", all)
	}
}

// TestAnswerDuplicateOrder проверяет 409 по занятому order
func TestAnswerDuplicateOrder(t *testing.T) {
	srv := newTestServer(t)

	createAnswer(t, srv, map[string]any{"description": "первый", "order": 2})
	status, resp := doRequest(t, srv, http.MethodPost, "/api/answers", map[string]any{"description": "второй", "order": 2})
	if status != http.StatusConflict || resp.Success {
		t.Errorf("ожидался 409, получено %d, %+v", status, resp)
	}
}

// TestMalformedRequests проверяет 400 на битом JSON и кривом ID пути
func TestMalformedRequests(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/answers", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("запрос завершился ошибкой: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("битый JSON: ожидался 400, получен %d", resp.StatusCode)
	}

	status, _ := doRequest(t, srv, http.MethodGet, "/api/answers/not-a-uuid", nil)
	if status != http.StatusBadRequest {
		t.Errorf("кривой ID: ожидался 400, получен %d", status)
	}
}

// TestQuestionLifecycle проверяет CRUD вопросов с привязками через HTTP
func TestQuestionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	answer := createAnswer(t, srv, map[string]any{"description": "Да"})
	question := createQuestion(t, srv, map[string]any{
		"description": "Ваш стаж?",
		"order":       1,
		"answerIds":   []string{answer.ID},
	})
	if len(question.AnswerIDs) != 1 || question.AnswerIDs[0] != answer.ID {
		t.Fatalf("набор ответов не сохранен: %+v", question)
	}

	status, resp := doRequest(t, srv, http.MethodDelete, "/api/questions/"+question.ID, nil)
	if status != http.StatusOK || resp.Message != "Question deleted successfully" {
		t.Errorf("DELETE: статус %d, %+v", status, resp)
	}

	// ответ пережил удаление вопроса
	status, _ = doRequest(t, srv, http.MethodGet, "/api/answers/"+answer.ID, nil)
	if status != http.StatusOK {
		t.Errorf("ответ пропал вместе с вопросом: %d", status)
	}
}

// TestQuestionBadRefs проверяет 400 с перечнем проблемных ID
func TestQuestionBadRefs(t *testing.T) {
	srv := newTestServer(t)

	inactive := createAnswer(t, srv, map[string]any{"description": "выключен", "active": false})
	missing := "99999999-9999-4999-8999-999999999999"

	status, resp := doRequest(t, srv, http.MethodPost, "/api/questions", map[string]any{
		"description": "Ваш стаж?",
		"answerIds":   []string{inactive.ID, missing},
	})
	if status != http.StatusBadRequest || resp.Success {
		t.Fatalf("статус %d, %+v", status, resp)
	}
	var details map[string][]string
	if err := json.Unmarshal(resp.Errors, &details); err != nil {
		t.Fatalf("не удалось разобрать errors: %v", err)
	}
	if len(details["missing"]) != 1 || details["missing"][0] != missing {
		t.Errorf("missing: %v", details["missing"])
	}
	if len(details["inactive"]) != 1 || details["inactive"][0] != inactive.ID {
		t.Errorf("inactive: %v", details["inactive"])
	}
}

// TestDeleteAnswerCascades проверяет сквозной сценарий: удаление ответа
// вычищает его из наборов вопросов
func TestDeleteAnswerCascades(t *testing.T) {
	srv := newTestServer(t)

	answer := createAnswer(t, srv, map[string]any{"description": "Да"})
	question := createQuestion(t, srv, map[string]any{
		"description": "Ваш стаж?",
		"order":       1,
		"answerIds":   []string{answer.ID},
	})

	status, _ := doRequest(t, srv, http.MethodDelete, "/api/answers/"+answer.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("DELETE ответа: статус %d", status)
	}

	status, resp := doRequest(t, srv, http.MethodGet, "/api/questions/"+question.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("GET вопроса: статус %d", status)
	}
	var got model.Question
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("не удалось разобрать вопрос: %v", err)
	}
	if got.AnswerIDs == nil || len(got.AnswerIDs) != 0 {
		t.Errorf("набор должен стать пустым списком, получено %v", got.AnswerIDs)
	}
}

// TestInactiveQuestionLocked проверяет блокировку и разблокировку вопроса по HTTP
func TestInactiveQuestionLocked(t *testing.T) {
	srv := newTestServer(t)

	question := createQuestion(t, srv, map[string]any{"description": "Ваш стаж?", "active": false})

	status, resp := doRequest(t, srv, http.MethodPut, "/api/questions/"+question.ID, map[string]any{"description": "новое"})
	if status != http.StatusBadRequest || resp.Success {
		t.Errorf("изменение неактивного: статус %d, %+v", status, resp)
	}

	status, _ = doRequest(t, srv, http.MethodPut, "/api/questions/"+question.ID, map[string]any{"active": true})
	if status != http.StatusOK {
		t.Errorf("активация: статус %d", status)
	}

	status, _ = doRequest(t, srv, http.MethodPut, "/api/questions/"+question.ID, map[string]any{"description": "новое"})
	if status != http.StatusOK {
		t.Errorf("изменение после активации: статус %d", status)
	}
}

// TestAssociateAnswersEndpoint проверяет POST /api/questions/{id}/answers
func TestAssociateAnswersEndpoint(t *testing.T) {
	srv := newTestServer(t)

	first := createAnswer(t, srv, map[string]any{"description": "один", "order": 0})
	second := createAnswer(t, srv, map[string]any{"description": "два", "order": 1})
	question := createQuestion(t, srv, map[string]any{
		"description": "Ваш стаж?",
		"answerIds":   []string{first.ID},
	})

	status, resp := doRequest(t, srv, http.MethodPost, "/api/questions/"+question.ID+"/answers", map[string]any{
		"answerIds": []string{first.ID, second.ID},
	})
	if status != http.StatusOK {
		t.Fatalf("статус %d, %+v", status, resp)
	}
	var got model.Question
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("не удалось разобрать вопрос: %v", err)
	}
	if len(got.AnswerIDs) != 2 {
		t.Errorf("ожидалось объединение без дубликатов, получено %v", got.AnswerIDs)
	}

	// пустой список отклоняется
	status, _ = doRequest(t, srv, http.MethodPost, "/api/questions/"+question.ID+"/answers", map[string]any{
		"answerIds": []string{},
	})
	if status != http.StatusBadRequest {
		t.Errorf("пустой список: ожидался 400, получен %d", status)
	}
}

// TestQuestionActiveFilter проверяет фильтр ?active= списка вопросов
func TestQuestionActiveFilter(t *testing.T) {
	srv := newTestServer(t)

	createQuestion(t, srv, map[string]any{"description": "активный", "order": 0})
	createQuestion(t, srv, map[string]any{"description": "неактивный", "order": 1, "active": false})

	status, resp := doRequest(t, srv, http.MethodGet, "/api/questions?active=true", nil)
	if status != http.StatusOK {
		t.Fatalf("статус %d", status)
	}
	var got []model.Question
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("не удалось разобрать список: %v", err)
	}
	if len(got) != 1 || got[0].Description != "активный" {
		t.Errorf("фильтр active=true: %v", got)
	}

	status, resp = doRequest(t, srv, http.MethodGet, "/api/questions", nil)
	_ = json.Unmarshal(resp.Data, &got)
	if status != http.StatusOK || len(got) != 2 {
		t.Errorf("без фильтра ожидалось 2 вопроса, получено %v", got)
	}
}

// TestNotFoundResponses проверяет 404 по несуществующим сущностям
func TestNotFoundResponses(t *testing.T) {
	srv := newTestServer(t)
	missing := "99999999-9999-4999-8999-999999999999"

	for _, path := range []string{"/api/answers/" + missing, "/api/questions/" + missing} {
		status, resp := doRequest(t, srv, http.MethodGet, path, nil)
		if status != http.StatusNotFound || resp.Success || resp.Message != "Not found" {
			t.Errorf("%s: статус %d, %+v", path, status, resp)
		}
	}

	status, _ := doRequest(t, srv, http.MethodDelete, "/api/questions/"+missing, nil)
	if status != http.StatusNotFound {
		t.Errorf("DELETE: ожидался 404, получен %d", status)
	}
}
