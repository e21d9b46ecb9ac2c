package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mcq-quiz-service/internal/app"
	"mcq-quiz-service/internal/domain"
)

// Handler exposes the five core quiz operations as a JSON API.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// Register mounts the API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/topics", h.topics)
	mux.HandleFunc("GET /api/difficulties", h.difficulties)
	mux.HandleFunc("POST /api/quiz/start", h.start)
	mux.HandleFunc("POST /api/quiz/{id}/answer", h.answer)
	mux.HandleFunc("GET /api/quiz/{id}/summary", h.summary)
}

// questionView is the client-facing question shape; the correct option never
// leaves the server while a question is still answerable.
type questionView struct {
	ID         string   `json:"id"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
}

func newQuestionView(q *domain.Question) *questionView {
	if q == nil {
		return nil
	}
	return &questionView{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: string(q.Difficulty),
		Text:       q.Text,
		Options:    q.Options,
	}
}

type startRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Length     int    `json:"length"`
}

type startResponse struct {
	SessionID      string        `json:"sessionId"`
	TotalQuestions int           `json:"totalQuestions"`
	Question       *questionView `json:"question"`
}

type answerRequest struct {
	QuestionID   string `json:"questionId"`
	ChosenOption string `json:"chosenOption"`
}

type answerResponse struct {
	Correct  bool          `json:"correct"`
	Next     *questionView `json:"next"`
	Finished bool          `json:"finished"`
}

func (h *Handler) topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.Topics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *Handler) difficulties(w http.ResponseWriter, r *http.Request) {
	difficulties, err := h.service.Difficulties(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, difficulties)
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Topic == "" || req.Difficulty == "" {
		http.Error(w, "missing topic or difficulty", http.StatusBadRequest)
		return
	}

	session, err := h.service.StartSession(r.Context(), req.Topic, req.Difficulty, req.Length)
	if err != nil {
		writeError(w, err)
		return
	}
	first, err := h.service.NextQuestion(session.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, startResponse{
		SessionID:      session.ID(),
		TotalQuestions: len(session.Questions()),
		Question:       newQuestionView(first),
	})
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.RecordAnswer(r.PathValue("id"), req.QuestionID, req.ChosenOption)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Correct:  result.Correct,
		Next:     newQuestionView(result.Next),
		Finished: result.Finished,
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError maps core failures onto HTTP statuses: unknown session is
// not-found, selection and load problems are bad requests.
func writeError(w http.ResponseWriter, err error) {
	var schemaErr *domain.SchemaError
	var rowErr *domain.RowError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNoQuestionsAvailable),
		errors.Is(err, domain.ErrQuestionMismatch),
		errors.As(err, &schemaErr),
		errors.As(err, &rowErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
