package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"mcq-quiz-service/internal/app"
)

// WSHandler plays one quiz session interactively over a websocket: the server
// pushes questions, the client answers, and a summary closes the exchange.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID   string `json:"questionId"`
	ChosenOption string `json:"chosenOption"`
}

type answerResultPayload struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Finished   bool   `json:"finished"`
}

type sessionPayload struct {
	SessionID      string `json:"sessionId"`
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	TotalQuestions int    `json:"totalQuestions"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	difficulty := r.URL.Query().Get("difficulty")
	if topic == "" || difficulty == "" {
		http.Error(w, "missing topic or difficulty", http.StatusBadRequest)
		return
	}
	length, _ := strconv.Atoi(r.URL.Query().Get("length"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.StartSession(r.Context(), topic, difficulty, length)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{
		SessionID:      session.ID(),
		Topic:          session.Topic(),
		Difficulty:     session.Difficulty(),
		TotalQuestions: len(session.Questions()),
	}}
	if first, err := h.service.NextQuestion(session.ID()); err == nil && first != nil {
		send <- outboundMessage[any]{Type: "question", Payload: newQuestionView(first)}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			result, err := h.service.RecordAnswer(session.ID(), payload.QuestionID, payload.ChosenOption)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: answerResultPayload{
				QuestionID: payload.QuestionID,
				Correct:    result.Correct,
				Finished:   result.Finished,
			}}
			if result.Next != nil {
				send <- outboundMessage[any]{Type: "question", Payload: newQuestionView(result.Next)}
			}
			if result.Finished {
				summary, err := h.service.Summarize(session.ID())
				if err != nil {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
					continue
				}
				send <- outboundMessage[any]{Type: "summary", Payload: summary}
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}
