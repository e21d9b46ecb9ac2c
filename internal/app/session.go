package app

import (
	"sync"
	"time"

	"mcq-quiz-service/internal/domain"
)

// Session is one quiz run: a fixed question sequence plus the attempts made
// against it. All mutation goes through the session's own mutex, so racing
// submissions against the same session append in strict request order.
//
// The current question is always the one at index len(attempts); there is no
// separate cursor.
type Session struct {
	id         string
	topic      string
	difficulty string
	now        func() time.Time

	mu        sync.Mutex
	questions []domain.Question
	attempts  []domain.QuestionAttempt
	startTime time.Time
	endTime   time.Time
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, topic, difficulty string, questions []domain.Question) *Session {
	return newSessionWithClock(id, topic, difficulty, questions, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, topic, difficulty string, questions []domain.Question, now func() time.Time) *Session {
	return newSessionWithClock(id, topic, difficulty, questions, now)
}

func newSessionWithClock(id, topic, difficulty string, questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		id:         id,
		topic:      topic,
		difficulty: difficulty,
		now:        now,
		questions:  questions,
		startTime:  now(),
	}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Topic() string      { return s.topic }
func (s *Session) Difficulty() string { return s.difficulty }

// Questions returns a copy of the session's question sequence.
func (s *Session) Questions() []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Attempts returns a copy of the attempts recorded so far.
func (s *Session) Attempts() []domain.QuestionAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QuestionAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

func (s *Session) nextQuestion() *domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// currentLocked returns the question awaiting an answer, or nil when every
// question has been answered.
func (s *Session) currentLocked() *domain.Question {
	if len(s.attempts) >= len(s.questions) {
		return nil
	}
	q := s.questions[len(s.attempts)]
	return &q
}

func (s *Session) recordAnswer(questionID, chosenOption string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.currentLocked()
	if current == nil {
		// Exhausted session: a no-op, not an error.
		return domain.AnswerResult{Correct: false, Next: nil, Finished: true}, nil
	}
	if questionID != current.ID {
		return domain.AnswerResult{}, domain.ErrQuestionMismatch
	}

	correct := chosenOption == current.CorrectOption
	s.attempts = append(s.attempts, domain.QuestionAttempt{
		Question:     *current,
		ChosenOption: chosenOption,
		IsCorrect:    correct,
	})

	next := s.currentLocked()
	finished := next == nil
	if finished && s.endTime.IsZero() {
		s.endTime = s.now()
	}
	return domain.AnswerResult{Correct: correct, Next: next, Finished: finished}, nil
}

func (s *Session) summarize() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Backfill missing timestamps so an in-progress session can be summarized;
	// once set they are never overwritten, keeping repeated summaries stable.
	if s.startTime.IsZero() {
		s.startTime = s.now()
	}
	if s.endTime.IsZero() {
		s.endTime = s.now()
	}

	total := len(s.attempts)
	correct := 0
	var incorrect []domain.IncorrectQuestion
	for _, attempt := range s.attempts {
		if attempt.IsCorrect {
			correct++
			continue
		}
		incorrect = append(incorrect, domain.IncorrectQuestion{
			Question:      attempt.Question,
			ChosenOption:  attempt.ChosenOption,
			CorrectOption: attempt.Question.CorrectOption,
		})
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100.0
	}

	return domain.Summary{
		SessionID:          s.id,
		Topic:              s.topic,
		Difficulty:         domain.Difficulty(s.difficulty),
		TotalQuestions:     total,
		CorrectCount:       correct,
		IncorrectCount:     total - correct,
		ScorePercentage:    percentage,
		DurationSeconds:    s.endTime.Sub(s.startTime).Seconds(),
		IncorrectQuestions: incorrect,
	}
}
