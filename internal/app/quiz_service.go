package app

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mcq-quiz-service/internal/domain"
)

// DefaultQuizLength is the number of questions per session when the caller
// does not ask for a specific length.
const DefaultQuizLength = 5

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// BankRepository serves the loaded question bank (from cache/backing store).
type BankRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	sessions SessionRepository
	bank     BankRepository
	length   int
	now      func() time.Time
	newID    func() string

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizService(store SessionRepository, bank BankRepository) *QuizService {
	return NewQuizServiceWithClock(store, bank, time.Now)
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(store SessionRepository, bank BankRepository, now func() time.Time) *QuizService {
	return &QuizService{
		sessions: store,
		bank:     bank,
		length:   DefaultQuizLength,
		now:      now,
		newID:    uuid.NewString,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetDefaultLength overrides the per-session question count used when
// StartSession is called with a non-positive length.
func (s *QuizService) SetDefaultLength(n int) {
	if n > 0 {
		s.length = n
	}
}

// Topics lists the distinct topics present in the bank, sorted.
func (s *QuizService) Topics(ctx context.Context) ([]string, error) {
	questions, err := s.bank.Questions(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var topics []string
	for _, q := range questions {
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	sort.Strings(topics)
	return topics, nil
}

// Difficulties lists the distinct difficulties present in the bank, in
// easy, medium, hard order.
func (s *QuizService) Difficulties(ctx context.Context) ([]string, error) {
	questions, err := s.bank.Questions(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[domain.Difficulty]struct{})
	for _, q := range questions {
		present[q.Difficulty] = struct{}{}
	}
	var difficulties []string
	for _, d := range domain.Difficulties() {
		if _, ok := present[d]; ok {
			difficulties = append(difficulties, string(d))
		}
	}
	return difficulties, nil
}

// StartSession filters the bank to exact (topic, difficulty) matches, samples
// down to length when the pool is larger, and stores the new session.
// A non-positive length means the configured default.
func (s *QuizService) StartSession(ctx context.Context, topic, difficulty string, length int) (*Session, error) {
	if length <= 0 {
		length = s.length
	}

	questions, err := s.bank.Questions(ctx)
	if err != nil {
		return nil, err
	}

	var pool []domain.Question
	for _, q := range questions {
		if q.Topic == topic && string(q.Difficulty) == difficulty {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}
	if len(pool) > length {
		pool = s.sample(pool, length)
	}

	session := newSessionWithClock(s.newID(), topic, difficulty, pool, s.now)
	s.sessions.Put(session)
	return session, nil
}

// NextQuestion returns the question awaiting an answer, or nil when the
// session has answered everything.
func (s *QuizService) NextQuestion(sessionID string) (*domain.Question, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.nextQuestion(), nil
}

// RecordAnswer scores chosenOption against the current question and appends
// the attempt. The submitted questionID must identify the current question.
// On an already-finished session it reports finished without mutating state.
func (s *QuizService) RecordAnswer(sessionID, questionID, chosenOption string) (domain.AnswerResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	return session.recordAnswer(questionID, chosenOption)
}

// Summarize computes the aggregate report for a session, backfilling missing
// timestamps so in-progress sessions report elapsed duration.
func (s *QuizService) Summarize(sessionID string) (domain.Summary, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Summary{}, domain.ErrSessionNotFound
	}
	return session.summarize(), nil
}

// sample picks length questions uniformly without replacement. Sessions are
// deliberately not reproducible, so no fixed seed.
func (s *QuizService) sample(pool []domain.Question, length int) []domain.Question {
	s.rndMu.Lock()
	perm := s.rnd.Perm(len(pool))
	s.rndMu.Unlock()

	picked := make([]domain.Question, 0, length)
	for _, idx := range perm[:length] {
		picked = append(picked, pool[idx])
	}
	return picked
}
