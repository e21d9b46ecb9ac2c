package memory

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"mcq-quiz-service/internal/domain"
)

// BankLoader fetches the question bank from a backing source (CSV file, SQL table).
type BankLoader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// BankRepository caches the loaded bank for the life of the process. The bank
// is loaded at most once; callers needing fresher data restart the process.
type BankRepository struct {
	loader BankLoader
	sf     singleflight.Group

	mu        sync.RWMutex
	loaded    bool
	questions []domain.Question
}

func NewBankRepository(loader BankLoader) *BankRepository {
	return &BankRepository{loader: loader}
}

// Questions returns the cached bank, loading it on first access. Concurrent
// first callers share a single loader execution. The returned slice is shared
// and must be treated as read-only.
func (r *BankRepository) Questions(ctx context.Context) ([]domain.Question, error) {
	r.mu.RLock()
	if r.loaded {
		questions := r.questions
		r.mu.RUnlock()
		return questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("bank", func() (interface{}, error) {
		r.mu.RLock()
		if r.loaded {
			questions := r.questions
			r.mu.RUnlock()
			return questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadBank(ctx)
		if err != nil {
			// Failed loads are not cached; the next call retries.
			return nil, err
		}

		r.mu.Lock()
		r.questions = questions
		r.loaded = true
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// StaticBankLoader is a simple loader backed by an in-memory slice (useful for tests/demos).
type StaticBankLoader struct {
	questions []domain.Question
}

func NewStaticBankLoader(questions []domain.Question) *StaticBankLoader {
	return &StaticBankLoader{questions: questions}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	return l.questions, nil
}
