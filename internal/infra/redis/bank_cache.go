package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mcq-quiz-service/internal/domain"
)

const bankKey = "quizbank:questions"

// BankLoader fetches the question bank from a backing source (CSV file, SQL table).
type BankLoader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// BankCache keeps the normalized bank in Redis as one JSON blob and falls back
// to the loader on cache miss. The bank loads all-or-nothing, so a single key
// is enough; sharing it across instances keeps their availability listings
// consistent.
type BankCache struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankCache(client *redis.Client, loader BankLoader, ttl time.Duration) *BankCache {
	return &BankCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *BankCache) Questions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := c.cached(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(bankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal question bank: %w", err)
		}
		// Best-effort: a failed write only costs a reload next time.
		_ = c.client.Set(ctx, bankKey, data, c.ttlWithJitter()).Err()

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *BankCache) cached(ctx context.Context) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, bankKey).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *BankCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
