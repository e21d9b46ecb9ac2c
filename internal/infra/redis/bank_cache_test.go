package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mcq-quiz-service/internal/domain"
	"mcq-quiz-service/internal/infra/memory"
)

func TestBankCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	cache := NewBankCache(client, loader, time.Minute)

	questions, err := cache.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectOption != "4" {
		t.Fatalf("unexpected bank: %+v", questions)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit the redis blob, loader not incremented.
	if _, err := cache.Questions(context.Background()); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if !mr.Exists("quizbank:questions") {
		t.Fatalf("expected bank key in redis")
	}
}

func TestBankCacheReloadsAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(sampleBank())}
	cache := NewBankCache(client, loader, time.Minute)

	if _, err := cache.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Questions(context.Background()); err != nil {
		t.Fatalf("questions after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, got %d calls", loader.calls)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{
			ID: "q1", Topic: "math", Difficulty: domain.DifficultyEasy,
			Text:    "What is 2 + 2?",
			Options: []string{"3", "4", "5", "6"}, CorrectOption: "4",
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
