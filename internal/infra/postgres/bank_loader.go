package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mcq-quiz-service/internal/bank"
	"mcq-quiz-service/internal/domain"
)

var questionColumns = []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option"}

// BankLoader reads the questions table from Postgres. Rows go through the same
// schema normalization as the CSV path, so validation behaves identically.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, topic, difficulty, text, option_a, option_b, option_c, option_d, correct_option FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	defer rows.Close()

	var records []bank.Record
	index := 0
	for rows.Next() {
		values := make([]string, len(questionColumns))
		dests := make([]interface{}, len(questionColumns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}

		index++
		fields := make(map[string]string, len(questionColumns))
		for i, col := range questionColumns {
			fields[col] = values[i]
		}
		records = append(records, bank.Record{Index: index, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read question rows: %w", err)
	}

	return bank.Normalize(questionColumns, records)
}
