// Package bank normalizes tabular question sources into domain questions.
//
// Two source shapes are supported, detected by field-set matching. The
// canonical shape labels the correct answer A-D; the alternate shape repeats
// the correct option's literal text in an answer column.
package bank

import (
	"strconv"
	"strings"

	"mcq-quiz-service/internal/domain"
)

// Record is one row of a tabular source, keyed by column name.
type Record struct {
	Index  int // 1-based position within the source
	Fields map[string]string
}

type schema struct {
	name     string
	required []string
	parse    func(Record) (domain.Question, error)
}

// Checked in order; the first schema whose required set is covered wins.
var schemas = []schema{
	{
		name:     "canonical",
		required: []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option"},
		parse:    parseCanonical,
	},
	{
		name:     "answer-text",
		required: []string{"topic", "difficulty", "question", "option_1", "option_2", "option_3", "option_4", "answer"},
		parse:    parseAnswerText,
	},
}

// Normalize converts source rows into questions, failing on the first invalid
// row. The column list decides which schema applies to every row.
func Normalize(columns []string, records []Record) ([]domain.Question, error) {
	sch, ok := detect(columns)
	if !ok {
		return nil, &domain.SchemaError{Columns: columns}
	}

	questions := make([]domain.Question, 0, len(records))
	for _, rec := range records {
		q, err := sch.parse(rec)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func detect(columns []string) (schema, bool) {
	available := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		available[strings.TrimSpace(c)] = struct{}{}
	}
	for _, sch := range schemas {
		if covers(available, sch.required) {
			return sch, true
		}
	}
	return schema{}, false
}

func covers(available map[string]struct{}, required []string) bool {
	for _, field := range required {
		if _, ok := available[field]; !ok {
			return false
		}
	}
	return true
}

func parseCanonical(rec Record) (domain.Question, error) {
	id := rec.Fields["id"]

	difficulty, ok := domain.ParseDifficulty(rec.Fields["difficulty"])
	if !ok {
		return domain.Question{}, &domain.RowError{RowID: id, Field: "difficulty", Value: rec.Fields["difficulty"]}
	}

	options := []string{
		rec.Fields["option_a"],
		rec.Fields["option_b"],
		rec.Fields["option_c"],
		rec.Fields["option_d"],
	}

	marker := strings.ToUpper(strings.TrimSpace(rec.Fields["correct_option"]))
	idx := strings.Index("ABCD", marker)
	if len(marker) != 1 || idx < 0 {
		return domain.Question{}, &domain.RowError{RowID: id, Field: "correct_option", Value: rec.Fields["correct_option"]}
	}

	return domain.Question{
		ID:            id,
		Topic:         rec.Fields["topic"],
		Difficulty:    difficulty,
		Text:          rec.Fields["text"],
		Options:       options,
		CorrectOption: options[idx],
	}, nil
}

func parseAnswerText(rec Record) (domain.Question, error) {
	// No id column in this shape; the row position identifies the question.
	id := strconv.Itoa(rec.Index)

	difficulty, ok := domain.ParseDifficulty(rec.Fields["difficulty"])
	if !ok {
		return domain.Question{}, &domain.RowError{RowID: id, Field: "difficulty", Value: rec.Fields["difficulty"]}
	}

	options := []string{
		rec.Fields["option_1"],
		rec.Fields["option_2"],
		rec.Fields["option_3"],
		rec.Fields["option_4"],
	}

	answer := rec.Fields["answer"]
	found := false
	for _, opt := range options {
		if opt == answer {
			found = true
			break
		}
	}
	if !found {
		return domain.Question{}, &domain.RowError{RowID: id, Field: "answer", Value: answer}
	}

	return domain.Question{
		ID:            id,
		Topic:         rec.Fields["topic"],
		Difficulty:    difficulty,
		Text:          rec.Fields["question"],
		Options:       options,
		CorrectOption: answer,
	}, nil
}
