package bank

import (
	"errors"
	"testing"

	"mcq-quiz-service/internal/domain"
)

func TestNormalizeCanonicalSchema(t *testing.T) {
	columns := []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option"}
	records := []Record{
		{Index: 1, Fields: map[string]string{
			"id": "q1", "topic": "math", "difficulty": " Easy ", "text": "What is 2 + 2?",
			"option_a": "3", "option_b": "4", "option_c": "5", "option_d": "6",
			"correct_option": "b",
		}},
	}

	questions, err := Normalize(columns, records)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.ID != "q1" || q.Topic != "math" || q.Difficulty != domain.DifficultyEasy {
		t.Fatalf("unexpected question fields: %+v", q)
	}
	if q.CorrectOption != "4" {
		t.Fatalf("expected correct option %q from marker B, got %q", "4", q.CorrectOption)
	}
}

func TestNormalizeAnswerTextSchema(t *testing.T) {
	columns := []string{"topic", "difficulty", "question", "option_1", "option_2", "option_3", "option_4", "answer"}
	records := []Record{
		{Index: 1, Fields: map[string]string{
			"topic": "science", "difficulty": "medium", "question": "What gas do plants absorb?",
			"option_1": "Oxygen", "option_2": "Nitrogen", "option_3": "Carbon dioxide", "option_4": "Hydrogen",
			"answer": "Carbon dioxide",
		}},
	}

	questions, err := Normalize(columns, records)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	q := questions[0]
	if q.ID != "1" {
		t.Fatalf("expected row position as id, got %q", q.ID)
	}
	if q.CorrectOption != "Carbon dioxide" {
		t.Fatalf("expected literal answer text, got %q", q.CorrectOption)
	}
	found := false
	for _, opt := range q.Options {
		if opt == q.CorrectOption {
			found = true
		}
	}
	if !found {
		t.Fatalf("correct option %q not present in options %v", q.CorrectOption, q.Options)
	}
}

func TestNormalizeRejectsUnknownColumns(t *testing.T) {
	columns := []string{"name", "prompt", "solution"}

	_, err := Normalize(columns, nil)
	var schemaErr *domain.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if len(schemaErr.Columns) != 3 {
		t.Fatalf("expected offending columns in error, got %+v", schemaErr.Columns)
	}
}

func TestNormalizeRejectsInvalidDifficulty(t *testing.T) {
	columns := []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option"}
	records := []Record{
		{Index: 1, Fields: map[string]string{
			"id": "q9", "topic": "math", "difficulty": "impossible", "text": "?",
			"option_a": "1", "option_b": "2", "option_c": "3", "option_d": "4",
			"correct_option": "A",
		}},
	}

	_, err := Normalize(columns, records)
	var rowErr *domain.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected row error, got %v", err)
	}
	if rowErr.RowID != "q9" || rowErr.Field != "difficulty" {
		t.Fatalf("expected difficulty error for q9, got %+v", rowErr)
	}
}

func TestNormalizeRejectsInvalidMarker(t *testing.T) {
	columns := []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option"}
	records := []Record{
		{Index: 1, Fields: map[string]string{
			"id": "q2", "topic": "math", "difficulty": "easy", "text": "?",
			"option_a": "1", "option_b": "2", "option_c": "3", "option_d": "4",
			"correct_option": "E",
		}},
	}

	_, err := Normalize(columns, records)
	var rowErr *domain.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected row error, got %v", err)
	}
	if rowErr.RowID != "q2" || rowErr.Field != "correct_option" {
		t.Fatalf("expected marker error for q2, got %+v", rowErr)
	}
}

func TestNormalizeRejectsAnswerNotInOptions(t *testing.T) {
	columns := []string{"topic", "difficulty", "question", "option_1", "option_2", "option_3", "option_4", "answer"}
	records := []Record{
		{Index: 3, Fields: map[string]string{
			"topic": "math", "difficulty": "easy", "question": "?",
			"option_1": "1", "option_2": "2", "option_3": "3", "option_4": "4",
			"answer": "5",
		}},
	}

	_, err := Normalize(columns, records)
	var rowErr *domain.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected row error, got %v", err)
	}
	if rowErr.RowID != "3" || rowErr.Field != "answer" {
		t.Fatalf("expected answer error for row 3, got %+v", rowErr)
	}
}

func TestNormalizePrefersCanonicalSchema(t *testing.T) {
	// A source carrying both field sets parses as canonical.
	columns := []string{"id", "topic", "difficulty", "text", "option_a", "option_b", "option_c", "option_d", "correct_option",
		"question", "option_1", "option_2", "option_3", "option_4", "answer"}
	records := []Record{
		{Index: 1, Fields: map[string]string{
			"id": "q1", "topic": "math", "difficulty": "easy", "text": "?",
			"option_a": "1", "option_b": "2", "option_c": "3", "option_d": "4",
			"correct_option": "A",
			"question":       "ignored", "option_1": "x", "option_2": "y", "option_3": "z", "option_4": "w",
			"answer": "x",
		}},
	}

	questions, err := Normalize(columns, records)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if questions[0].CorrectOption != "1" {
		t.Fatalf("expected canonical parse (marker A), got %q", questions[0].CorrectOption)
	}
}
