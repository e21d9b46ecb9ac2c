package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionNotFound is returned when an operation references a session id
	// that was never created (or has been evicted).
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNoQuestionsAvailable is returned when no questions match the requested
	// topic and difficulty.
	ErrNoQuestionsAvailable = errors.New("no questions available for the selected topic and difficulty")
	// ErrQuestionMismatch is returned when a submitted question id does not
	// match the session's current question.
	ErrQuestionMismatch = errors.New("submitted question does not match the current question")
)

// SchemaError reports a question-bank source whose column set matches no
// supported schema. Fatal to bank loading.
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("question bank columns match no supported schema: [%s]", strings.Join(e.Columns, ", "))
}

// RowError reports an invalid value on a specific source row. Fatal to bank
// loading: a partially loaded bank would corrupt availability listings.
type RowError struct {
	RowID string // question id, or the 1-based row position when the schema has no id column
	Field string
	Value string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("question %s: invalid %s %q", e.RowID, e.Field, e.Value)
}
