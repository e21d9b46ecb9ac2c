package domain

import "strings"

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Difficulty is the normalized difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the known levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty normalizes a raw difficulty value (trim + lowercase) and
// reports whether it is one of the known levels.
func ParseDifficulty(raw string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// Question models an MCQ question with exactly one correct option.
// Questions are immutable after bank load and shared read-only by sessions.
type Question struct {
	ID            string     `json:"id"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"` // exactly OptionCount entries
	CorrectOption string     `json:"correctOption"`
}

// QuestionAttempt records one answer to one question. Immutable once appended.
type QuestionAttempt struct {
	Question     Question `json:"question"`
	ChosenOption string   `json:"chosenOption"`
	IsCorrect    bool     `json:"isCorrect"`
}

// AnswerResult is the outcome of recording an answer.
type AnswerResult struct {
	Correct  bool      `json:"correct"`
	Next     *Question `json:"next,omitempty"`
	Finished bool      `json:"finished"`
}

// IncorrectQuestion is one review entry for a wrongly answered question.
type IncorrectQuestion struct {
	Question      Question `json:"question"`
	ChosenOption  string   `json:"chosenOption"`
	CorrectOption string   `json:"correctOption"`
}

// Summary aggregates a session's results.
type Summary struct {
	SessionID          string              `json:"sessionId"`
	Topic              string              `json:"topic"`
	Difficulty         Difficulty          `json:"difficulty"`
	TotalQuestions     int                 `json:"totalQuestions"`
	CorrectCount       int                 `json:"correctCount"`
	IncorrectCount     int                 `json:"incorrectCount"`
	ScorePercentage    float64             `json:"scorePercentage"`
	DurationSeconds    float64             `json:"durationSeconds"`
	IncorrectQuestions []IncorrectQuestion `json:"incorrectQuestions"`
}
