package bank

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"mcq-quiz-service/internal/domain"
)

// CSVLoader reads a question bank from a CSV file with a header row.
type CSVLoader struct {
	path string
}

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// LoadBank parses the whole file and normalizes it through schema detection.
func (l *CSVLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read question bank header: %w", err)
	}
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}

	var records []Record
	for i := 1; ; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read question bank row %d: %w", i, err)
		}
		fields := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(row) {
				fields[col] = row[j]
			}
		}
		records = append(records, Record{Index: i, Fields: fields})
	}
	return Normalize(columns, records)
}
