package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rack-sim/rack-sim/sim"
)

// Column names looked up (case-insensitively) in the CSV header row.
const (
	ColumnDate     = "date"
	ColumnCategory = "category"
)

// LoadRecords reads store or retrieve records from a CSV file.
func LoadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords parses CSV with a header row naming at least the date and
// category columns. Other columns are ignored. Blank lines are skipped.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	dateCol, catCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnDate:
			dateCol = i
		case ColumnCategory:
			catCol = i
		}
	}
	if dateCol < 0 || catCol < 0 {
		return nil, fmt.Errorf("%w: header must contain %q and %q columns, got %v",
			ErrMalformedRecord, ColumnDate, ColumnCategory, header)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) <= dateCol || len(row) <= catCol {
			return nil, fmt.Errorf("%w: line %d has %d columns", ErrMalformedRecord, line, len(row))
		}
		date, err := ParseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		category, err := sim.ParseCategory(row[catCol])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}
		records = append(records, Record{Date: date, Category: category, Line: line})
	}
	return records, nil
}
