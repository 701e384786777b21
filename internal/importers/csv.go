package importers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvRecords walks a CSV stream with a header row. fn is called for every
// data record with its 1-based line number; a non-empty return is recorded
// as a per-line error and the record is skipped.
func csvRecords(r io.Reader, required []string, fn func(line int, rec csvRecord) string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, h := range required {
		if _, ok := headerIndex[h]; !ok {
			return nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	var lineErrors []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				lineErrors = append(lineErrors, fmt.Sprintf("Line %d: %v", pe.StartLine, pe.Err))
				continue
			}
			return lineErrors, err
		}

		line, _ := reader.FieldPos(0)
		if msg := fn(line, csvRecord{values: record, index: headerIndex}); msg != "" {
			lineErrors = append(lineErrors, fmt.Sprintf("Line %d: %s", line, msg))
		}
	}

	return lineErrors, nil
}

type csvRecord struct {
	values []string
	index  map[string]int
}

// raw returns the untrimmed value of the first present header.
func (r csvRecord) raw(headers ...string) string {
	for _, h := range headers {
		if idx, ok := r.index[h]; ok && idx < len(r.values) {
			return r.values[idx]
		}
	}
	return ""
}

func (r csvRecord) get(headers ...string) string {
	return strings.TrimSpace(r.raw(headers...))
}

func (r csvRecord) getInt(header string) int {
	n, _ := strconv.Atoi(r.get(header))
	return n
}

// optionalInt returns nil for empty or non-numeric values.
func (r csvRecord) optionalInt(header string) *int {
	value := r.get(header)
	if value == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}
