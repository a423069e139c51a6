package source

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record is one loosely typed input row.
type Record = map[string]any

// DecodeJSON reads a JSON array of objects, or a single object.
func DecodeJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	switch t := v.(type) {
	case map[string]any:
		return []Record{t}, nil
	case []any:
		out := make([]Record, 0, len(t))
		for i, item := range t {
			rec, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedInput, i)
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected an object or an array of objects", ErrMalformedInput)
	}
}

// DecodeNDJSON reads one JSON object per line. Blank lines are skipped.
func DecodeNDJSON(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return out, nil
}

// DecodeCSV reads a header row followed by one record per row. Empty cells
// are left out of the record.
func DecodeCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		rec := make(Record, len(header))
		for i, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" && header[i] != "" {
				rec[header[i]] = cell
			}
		}
		out = append(out, rec)
	}
}
