package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"salesboard/domain/core"
	"salesboard/domain/table"
)

// ParsedText is the tokenized form of a delimited upload: ordered header
// names, best-effort records, and the non-fatal warnings collected along the
// way.
type ParsedText struct {
	Headers  []string
	Records  [][]string
	Warnings []table.ParseWarning
}

// ParseDelimited tokenizes header-bearing delimited text. Blank lines are
// tolerated, malformed lines are skipped with a warning, and ragged rows are
// kept with a warning; the caller always gets best-effort data.
func ParseDelimited(text string) (*ParsedText, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, core.ErrEmptyDataset
		}
		return nil, fmt.Errorf("%w: %v", core.ErrUndecodablePayload, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	parsed := &ParsedText{Headers: headers}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			parsed.Warnings = append(parsed.Warnings, table.ParseWarning{
				Line:    line,
				Message: fmt.Sprintf("malformed line skipped: %v", err),
			})
			continue
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(headers) {
			parsed.Warnings = append(parsed.Warnings, table.ParseWarning{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", len(headers), len(record)),
			})
		}
		parsed.Records = append(parsed.Records, record)
	}
	return parsed, nil
}
