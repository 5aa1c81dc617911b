package ingest

import (
	"log"
	"time"

	"salesboard/domain/core"
	"salesboard/domain/table"
)

// BuildDataset sanitizes the parsed headers and commits every cell to its
// normalized form, producing a fresh dataset generation. Every row exposes
// the full column key set; source values that are absent or blank become
// missing cells.
func BuildDataset(name string, parsed *ParsedText) *table.Dataset {
	columns := make([]string, len(parsed.Headers))
	for i, header := range parsed.Headers {
		columns[i] = SanitizeColumn(header)
	}

	rows := make([]table.Row, 0, len(parsed.Records))
	for _, record := range parsed.Records {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			raw := ""
			if i < len(record) {
				raw = record[i]
			}
			row[col] = table.NormalizeCell(raw)
		}
		rows = append(rows, row)
	}

	ds := &table.Dataset{
		ID:         core.NewDatasetID(),
		Name:       name,
		Columns:    columns,
		Rows:       rows,
		Warnings:   parsed.Warnings,
		IngestedAt: time.Now(),
	}
	log.Printf("[Ingest] Built dataset %s: %d columns, %d rows, %d warnings",
		ds.ID, len(columns), len(rows), len(parsed.Warnings))
	return ds
}
