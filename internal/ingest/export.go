package ingest

import (
	"encoding/csv"
	"io"

	"salesboard/domain/table"
)

// WriteCSV re-serializes a dataset to delimited text: sanitized headers in
// original order, then every row's raw cell text. This is the inverse of the
// parsing contract and exists for user download.
func WriteCSV(ds *table.Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			record[i] = row[col].Raw
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
