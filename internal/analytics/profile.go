package analytics

import (
	"github.com/montanaflynn/stats"

	"salesboard/domain/table"
)

// minProfileObservations is the least parseable values a column needs before
// summary statistics are meaningful enough to report.
const minProfileObservations = 2

// ProfileColumns summarizes the numeric content of every column in original
// order. Columns with too few parseable values are omitted.
func ProfileColumns(ds *table.Dataset) []table.ColumnProfile {
	if ds == nil {
		return nil
	}

	profiles := make([]table.ColumnProfile, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		values := make([]float64, 0, len(ds.Rows))
		for _, row := range ds.Rows {
			if cell := row[col]; cell.HasNumber() {
				values = append(values, cell.Num)
			}
		}
		if len(values) < minProfileObservations {
			continue
		}

		mean, _ := stats.Mean(values)
		median, _ := stats.Median(values)
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)
		stdDev, _ := stats.StandardDeviation(values)

		profiles = append(profiles, table.ColumnProfile{
			Column: col,
			Count:  len(values),
			Mean:   mean,
			Median: median,
			Min:    min,
			Max:    max,
			StdDev: stdDev,
		})
	}
	return profiles
}
