package analytics

import (
	"sort"

	"salesboard/domain/table"
)

// BucketByDay groups the view into ascending daily revenue/order buckets.
// Rows without a parseable date are silently skipped. Empty when the date
// role is unassigned or nothing parses; that is a degraded output, not an
// error.
func BucketByDay(view table.FilteredView, roles table.RoleAssignment) table.TimeSeries {
	dateCol, ok := roles.Column(table.RoleDate)
	if !ok {
		return table.TimeSeries{}
	}
	salesCol, _ := roles.Column(table.RoleSales)

	type bucket struct {
		revenue float64
		orders  int
	}
	buckets := make(map[string]*bucket)

	for _, row := range view {
		cell := row[dateCol]
		if !cell.HasDay() {
			continue
		}
		key := table.DayKey(cell.Day)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.revenue += row[salesCol].NumOrZero()
		b.orders++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Day keys are ISO formatted, so lexicographic order is chronological.
	sort.Strings(keys)

	series := make(table.TimeSeries, 0, len(keys))
	for _, key := range keys {
		series = append(series, table.TimeSeriesPoint{
			Day:     key,
			Revenue: buckets[key].revenue,
			Orders:  buckets[key].orders,
		})
	}
	return series
}
