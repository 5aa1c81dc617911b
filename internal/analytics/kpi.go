// Package analytics computes every derived dashboard output: KPI scalars,
// daily time buckets, category and correlation rankings, and column
// profiles. All functions are pure and total: degenerate inputs (unassigned
// roles, empty views, zero variance) produce sentinel outputs, never errors.
package analytics

import (
	"math"
	"time"

	"salesboard/domain/table"
)

// GrowthWindowDays is the fixed growth-comparison policy: the trailing
// window ending at the newest parseable date is compared against the
// immediately preceding window of the same length.
const GrowthWindowDays = 30

// ComputeKPIs derives the summary scalars for the current view. Growth is
// computed over the full dataset, ignoring active filters, because it
// describes the dataset's own trajectory rather than the slice being viewed.
func ComputeKPIs(view table.FilteredView, roles table.RoleAssignment, full *table.Dataset) table.KPISet {
	kpis := table.KPISet{
		Revenue: math.NaN(),
		Profit:  math.NaN(),
		AOV:     math.NaN(),
		Orders:  len(view),
	}

	salesCol, salesAssigned := roles.Column(table.RoleSales)
	if salesAssigned {
		kpis.Revenue = sumColumn(view, salesCol)
	}

	if profitCol, ok := roles.Column(table.RoleProfit); ok {
		kpis.Profit = sumColumn(view, profitCol)
	} else if costCol, ok := roles.Column(table.RoleCost); ok && salesAssigned {
		kpis.Profit = kpis.Revenue - sumColumn(view, costCol)
	}

	// Explicit zero-division guard: an empty view yields NaN, never Inf.
	if kpis.Orders > 0 {
		kpis.AOV = kpis.Revenue / float64(kpis.Orders)
	}

	kpis.GrowthPct, kpis.GrowthAvailable = computeGrowth(roles, full)
	return kpis
}

// sumColumn totals the parseable numeric cells of one column; unparsable
// cells contribute 0.
func sumColumn(rows []table.Row, column string) float64 {
	total := 0.0
	for _, row := range rows {
		total += row[column].NumOrZero()
	}
	return total
}

// computeGrowth compares the trailing window against the preceding one and
// returns the rounded signed percentage delta. Unavailable when no date role
// is assigned, no date parses, or the preceding window has no sales.
func computeGrowth(roles table.RoleAssignment, full *table.Dataset) (float64, bool) {
	dateCol, ok := roles.Column(table.RoleDate)
	if !ok || full == nil {
		return 0, false
	}

	var last time.Time
	for _, row := range full.Rows {
		cell := row[dateCol]
		if cell.HasDay() && cell.Day.After(last) {
			last = cell.Day
		}
	}
	if last.IsZero() {
		return 0, false
	}

	salesCol, _ := roles.Column(table.RoleSales)

	periodStart := last.AddDate(0, 0, -(GrowthWindowDays - 1))
	prevStart := periodStart.AddDate(0, 0, -GrowthWindowDays)

	periodSum, prevSum := 0.0, 0.0
	for _, row := range full.Rows {
		cell := row[dateCol]
		if !cell.HasDay() {
			continue
		}
		day := cell.Day
		switch {
		case !day.Before(periodStart) && !day.After(last):
			periodSum += row[salesCol].NumOrZero()
		case !day.Before(prevStart) && day.Before(periodStart):
			prevSum += row[salesCol].NumOrZero()
		}
	}

	if prevSum <= 0 {
		return 0, false
	}
	return math.Round((periodSum - prevSum) / prevSum * 100), true
}
