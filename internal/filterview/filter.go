// Package filterview applies the dashboard slicers to a dataset, producing
// the ordered row view every aggregation runs over.
package filterview

import (
	"salesboard/domain/table"
)

// Apply evaluates the filter criteria against rows and returns the passing
// subset. Predicates are independent and conjunctive; inactive predicates
// always pass. Original row order is preserved and rows are never duplicated
// or mutated.
func Apply(rows []table.Row, criteria table.FilterCriteria, roles table.RoleAssignment) table.FilteredView {
	dateCol, dateAssigned := roles.Column(table.RoleDate)
	regionCol, regionAssigned := roles.Column(table.RoleRegion)
	productCol, productAssigned := roles.Column(table.RoleProduct)

	dateActive := dateAssigned && criteria.DateActive()
	regionActive := regionAssigned && criteria.RegionActive()
	productActive := productAssigned && criteria.ProductActive()

	view := make(table.FilteredView, 0, len(rows))
	for _, row := range rows {
		if dateActive && !passesDate(row[dateCol], criteria) {
			continue
		}
		if regionActive && row[regionCol].Raw != criteria.Region {
			continue
		}
		if productActive && row[productCol].Raw != criteria.Product {
			continue
		}
		view = append(view, row)
	}
	return view
}

// passesDate checks the row's date cell against the active bounds. Rows whose
// date cell does not parse are excluded while the date filter is active.
func passesDate(cell table.Cell, criteria table.FilterCriteria) bool {
	if !cell.HasDay() {
		return false
	}
	if criteria.DateFrom != nil && cell.Day.Before(*criteria.DateFrom) {
		return false
	}
	if criteria.DateTo != nil && cell.Day.After(*criteria.DateTo) {
		return false
	}
	return true
}
