// Package schema assigns semantic roles to dataset columns using name and
// content heuristics. The inference is deterministic: identical inputs always
// yield identical assignments. It is a heuristic approximation and may
// mis-assign on ambiguous headers; explicit user overrides correct it.
package schema

import (
	"strings"

	"salesboard/domain/table"
)

// rolePattern pairs a role with the header keywords that select it. Patterns
// are evaluated in this order, and within each role the columns are scanned
// in original order: the first matching column wins. That tie-break is
// load-bearing and must not change.
type rolePattern struct {
	role     table.Role
	keywords []string
}

var rolePatterns = []rolePattern{
	{table.RoleSales, []string{"revenue", "sales", "amount", "total", "price", "turnover"}},
	{table.RoleCost, []string{"cost", "expense", "cogs", "costs"}},
	{table.RoleProfit, []string{"profit", "margin"}},
	{table.RoleDate, []string{"date", "day", "dt", "timestamp"}},
	{table.RoleRegion, []string{"region", "state", "area", "zone", "city", "location"}},
	{table.RoleProduct, []string{"product", "item", "sku", "category", "cat"}},
}

const (
	// dateSniffSample caps how many leading non-missing values are examined
	// per column when falling back to content-based date detection.
	dateSniffSample = 200
	// dateSniffThreshold is the fraction of sampled values that must parse
	// as dates for a column to be selected.
	dateSniffThreshold = 0.6
)

// InferRoles scans columns for each role and returns the resulting
// assignment. Case-insensitive substring match on the column name; at most
// one column per role. When no column name matches the date pattern, column
// content is sniffed for parseable dates instead.
func InferRoles(columns []string, rows []table.Row) table.RoleAssignment {
	roles := make(table.RoleAssignment)

	for _, rp := range rolePatterns {
		if col, ok := firstMatch(columns, rp.keywords); ok {
			roles[rp.role] = col
		}
	}

	if _, ok := roles.Column(table.RoleDate); !ok {
		if col, ok := sniffDateColumn(columns, rows); ok {
			roles[table.RoleDate] = col
		}
	}

	return roles
}

// firstMatch returns the first column whose lower-cased name contains any of
// the keywords.
func firstMatch(columns []string, keywords []string) (string, bool) {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col, true
			}
		}
	}
	return "", false
}

// sniffDateColumn picks the first column whose sampled content is mostly
// parseable dates.
func sniffDateColumn(columns []string, rows []table.Row) (string, bool) {
	for _, col := range columns {
		sampled, parsed := 0, 0
		for _, row := range rows {
			cell, ok := row[col]
			if !ok || cell.Missing {
				continue
			}
			sampled++
			if cell.HasDay() {
				parsed++
			}
			if sampled == dateSniffSample {
				break
			}
		}
		if sampled == 0 {
			continue
		}
		if float64(parsed)/float64(sampled) > dateSniffThreshold {
			return col, true
		}
	}
	return "", false
}
