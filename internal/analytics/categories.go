package analytics

import (
	"sort"

	"salesboard/domain/table"
)

// TopCategories caps the category leaderboard length.
const TopCategories = 12

// UnknownCategory labels rows whose product cell is missing.
const UnknownCategory = "Unknown"

// RankCategories aggregates the sales measure per product label and returns
// the descending top entries. Ties keep first-seen order. Empty when the
// product role is unassigned.
func RankCategories(view table.FilteredView, roles table.RoleAssignment) table.RankedCategories {
	productCol, ok := roles.Column(table.RoleProduct)
	if !ok {
		return table.RankedCategories{}
	}
	salesCol, _ := roles.Column(table.RoleSales)

	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, row := range view {
		cell := row[productCol]
		label := cell.Raw
		if cell.Missing {
			label = UnknownCategory
		}
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += row[salesCol].NumOrZero()
	}

	ranked := make(table.RankedCategories, 0, len(order))
	for _, label := range order {
		ranked = append(ranked, table.CategoryRank{Label: label, Total: totals[label]})
	}
	// Stable sort over first-seen order implements the tie-break.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	if len(ranked) > TopCategories {
		ranked = ranked[:TopCategories]
	}
	return ranked
}
