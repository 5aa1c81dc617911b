package table

import (
	"time"

	"salesboard/domain/core"
)

// Role is the logical meaning a dashboard measure binds to a column. Each
// role maps to at most one column at a time.
type Role string

const (
	RoleSales   Role = "sales"
	RoleCost    Role = "cost"
	RoleProfit  Role = "profit"
	RoleDate    Role = "date"
	RoleRegion  Role = "region"
	RoleProduct Role = "product"
)

// Roles lists every role in evaluation order.
var Roles = []Role{RoleSales, RoleCost, RoleProfit, RoleDate, RoleRegion, RoleProduct}

// ParseRole validates a role name coming from the outside.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", core.NewUnknownRoleError(s)
}

// Row maps a sanitized column name to its committed cell. Every row of a
// dataset exposes the same key set as the column list; absent source values
// are present as missing cells.
type Row map[string]Cell

// Dataset is one wholesale ingestion result: sanitized column names in
// original order plus normalized rows. It is replaced as a unit on the next
// ingestion and is read-only to every computation component.
type Dataset struct {
	ID         core.DatasetID
	Name       string
	Columns    []string
	Rows       []Row
	Warnings   []ParseWarning
	IngestedAt time.Time
}

// ParseWarning records a malformed source line that was skipped or repaired
// during ingestion. Non-fatal: the dataset still carries best-effort rows.
type ParseWarning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// RoleAssignment maps each logical role to the column serving it. A missing
// entry means the role is unassigned and dependent outputs degrade to their
// sentinels instead of failing.
type RoleAssignment map[Role]string

// Column returns the column bound to role, if any.
func (ra RoleAssignment) Column(role Role) (string, bool) {
	col, ok := ra[role]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// Clone returns an independent copy so callers can hand assignments across
// boundaries without sharing mutable state.
func (ra RoleAssignment) Clone() RoleAssignment {
	out := make(RoleAssignment, len(ra))
	for role, col := range ra {
		out[role] = col
	}
	return out
}

// AllValues is the categorical slicer sentinel meaning "no restriction".
const AllValues = "All"

// FilterCriteria is the ephemeral slicer state for one render. Zero values
// disable the corresponding predicate.
type FilterCriteria struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Region   string
	Product  string
}

// RegionActive reports whether the region predicate restricts anything.
func (fc FilterCriteria) RegionActive() bool {
	return fc.Region != "" && fc.Region != AllValues
}

// ProductActive reports whether the product predicate restricts anything.
func (fc FilterCriteria) ProductActive() bool {
	return fc.Product != "" && fc.Product != AllValues
}

// DateActive reports whether at least one date bound is set.
func (fc FilterCriteria) DateActive() bool {
	return fc.DateFrom != nil || fc.DateTo != nil
}

// FilteredView is the ordered subset of dataset rows passing the current
// criteria. Order-preserving, never mutated in place.
type FilteredView []Row

// KPISet holds the summary scalars for the current view. Revenue, Profit and
// AOV are NaN when their roles are unassigned or undefined; that is a
// degraded output, not an error.
type KPISet struct {
	Revenue         float64
	Profit          float64
	Orders          int
	AOV             float64
	GrowthPct       float64
	GrowthAvailable bool
}

// TimeSeriesPoint is one daily revenue/order bucket.
type TimeSeriesPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// TimeSeries is the ascending daily bucket sequence.
type TimeSeries []TimeSeriesPoint

// CategoryRank is one entry of the category leaderboard.
type CategoryRank struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// RankedCategories is the descending top-N category leaderboard.
type RankedCategories []CategoryRank

// CorrelationRank scores one column against the sales measure. R is the
// absolute Pearson coefficient; PValue is a two-sided Student's-t p-value for
// the underlying signed coefficient.
type CorrelationRank struct {
	Column string  `json:"column"`
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`
	Pairs  int     `json:"pairs"`
}

// RankedCorrelations is the descending top-N correlation leaderboard.
type RankedCorrelations []CorrelationRank

// ColumnProfile summarizes the parseable numeric content of one column.
type ColumnProfile struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Snapshot is one full recomputation of every derived output. Two renders
// over identical inputs produce identical snapshots.
type Snapshot struct {
	DatasetID    core.DatasetID
	DatasetName  string
	Columns      []string
	Roles        RoleAssignment
	TotalRows    int
	FilteredRows int
	KPIs         KPISet
	Series       TimeSeries
	Categories   RankedCategories
	Correlations RankedCorrelations
	Profiles     []ColumnProfile
	Sample       FilteredView
	Warnings     []ParseWarning
}
