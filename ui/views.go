package ui

import (
	"math"
	"time"

	"salesboard/domain/table"
)

// The view layer exists because JSON cannot carry NaN: degraded KPI values
// cross the wire as null instead.

// KPIView renders the summary scalars. Nil means the value is undefined for
// the current role assignment.
type KPIView struct {
	Revenue   *float64 `json:"revenue"`
	Profit    *float64 `json:"profit"`
	Orders    int      `json:"orders"`
	AOV       *float64 `json:"aov"`
	GrowthPct *float64 `json:"growth_pct"`
}

// SnapshotView is the full dashboard payload for one render.
type SnapshotView struct {
	DatasetID    string                   `json:"dataset_id"`
	DatasetName  string                   `json:"dataset_name"`
	Columns      []string                 `json:"columns"`
	Roles        map[string]string        `json:"roles"`
	TotalRows    int                      `json:"total_rows"`
	FilteredRows int                      `json:"filtered_rows"`
	KPIs         KPIView                  `json:"kpis"`
	Series       table.TimeSeries         `json:"series"`
	Categories   table.RankedCategories   `json:"categories"`
	Correlations table.RankedCorrelations `json:"correlations"`
	Profiles     []table.ColumnProfile    `json:"profiles"`
	Sample       []map[string]string      `json:"sample"`
	Warnings     []table.ParseWarning     `json:"warnings"`
}

// UploadView is the response to a successful ingestion.
type UploadView struct {
	DatasetID   string               `json:"dataset_id"`
	DatasetName string               `json:"dataset_name"`
	Columns     []string             `json:"columns"`
	Roles       map[string]string    `json:"roles"`
	Rows        int                  `json:"rows"`
	Warnings    []table.ParseWarning `json:"warnings"`
}

func newSnapshotView(snap *table.Snapshot) SnapshotView {
	return SnapshotView{
		DatasetID:    snap.DatasetID.String(),
		DatasetName:  snap.DatasetName,
		Columns:      snap.Columns,
		Roles:        rolesView(snap.Roles),
		TotalRows:    snap.TotalRows,
		FilteredRows: snap.FilteredRows,
		KPIs:         newKPIView(snap.KPIs),
		Series:       snap.Series,
		Categories:   snap.Categories,
		Correlations: snap.Correlations,
		Profiles:     snap.Profiles,
		Sample:       sampleView(snap.Columns, snap.Sample),
		Warnings:     snap.Warnings,
	}
}

func newKPIView(kpis table.KPISet) KPIView {
	view := KPIView{
		Revenue: jsonNumber(kpis.Revenue),
		Profit:  jsonNumber(kpis.Profit),
		Orders:  kpis.Orders,
		AOV:     jsonNumber(kpis.AOV),
	}
	if kpis.GrowthAvailable {
		view.GrowthPct = jsonNumber(kpis.GrowthPct)
	}
	return view
}

func rolesView(roles table.RoleAssignment) map[string]string {
	out := make(map[string]string, len(roles))
	for role, col := range roles {
		out[string(role)] = col
	}
	return out
}

// sampleView renders preview rows as raw text keyed by column.
func sampleView(columns []string, rows table.FilteredView) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rendered := make(map[string]string, len(columns))
		for _, col := range columns {
			rendered[col] = row[col].Raw
		}
		out[i] = rendered
	}
	return out
}

// jsonNumber flattens NaN to nil so the value serializes as null.
func jsonNumber(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// parseDayParam interprets an optional date field. Empty means unset; a
// non-empty value must parse as a calendar day.
func parseDayParam(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	day, ok := table.ParseDay(s)
	if !ok {
		return nil, false
	}
	return &day, true
}
