// Package dashboard hosts the orchestrator that owns the current dataset,
// role assignment and filter state, and recomputes every derived output on
// each render request.
package dashboard

import (
	"io"
	"log"
	"sync"

	"salesboard/domain/core"
	"salesboard/domain/table"
	"salesboard/internal/analytics"
	"salesboard/internal/filterview"
	"salesboard/internal/ingest"
	"salesboard/internal/schema"
)

// SampleRows is how many filtered rows a snapshot carries for table preview.
const SampleRows = 50

// Engine owns the mutable dashboard state. The dataset is replaced wholesale
// on ingestion and read-only everywhere else; a failed ingestion leaves the
// prior dataset untouched. All derived outputs are pure functions of
// (dataset, roles, criteria), so renders over unchanged state are
// bit-identical.
type Engine struct {
	mu       sync.RWMutex
	dataset  *table.Dataset
	roles    table.RoleAssignment
	criteria table.FilterCriteria
}

// NewEngine creates an empty engine; Render before any ingestion reports
// ErrNoDataset.
func NewEngine() *Engine {
	return &Engine{roles: make(table.RoleAssignment)}
}

// Ingest decodes, parses and normalizes an uploaded payload, then replaces
// the dataset, re-infers roles and resets filters. Any failure aborts before
// state is touched.
func (e *Engine) Ingest(payload []byte, filename string) (*table.Dataset, error) {
	text, err := ingest.DecodePayload(payload)
	if err != nil {
		log.Printf("[Dashboard] Ingestion of %q failed: %v", filename, err)
		return nil, err
	}
	parsed, err := ingest.ParseDelimited(text)
	if err != nil {
		log.Printf("[Dashboard] Ingestion of %q failed: %v", filename, err)
		return nil, err
	}

	ds := ingest.BuildDataset(filename, parsed)
	roles := schema.InferRoles(ds.Columns, ds.Rows)

	e.mu.Lock()
	e.dataset = ds
	e.roles = roles
	e.criteria = table.FilterCriteria{}
	e.mu.Unlock()

	log.Printf("[Dashboard] Dataset %s active (%d rows), inferred %d roles",
		ds.ID, len(ds.Rows), len(roles))
	return ds, nil
}

// SetRole overrides one role binding. An empty column clears the role; a
// named column must exist in the current dataset.
func (e *Engine) SetRole(role table.Role, column string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dataset == nil {
		return core.ErrNoDataset
	}
	if column == "" {
		delete(e.roles, role)
		return nil
	}
	if !e.hasColumn(column) {
		return core.NewUnknownColumnError(column)
	}
	e.roles[role] = column
	return nil
}

// SetFilters replaces the slicer state used by subsequent renders.
func (e *Engine) SetFilters(criteria table.FilterCriteria) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dataset == nil {
		return core.ErrNoDataset
	}
	e.criteria = criteria
	return nil
}

// Render recomputes every derived output from the current state. No partial
// results are cached between invocations; identical state yields an
// identical snapshot.
func (e *Engine) Render() (*table.Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ds := e.dataset
	if ds == nil {
		return nil, core.ErrNoDataset
	}
	roles := e.roles
	criteria := e.criteria

	view := filterview.Apply(ds.Rows, criteria, roles)

	sample := view
	if len(sample) > SampleRows {
		sample = sample[:SampleRows]
	}

	return &table.Snapshot{
		DatasetID:    ds.ID,
		DatasetName:  ds.Name,
		Columns:      ds.Columns,
		Roles:        roles.Clone(),
		TotalRows:    len(ds.Rows),
		FilteredRows: len(view),
		KPIs:         analytics.ComputeKPIs(view, roles, ds),
		Series:       analytics.BucketByDay(view, roles),
		Categories:   analytics.RankCategories(view, roles),
		Correlations: analytics.RankCorrelations(ds, roles),
		Profiles:     analytics.ProfileColumns(ds),
		Sample:       sample,
		Warnings:     ds.Warnings,
	}, nil
}

// ExportCSV streams the current dataset back out as delimited text.
func (e *Engine) ExportCSV(w io.Writer) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.dataset == nil {
		return core.ErrNoDataset
	}
	return ingest.WriteCSV(e.dataset, w)
}

// Dataset returns the active dataset, or nil before the first ingestion.
func (e *Engine) Dataset() *table.Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataset
}

func (e *Engine) hasColumn(column string) bool {
	for _, col := range e.dataset.Columns {
		if col == column {
			return true
		}
	}
	return false
}
