package ui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"salesboard/domain/core"
	"salesboard/domain/table"
	apperrors "salesboard/internal/errors"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload ingests a multipart payload. A failed ingestion leaves the
// prior dataset in place, so the client can keep rendering it.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Upload.MaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, apperrors.InvalidInput("multipart field 'file' is required"))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, apperrors.Wrap(err, "failed to read upload"))
		return
	}

	ds, err := a.engine.Ingest(payload, header.Filename)
	if err != nil {
		a.writeError(w, err)
		return
	}

	snapshot, err := a.engine.Render()
	if err != nil {
		a.writeError(w, apperrors.Wrap(err, "render after ingestion failed"))
		return
	}

	writeJSON(w, http.StatusCreated, UploadView{
		DatasetID:   ds.ID.String(),
		DatasetName: ds.Name,
		Columns:     ds.Columns,
		Roles:       rolesView(snapshot.Roles),
		Rows:        len(ds.Rows),
		Warnings:    ds.Warnings,
	})
}

type setRoleRequest struct {
	Role   string `json:"role"`
	Column string `json:"column"`
}

// handleSetRole overrides one inferred role binding.
func (a *App) handleSetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, apperrors.InvalidInput("invalid JSON body"))
		return
	}

	role, err := table.ParseRole(req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.engine.SetRole(role, req.Column); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"role": req.Role, "column": req.Column})
}

type setFiltersRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Region   string `json:"region"`
	Product  string `json:"product"`
}

// handleSetFilters replaces the slicer state for subsequent renders.
func (a *App) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req setFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, apperrors.InvalidInput("invalid JSON body"))
		return
	}

	from, ok := parseDayParam(req.DateFrom)
	if !ok {
		a.writeError(w, apperrors.InvalidInput("date_from is not a recognizable date"))
		return
	}
	to, ok := parseDayParam(req.DateTo)
	if !ok {
		a.writeError(w, apperrors.InvalidInput("date_to is not a recognizable date"))
		return
	}

	criteria := table.FilterCriteria{
		DateFrom: from,
		DateTo:   to,
		Region:   req.Region,
		Product:  req.Product,
	}
	if err := a.engine.SetFilters(criteria); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDashboard renders the full snapshot. Concurrent requests collapse
// into a single render; the engine itself guarantees renders are idempotent.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err, _ := a.renders.Do("render", func() (interface{}, error) {
		return a.engine.Render()
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSnapshotView(result.(*table.Snapshot)))
}

// handleExport streams the sanitized dataset back as CSV.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	if a.engine.Dataset() == nil {
		a.writeError(w, core.ErrNoDataset)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="dataset.csv"`)
	if err := a.engine.ExportCSV(w); err != nil {
		a.logger.Error("CSV export failed: %v", err)
	}
}

// writeError maps domain errors to HTTP responses.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case errors.Is(err, core.ErrNoDataset):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	case core.IsValidationError(err) || code == apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
		code = apperrors.CodeInvalidInput
	case core.IsIngestionError(err) || code == apperrors.CodeIngestionFailed:
		status = http.StatusUnprocessableEntity
		code = apperrors.CodeIngestionFailed
	}

	a.logger.Warn("Request failed (%s): %v", code, err)
	writeJSON(w, status, map[string]string{"code": code, "error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
