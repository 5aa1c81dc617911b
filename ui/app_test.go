package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesboard/internal/config"
)

const uploadCSV = "Order_Date,Region,Product,Sales_Amount\n" +
	"2024-01-01,North,Widget,100\n" +
	"2024-01-02,South,Gadget,200\n"

func testApp() *App {
	return NewApp(&config.Config{
		Server: config.ServerConfig{Port: "0"},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
	})
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, app *App, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func doJSON(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app := testApp()
	rec := doJSON(app, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardBeforeUploadIs404(t *testing.T) {
	app := testApp()
	rec := doJSON(app, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadThenDashboard(t *testing.T) {
	app := testApp()

	rec := doUpload(t, app, "sales.csv", uploadCSV)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var upload UploadView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))
	assert.Equal(t, "sales.csv", upload.DatasetName)
	assert.Equal(t, 2, upload.Rows)
	assert.Equal(t, "Sales_Amount", upload.Roles["sales"])

	rec = doJSON(app, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap SnapshotView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.TotalRows)
	assert.Equal(t, 2, snap.FilteredRows)
	require.NotNil(t, snap.KPIs.Revenue)
	assert.Equal(t, 300.0, *snap.KPIs.Revenue)
	require.Len(t, snap.Sample, 2)
	assert.Equal(t, "North", snap.Sample[0]["Region"])
}

func TestUndefinedKPIsSerializeAsNull(t *testing.T) {
	app := testApp()
	// No column matches any measure keyword, so revenue is undefined.
	rec := doUpload(t, app, "plain.csv", "Alpha,Beta\n1,2\n")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(app, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	var kpis map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["kpis"], &kpis))
	assert.Equal(t, "null", string(kpis["revenue"]))
	assert.Equal(t, "null", string(kpis["profit"]))
	assert.Equal(t, "null", string(kpis["growth_pct"]))
}

func TestUploadWithoutFileFieldIs400(t *testing.T) {
	app := testApp()
	rec := doJSON(app, http.MethodPost, "/api/upload", "not multipart")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUndecodableUploadIs422(t *testing.T) {
	app := testApp()
	rec := doUpload(t, app, "junk.bin", string([]byte{0xFF, 0xFE, 0x00}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSetRoleValidation(t *testing.T) {
	app := testApp()
	require.Equal(t, http.StatusCreated, doUpload(t, app, "sales.csv", uploadCSV).Code)

	rec := doJSON(app, http.MethodPost, "/api/roles", `{"role":"sales","column":"Order_Date"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(app, http.MethodPost, "/api/roles", `{"role":"bogus","column":"Order_Date"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(app, http.MethodPost, "/api/roles", `{"role":"sales","column":"No_Such"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetFiltersNarrowsDashboard(t *testing.T) {
	app := testApp()
	require.Equal(t, http.StatusCreated, doUpload(t, app, "sales.csv", uploadCSV).Code)

	rec := doJSON(app, http.MethodPost, "/api/filters", `{"region":"North"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(app, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap SnapshotView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.FilteredRows)
}

func TestSetFiltersRejectsBadDate(t *testing.T) {
	app := testApp()
	require.Equal(t, http.StatusCreated, doUpload(t, app, "sales.csv", uploadCSV).Code)

	rec := doJSON(app, http.MethodPost, "/api/filters", `{"date_from":"not a date"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportStreamsCSV(t *testing.T) {
	app := testApp()
	require.Equal(t, http.StatusCreated, doUpload(t, app, "sales.csv", uploadCSV).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/export.csv", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Order_Date,Region,Product,Sales_Amount\n"))
}
