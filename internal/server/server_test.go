// ABOUTME: HTTP tests for dashboards, charts, exports and the JSON API.
// ABOUTME: Drives the gin engine through httptest in test mode.
package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/dashboard"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	engine, err := New(dashboard.NewBuilder(models.DefaultCatalog()), zap.NewNop(), gin.TestMode)
	require.NoError(t, err)
	return engine
}

func get(t *testing.T, engine *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealthz(t *testing.T) {
	w := get(t, newEngine(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newEngine(t).ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestIndexPage(t *testing.T) {
	w := get(t, newEngine(t), "/")
	require.Equal(t, http.StatusOK, w.Code)
	for _, name := range []string{"/dashboards/hse", "/dashboards/coach", "/dashboards/evo"} {
		assert.Contains(t, w.Body.String(), name)
	}
}

func TestDashboardPages(t *testing.T) {
	engine := newEngine(t)
	for _, name := range []string{"hse", "coach", "evo"} {
		w := get(t, engine, "/dashboards/"+name+"?seed=11&at=1750000000")
		require.Equal(t, http.StatusOK, w.Code, name)
		body := w.Body.String()
		assert.Contains(t, body, "seed=11", name)
		assert.Contains(t, body, "at=1750000000", name)
		assert.Contains(t, body, "/export/csv", name)
	}

	w := get(t, engine, "/dashboards/coach?session=Sessione+2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Confronto sessioni")
	assert.Contains(t, w.Body.String(), "compare-postura-score")
}

func TestDashboardErrors(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		target string
		status int
	}{
		{"/dashboards/nope", http.StatusNotFound},
		{"/dashboards/coach?session=Sessione+9", http.StatusNotFound},
		{"/dashboards/hse?rows=0", http.StatusBadRequest},
		{"/dashboards/hse?rows=abc", http.StatusBadRequest},
		{"/dashboards/hse?rows=10001", http.StatusBadRequest},
		{"/dashboards/hse/export/csv?rows=2000000000", http.StatusBadRequest},
		{"/api/dashboards/evo?rows=2000000000", http.StatusBadRequest},
		{"/dashboards/hse?seed=-1", http.StatusBadRequest},
		{"/dashboards/hse/export/docx", http.StatusBadRequest},
		{"/dashboards/hse/charts/missing", http.StatusNotFound},
		{"/dashboards/hse/charts/trend?img=gif", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := get(t, engine, tt.target)
		assert.Equal(t, tt.status, w.Code, tt.target)
		env := decode(t, w)
		assert.Equal(t, tt.status, env.Code, tt.target)
		assert.NotEmpty(t, env.Message, tt.target)
	}
}

func TestExportCSVMatchesView(t *testing.T) {
	engine := newEngine(t)
	query := "?seed=99&at=1750000000&rows=12"

	api := decode(t, get(t, engine, "/api/dashboards/hse"+query))
	var view dashboard.Snapshot
	require.NoError(t, json.Unmarshal(api.Data, &view))
	require.Len(t, view.Records, 12)

	w := get(t, engine, "/dashboards/hse/export/csv"+query)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="report_hse.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, strings.Join(view.Columns, ","), lines[0])
	assert.Equal(t, strings.Join(view.Records[0], ","), lines[1])
}

func TestExportFormats(t *testing.T) {
	engine := newEngine(t)
	for _, f := range export.AllFormats {
		w := get(t, engine, "/dashboards/coach/export/"+string(f)+"?seed=3&session=Sessione+1")
		require.Equal(t, http.StatusOK, w.Code, f)
		assert.Equal(t, f.ContentType(), w.Header().Get("Content-Type"), f)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "report_sessione_1."+f.Extension())
	}

	w := get(t, engine, "/dashboards/evo/export/pdf?seed=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestCharts(t *testing.T) {
	engine := newEngine(t)
	targets := []string{
		"/dashboards/hse/charts/trend",
		"/dashboards/hse/charts/posture",
		"/dashboards/hse/charts/lumbar",
		"/dashboards/coach/charts/scores",
		"/dashboards/coach/charts/heart-rate",
		"/dashboards/coach/charts/compare-postura-score",
		"/dashboards/coach/charts/compare-simmetria",
		"/dashboards/evo/charts/balance",
	}
	for _, target := range targets {
		w := get(t, engine, target+"?seed=5")
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"), target)
	}

	w := get(t, engine, "/dashboards/evo/charts/scores?img=png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestListDashboards(t *testing.T) {
	env := decode(t, get(t, newEngine(t), "/api/dashboards"))
	assert.Equal(t, 0, env.Code)

	var infos []dashboard.Info
	require.NoError(t, json.Unmarshal(env.Data, &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, "coach", infos[1].Name)
	assert.Len(t, infos[1].Sessions, 3)
}

func TestGetDashboardJSON(t *testing.T) {
	env := decode(t, get(t, newEngine(t), "/api/dashboards/coach?seed=8&compare=Sessione+1&compare=Sessione+3"))

	var view dashboard.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, uint64(8), view.Seed)
	assert.Equal(t, "Sessione 1", view.Session)
	assert.Len(t, view.Records, 10)
	assert.Len(t, view.Indicators, 4)
	require.Len(t, view.Comparisons, 3)
	assert.Equal(t, "Sessione 3", view.Comparisons[0].Sessions[1].Session)
}

func TestInspectUpload(t *testing.T) {
	engine := newEngine(t)
	csv := "Data,Passi,Score\n2025-01-02,3,75.5\n2025-01-01,1,80.5\n"

	// Raw body.
	req := httptest.NewRequest(http.MethodPost, "/api/inspect", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var in struct {
		Rows    int `json:"rows"`
		Columns []struct {
			Name string  `json:"name"`
			Mean float64 `json:"mean"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &in))
	assert.Equal(t, 2, in.Rows)
	require.Len(t, in.Columns, 2)
	assert.Equal(t, 78.0, in.Columns[1].Mean)

	// Multipart upload.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "sessione.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(csv))
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/inspect", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Header only.
	req = httptest.NewRequest(http.MethodPost, "/api/inspect", strings.NewReader("Data,Passi\n"))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty cell.
	req = httptest.NewRequest(http.MethodPost, "/api/inspect", strings.NewReader("Data,Passi,Score\n2025-01-02,3,\n2025-01-01,1,80.5\n"))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.Contains(t, env.Message, "Score")
}

func TestNewRejectsUnknownMode(t *testing.T) {
	_, err := New(dashboard.NewBuilder(models.DefaultCatalog()), zap.NewNop(), "turbo")
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestChartSlug(t *testing.T) {
	assert.Equal(t, "postura-score", chartSlug(models.ColPostureScore))
	assert.Equal(t, "simmetria", chartSlug(models.ColSymmetry))
	assert.Equal(t, "andatura-score", chartSlug(models.ColGaitScore))
}
