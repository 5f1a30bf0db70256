package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/metrics"
	"github.com/84adam/jenkins-test-app/mockapi"
	"github.com/84adam/jenkins-test-app/monitoring"
	"github.com/84adam/jenkins-test-app/ui"
	"github.com/84adam/jenkins-test-app/ui/uitest"
)

// setupTestServer installs a fresh global Echo with routes bound to opts
func setupTestServer(t *testing.T, opts RouteOptions) *echo.Echo {
	t.Helper()
	logging.Discard()

	original := Echo
	Echo = echo.New()
	t.Cleanup(func() { Echo = original })

	RegisterRoutes(opts)
	return Echo
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexPage_RendersComponent(t *testing.T) {
	e := setupTestServer(t, RouteOptions{Env: func() string { return "test" }})

	rec := get(e, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	doc, err := html.Parse(rec.Body)
	require.NoError(t, err)
	screen := uitest.NewScreen(doc)

	_, err = screen.GetByRole("heading", ui.Title)
	assert.NoError(t, err)

	items, err := screen.GetAllByRole("listitem")
	require.NoError(t, err)
	assert.Len(t, items, 4)

	button, err := screen.GetByTestID(ui.ButtonTestID)
	require.NoError(t, err)
	assert.Equal(t, ui.AlertMessage, uitest.Attr(button, "data-notify"))

	_, err = screen.GetByText("빌드 환경: test")
	assert.NoError(t, err)
}

func TestIndexPage_ReadsEnvironmentPerRequest(t *testing.T) {
	env := "staging"
	e := setupTestServer(t, RouteOptions{Env: func() string { return env }})

	assert.Contains(t, get(e, "/").Body.String(), "빌드 환경: staging")

	env = "production"
	assert.Contains(t, get(e, "/").Body.String(), "빌드 환경: production")
}

func TestIndexPage_LinksAssets(t *testing.T) {
	e := setupTestServer(t, RouteOptions{Env: func() string { return "test" }})

	body := get(e, "/").Body.String()
	assert.Contains(t, body, `href="/static/app.css"`)
	assert.Contains(t, body, `src="/static/app.js"`)
}

func TestStaticAssets(t *testing.T) {
	e := setupTestServer(t, RouteOptions{})

	rec := get(e, ScriptPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "window.alert")
	assert.Contains(t, rec.Body.String(), "data-notify")

	rec = get(e, StylesheetPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".test-button")

	assert.Equal(t, http.StatusNotFound, get(e, "/static/missing.js").Code)
}

func TestHealthz(t *testing.T) {
	e := setupTestServer(t, RouteOptions{Health: monitoring.NewHealthMonitor(ui.Version)})

	rec := get(e, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page_render"`)
}

func TestMetricsEndpoint_CountsRenders(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)
	e := setupTestServer(t, RouteOptions{Env: func() string { return "test" }, Metrics: m})

	get(e, "/")
	get(e, "/")

	rec := get(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "page_renders_total 2")
}

func TestMockAPI_Disabled(t *testing.T) {
	e := setupTestServer(t, RouteOptions{})

	rec := get(e, "/api/health")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "mock API is disabled")
}

func TestMockAPI_Enabled(t *testing.T) {
	mock := mockapi.NewServer(mockapi.Handlers(mockapi.Options{
		Environment: func() string { return "ci" },
	})...)
	e := setupTestServer(t, RouteOptions{MockAPI: mock})

	rec := get(e, "/api/app/info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"jenkins-test-app","version":"1.0.0","environment":"ci"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/test/result", strings.NewReader(`{"passed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"passed":true`)
}
