package handlers

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/metrics"
	"github.com/84adam/jenkins-test-app/ui"
)

// Echo is the global echo instance used for routing
var Echo *echo.Echo

// Asset paths referenced by the page shell
const (
	StylesheetPath = "/static/app.css"
	ScriptPath     = "/static/app.js"
)

// ErrorResponse is the JSON body of errors produced outside the mock API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSONError sends a standard JSON error response
func JSONError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Message: message})
}

// IndexPage renders the demo page. The environment is read on every
// request, so responses are never cached.
func IndexPage(env func() string, m *metrics.Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := &ui.App{Env: env, Notifier: ui.Discard}

		var buf bytes.Buffer
		err := ui.RenderDocument(&buf, app.Render(), ui.DocumentOptions{
			Stylesheets: []string{StylesheetPath},
			Scripts:     []string{ScriptPath},
		})
		m.RecordPageRender(err)
		if err != nil {
			logging.ErrorLogger.Printf("Failed to render page: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
		}

		c.Response().Header().Set("Cache-Control", "no-store")
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
}

// MockAPIDisabled answers /api/* when the mock API is switched off
func MockAPIDisabled(c echo.Context) error {
	return JSONError(c, http.StatusNotFound, "mock API is disabled")
}
