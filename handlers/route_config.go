package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/84adam/jenkins-test-app/metrics"
	"github.com/84adam/jenkins-test-app/monitoring"
	"github.com/84adam/jenkins-test-app/utils"
	"github.com/84adam/jenkins-test-app/web"
)

// RouteOptions carries the collaborators the routes are bound to
type RouteOptions struct {
	// Env reads the page's build environment; defaults to utils.BuildEnvironment
	Env     func() string
	Metrics *metrics.Metrics
	Health  *monitoring.HealthMonitor
	// MockAPI answers /api/*; nil disables it
	MockAPI http.Handler
}

// RegisterRoutes initializes all routes for the application
func RegisterRoutes(opts RouteOptions) {
	env := opts.Env
	if env == nil {
		env = utils.BuildEnvironment
	}

	// Page and its static assets
	Echo.GET("/", IndexPage(env, opts.Metrics))
	Echo.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	// Operational endpoints
	if opts.Health != nil {
		Echo.GET("/healthz", opts.Health.HealthHandler)
	}
	if opts.Metrics != nil {
		Echo.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	// Mock backend, never called by the page itself
	if opts.MockAPI != nil {
		Echo.Any("/api/*", echo.WrapHandler(opts.MockAPI))
	} else {
		Echo.Any("/api/*", MockAPIDisabled)
	}
}
