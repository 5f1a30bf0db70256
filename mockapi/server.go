package mockapi

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/metrics"
)

// Server answers requests from a stub table. Runtime overrides added with
// Use take precedence over the base table until ResetHandlers.
type Server struct {
	mu        sync.RWMutex
	base      []Stub
	overrides []Stub
	router    *echo.Echo
	metrics   *metrics.Metrics
}

// NewServer returns a Server answering from stubs.
func NewServer(stubs ...Stub) *Server {
	s := &Server{base: stubs}
	s.rebuild()
	return s
}

// WithMetrics counts every answered request on m.
func (s *Server) WithMetrics(m *metrics.Metrics) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	return s
}

// Use prepends runtime overrides. Among overrides for the same endpoint the
// most recently added wins.
func (s *Server) Use(stubs ...Stub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(append([]Stub(nil), stubs...), s.overrides...)
	s.rebuild()
}

// ResetHandlers drops all runtime overrides.
func (s *Server) ResetHandlers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = nil
	s.rebuild()
}

// ReplaceHandlers swaps the base table and drops all runtime overrides.
func (s *Server) ReplaceHandlers(stubs ...Stub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = stubs
	s.overrides = nil
	s.rebuild()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	router := s.router
	s.mu.RUnlock()
	router.ServeHTTP(w, r)
}

// rebuild compiles the current table into a fresh router. Callers hold mu
// or own s exclusively.
func (s *Server) rebuild() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.observe)

	e.RouteNotFound("/*", func(c echo.Context) error {
		logging.WarningLogger.Printf("mock API: unhandled request %s %s", c.Request().Method, c.Request().URL.Path)
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no stub for " + c.Request().Method + " " + c.Request().URL.Path})
	})

	for _, stub := range s.base {
		e.Add(stub.Method, stub.Path, stub.Handler, stub.Middleware...)
	}
	// Registering a route again replaces it, so the first override goes last.
	for i := len(s.overrides) - 1; i >= 0; i-- {
		stub := s.overrides[i]
		e.Add(stub.Method, stub.Path, stub.Handler, stub.Middleware...)
	}

	s.router = e
}

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		s.mu.RLock()
		m := s.metrics
		s.mu.RUnlock()
		m.RecordMockAPIRequest(c.Request().Method, c.Path(), status)

		return err
	}
}
