package monitoring

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/ui"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck represents a single health check result
type HealthCheck struct {
	Name      string            `json:"name"`
	Status    HealthStatus      `json:"status"`
	Message   string            `json:"message,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// HealthResponse represents the complete health check response
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]HealthCheck `json:"checks"`
	Summary   HealthSummary          `json:"summary"`
}

// HealthSummary provides summary statistics
type HealthSummary struct {
	Total     int `json:"total"`
	Healthy   int `json:"healthy"`
	Degraded  int `json:"degraded"`
	Unhealthy int `json:"unhealthy"`
}

// HealthChecker interface for implementing health checks
type HealthChecker interface {
	Check() HealthCheck
	Name() string
}

// HealthMonitor manages health checks
type HealthMonitor struct {
	mu        sync.RWMutex
	startTime time.Time
	version   string
	checks    map[string]HealthChecker
	now       func() time.Time
}

// NewHealthMonitor creates a health monitor with the page render and
// runtime checks registered
func NewHealthMonitor(version string) *HealthMonitor {
	hm := &HealthMonitor{
		startTime: time.Now(),
		version:   version,
		checks:    make(map[string]HealthChecker),
		now:       time.Now,
	}

	hm.RegisterCheck(&PageRenderCheck{})
	hm.RegisterCheck(&RuntimeHealthCheck{MaxGoroutines: 10000})

	return hm
}

// RegisterCheck registers a health check, replacing one with the same name
func (hm *HealthMonitor) RegisterCheck(checker HealthChecker) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.checks[checker.Name()] = checker
}

// GetHealthStatus performs all health checks and returns the status
func (hm *HealthMonitor) GetHealthStatus() HealthResponse {
	hm.mu.RLock()
	names := make([]string, 0, len(hm.checks))
	for name := range hm.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	checkers := make([]HealthChecker, 0, len(names))
	for _, name := range names {
		checkers = append(checkers, hm.checks[name])
	}
	hm.mu.RUnlock()

	resp := HealthResponse{
		Status:    StatusHealthy,
		Timestamp: hm.now().UTC(),
		Version:   hm.version,
		Uptime:    hm.now().Sub(hm.startTime).Round(time.Second).String(),
		Checks:    make(map[string]HealthCheck, len(checkers)),
	}

	for _, checker := range checkers {
		result := checker.Check()
		resp.Checks[checker.Name()] = result
		resp.Summary.Total++

		switch result.Status {
		case StatusHealthy:
			resp.Summary.Healthy++
		case StatusDegraded:
			resp.Summary.Degraded++
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		default:
			resp.Summary.Unhealthy++
			resp.Status = StatusUnhealthy
		}
	}

	return resp
}

// HealthHandler serves the aggregated status; unhealthy maps to 503
func (hm *HealthMonitor) HealthHandler(c echo.Context) error {
	status := hm.GetHealthStatus()

	code := http.StatusOK
	if status.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
		logging.WarningLogger.Printf("Health check failed: %d of %d checks unhealthy", status.Summary.Unhealthy, status.Summary.Total)
	}

	return c.JSON(code, status)
}

// PageRenderCheck renders the page and verifies the feature list is complete
type PageRenderCheck struct {
	// App defaults to a component with a discarding notifier
	App *ui.App
}

func (p *PageRenderCheck) Name() string { return "page_render" }

func (p *PageRenderCheck) Check() HealthCheck {
	start := time.Now()
	check := HealthCheck{Name: p.Name(), Timestamp: start}

	app := p.App
	if app == nil {
		app = ui.NewApp(ui.Discard)
	}

	tree := app.Render()
	items := countElements(tree.Root, atom.Li)
	err := ui.Render(io.Discard, tree)
	check.Duration = time.Since(start)
	check.Details = map[string]string{"features": fmt.Sprintf("%d", items)}

	switch {
	case err != nil:
		check.Status = StatusUnhealthy
		check.Message = fmt.Sprintf("render failed: %v", err)
	case items != len(ui.Features):
		check.Status = StatusUnhealthy
		check.Message = fmt.Sprintf("expected %d features, rendered %d", len(ui.Features), items)
	default:
		check.Status = StatusHealthy
	}

	return check
}

func countElements(n *html.Node, a atom.Atom) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Type == html.ElementNode && n.DataAtom == a {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, a)
	}
	return count
}

// RuntimeHealthCheck reports Go runtime statistics; too many goroutines degrade it
type RuntimeHealthCheck struct {
	MaxGoroutines int
}

func (r *RuntimeHealthCheck) Name() string { return "runtime" }

func (r *RuntimeHealthCheck) Check() HealthCheck {
	start := time.Now()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	goroutines := runtime.NumGoroutine()

	check := HealthCheck{
		Name:      r.Name(),
		Status:    StatusHealthy,
		Timestamp: start,
		Details: map[string]string{
			"go_version": runtime.Version(),
			"goroutines": fmt.Sprintf("%d", goroutines),
			"heap_alloc": fmt.Sprintf("%d", mem.HeapAlloc),
			"num_gc":     fmt.Sprintf("%d", mem.NumGC),
		},
	}

	if r.MaxGoroutines > 0 && goroutines > r.MaxGoroutines {
		check.Status = StatusDegraded
		check.Message = fmt.Sprintf("%d goroutines exceeds %d", goroutines, r.MaxGoroutines)
	}
	check.Duration = time.Since(start)

	return check
}
