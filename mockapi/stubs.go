// Package mockapi simulates the backend the demo page may one day talk to.
// The page never calls it; the endpoint table exists for tests and for
// pipeline smoke checks, and its contract is provisional.
package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/84adam/jenkins-test-app/config"
	"github.com/84adam/jenkins-test-app/monitoring"
	"github.com/84adam/jenkins-test-app/ui"
	"github.com/84adam/jenkins-test-app/utils"
)

// Fixed stub values.
const (
	AppName              = "jenkins-test-app"
	DefaultEnvironment   = "development"
	SlowEnvironment      = "slow-test"
	ResultSubmitted      = "Jenkins CI/CD 테스트 결과가 성공적으로 제출되었습니다"
	IntentionalError     = "의도적인 테스트 에러"
	ServiceUnavailable   = "서비스 일시 중단"
	AuthenticationFailed = "인증 실패"
	AuthenticationNeeded = "인증이 필요합니다"
	InvalidRequest       = "잘못된 요청입니다"

	TestUsername = "testuser"
	TestPassword = "testpass"
	TestUserID   = 1
	TestEmail    = "test@example.com"
	TestRole     = "developer"
)

// TimestampLayout matches ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Stub binds one endpoint to a canned response.
type Stub struct {
	Method     string
	Path       string
	Handler    echo.HandlerFunc
	Middleware []echo.MiddlewareFunc
}

// Options parameterises the templated parts of the default stubs.
type Options struct {
	// Environment reports the environment for /api/app/info. An empty
	// value is reported as DefaultEnvironment.
	Environment func() string
	SigningKey  []byte
	TokenTTL    time.Duration
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Environment == nil {
		o.Environment = func() string { return os.Getenv(utils.BuildEnvVar) }
	}
	if len(o.SigningKey) == 0 {
		o.SigningKey = []byte(config.DefaultMockAPISecret)
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Handlers returns the default endpoint table.
func Handlers(opts Options) []Stub {
	opts = opts.withDefaults()

	return []Stub{
		{Method: http.MethodGet, Path: "/api/app/info", Handler: appInfo(opts)},
		{Method: http.MethodGet, Path: "/api/health", Handler: health(opts)},
		{Method: http.MethodPost, Path: "/api/test/result", Handler: submitResult},
		{Method: http.MethodGet, Path: "/api/error", Handler: intentionalError},
		{Method: http.MethodPost, Path: "/api/auth/login", Handler: login(opts)},
		{
			Method:     http.MethodGet,
			Path:       "/api/user/profile",
			Handler:    profile,
			Middleware: []echo.MiddlewareFunc{requireToken(opts)},
		},
	}
}

// ErrorHandlers overrides the health check with an outage.
func ErrorHandlers() []Stub {
	return []Stub{
		{
			Method: http.MethodGet,
			Path:   "/api/health",
			Handler: func(c echo.Context) error {
				return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: ServiceUnavailable})
			},
		},
	}
}

// SlowHandlers overrides app info with a response delayed by delay. A
// cancelled request stops waiting.
func SlowHandlers(delay time.Duration) []Stub {
	return []Stub{
		{
			Method: http.MethodGet,
			Path:   "/api/app/info",
			Handler: func(c echo.Context) error {
				timer := time.NewTimer(delay)
				defer timer.Stop()

				select {
				case <-c.Request().Context().Done():
					return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
				case <-timer.C:
				}

				return c.JSON(http.StatusOK, AppInfo{
					Name:        AppName,
					Version:     ui.Version,
					Environment: SlowEnvironment,
				})
			},
		},
	}
}

func appInfo(opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		env := opts.Environment()
		if env == "" {
			env = DefaultEnvironment
		}
		return c.JSON(http.StatusOK, AppInfo{
			Name:        AppName,
			Version:     ui.Version,
			Environment: env,
		})
	}
}

func health(opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    monitoring.StatusHealthy,
			Timestamp: opts.Now().UTC().Format(TimestampLayout),
		})
	}
}

func submitResult(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(body) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: InvalidRequest})
	}

	return c.JSON(http.StatusOK, ResultResponse{
		Success: true,
		Message: ResultSubmitted,
		Data:    json.RawMessage(body),
	})
}

func intentionalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: IntentionalError})
}

func login(opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		var request LoginRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&request); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: InvalidRequest})
		}

		if request.Username != TestUsername || request.Password != TestPassword {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: AuthenticationFailed})
		}

		user := User{ID: TestUserID, Username: TestUsername}
		token, err := issueToken(opts, user)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
		}

		return c.JSON(http.StatusOK, LoginResponse{
			Success: true,
			User:    user,
			Token:   token,
		})
	}
}

func profile(c echo.Context) error {
	claims, ok := claimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: AuthenticationNeeded})
	}

	return c.JSON(http.StatusOK, Profile{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    TestEmail,
		Role:     TestRole,
	})
}
