package mockapi

import (
	"encoding/json"

	"github.com/84adam/jenkins-test-app/monitoring"
)

// AppInfo is the body of GET /api/app/info.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    monitoring.HealthStatus `json:"status"`
	Timestamp string                  `json:"timestamp"`
}

// ResultResponse acknowledges a submitted test result and echoes it back.
type ResultResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User identifies the mock account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned for valid credentials.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Profile is the body of GET /api/user/profile.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ErrorResponse is the body of every non-2xx stub response.
type ErrorResponse struct {
	Error string `json:"error"`
}
