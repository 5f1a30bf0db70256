package utils

import (
	"os"
	"strings"
)

// BuildEnvVar names the variable holding the build environment shown on the page.
const BuildEnvVar = "APP_ENV"

// MissingEnvironment is what BuildEnvironment reports when BuildEnvVar is not set.
const MissingEnvironment = "(unset)"

// BuildEnvironment returns the raw value of BuildEnvVar. The value is not
// validated or defaulted; an unset variable yields MissingEnvironment and a
// variable set to "" yields "".
func BuildEnvironment() string {
	value, ok := os.LookupEnv(BuildEnvVar)
	if !ok {
		return MissingEnvironment
	}
	return value
}

// IsProductionEnvironment detects if the application is running in production
func IsProductionEnvironment() bool {
	for _, envVar := range []string{BuildEnvVar, "ENVIRONMENT", "GO_ENV"} {
		value := strings.ToLower(os.Getenv(envVar))
		if value == "production" || value == "prod" {
			return true
		}
	}

	// Check port-based detection
	return isPortProduction()
}

// isPortProduction checks if running on production ports
func isPortProduction() bool {
	port := os.Getenv("PORT")
	return port == "443" || port == "80"
}
