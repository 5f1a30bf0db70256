package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvironment(t *testing.T) {
	t.Setenv(BuildEnvVar, "test")
	assert.Equal(t, "test", BuildEnvironment())

	t.Setenv(BuildEnvVar, "")
	assert.Equal(t, "", BuildEnvironment(), "an empty value is passed through verbatim")

	require.NoError(t, os.Unsetenv(BuildEnvVar))
	assert.Equal(t, MissingEnvironment, BuildEnvironment())
}

func TestIsProductionEnvironment(t *testing.T) {
	testCases := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{"APP_ENV production", map[string]string{"APP_ENV": "production"}, true},
		{"GO_ENV prod", map[string]string{"GO_ENV": "PROD"}, true},
		{"port 443", map[string]string{"PORT": "443"}, true},
		{"development", map[string]string{"APP_ENV": "development", "PORT": "3000"}, false},
		{"nothing set", map[string]string{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"APP_ENV", "ENVIRONMENT", "GO_ENV", "PORT"} {
				t.Setenv(key, "")
			}
			for key, value := range tc.envVars {
				t.Setenv(key, value)
			}

			assert.Equal(t, tc.expected, IsProductionEnvironment())
		})
	}
}
