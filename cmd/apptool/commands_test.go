package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/84adam/jenkins-test-app/logging"
	"github.com/84adam/jenkins-test-app/mockapi"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "--env", "test")

	require.NoError(t, err)
	assert.Contains(t, out, `<div class="App">`)
	assert.Contains(t, out, "<p>빌드 환경: test</p>")
	assert.NotContains(t, out, "<!DOCTYPE html>")
}

func TestRenderCommand_Document(t *testing.T) {
	t.Setenv("APP_ENV", "staging")

	out, err := execute(t, "render", "--document")

	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Jenkins CI/CD 테스트 앱</title>")
	assert.Contains(t, out, "<p>빌드 환경: staging</p>")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "jenkins-test-app 1.0.0\n", out)
}

func TestProbeCommand(t *testing.T) {
	logging.Discard()
	stubs := mockapi.NewServer(mockapi.Handlers(mockapi.Options{
		Environment: func() string { return "test" },
	})...)
	srv := httptest.NewServer(stubs)
	defer srv.Close()

	out, err := execute(t, "probe", "--url", srv.URL, "--login")

	require.NoError(t, err)
	assert.Contains(t, out, "app:     jenkins-test-app 1.0.0 (test)")
	assert.Contains(t, out, "health:  healthy at ")
	assert.Contains(t, out, "profile: testuser <test@example.com> (developer)")

	stubs.Use(mockapi.ErrorHandlers()...)
	_, err = execute(t, "probe", "--url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health: unexpected status 503")
}
