package testutils

import (
	"testing"

	"github.com/nfrund/myprofile/internal/config"
)

// ConfigForTests sets the given environment for the duration of the test and returns
// the configuration read from it. Unset keys get their defaults.
func ConfigForTests(t *testing.T, env map[string]string) *config.Config {
	t.Helper()

	for _, key := range []string{"APP_ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "SESSION_SECRET", "PREVIEW_MAX_BYTES", "WORKSPACE_IDLE_TTL", "PROFILE_TOKEN", "TRACING_ENABLED", "TRACING_ZIPKIN_URL", "TRACING_SERVICE_NAME"} {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
	return config.FromEnv()
}
