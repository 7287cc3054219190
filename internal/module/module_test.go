package module

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/internal/config"
	"github.com/nfrund/myprofile/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingModule struct {
	BaseModule
	name        string
	log         *[]string
	shutdownErr error
}

func (m *recordingModule) Name() string { return m.name }

func (m *recordingModule) Register(reg *registry.Registry) error {
	*m.log = append(*m.log, "register "+m.name)
	return nil
}

func (m *recordingModule) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	*m.log = append(*m.log, "boot "+m.name)
	group.GET("", func(c echo.Context) error { return c.String(http.StatusOK, m.name) })
	return nil
}

func (m *recordingModule) Shutdown(ctx context.Context) error {
	*m.log = append(*m.log, "shutdown "+m.name)
	return m.shutdownErr
}

func TestLifecycle(t *testing.T) {
	var log []string
	a := &recordingModule{name: "a", log: &log}
	b := &recordingModule{name: "b", log: &log, shutdownErr: errors.New("stuck")}
	e := echo.New()

	require.NoError(t, BootAll(context.Background(), e, registry.New(&config.Config{}), a, b))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/b", nil))
	assert.Equal(t, "b", rec.Body.String())

	err := ShutdownAll(context.Background(), a, b)
	assert.ErrorContains(t, err, "shutdown module b: stuck")
	assert.Equal(t, []string{"register a", "register b", "boot a", "boot b", "shutdown b", "shutdown a"}, log)
}
