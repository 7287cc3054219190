package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/myprofile/internal/config"
	appmiddleware "github.com/nfrund/myprofile/internal/middleware"
	"github.com/nfrund/myprofile/internal/module"
	"github.com/nfrund/myprofile/internal/registry"
	"github.com/nfrund/myprofile/internal/rendering"
)

// Dependencies holds everything the server needs to be assembled.
type Dependencies struct {
	Config   config.Provider
	Registry *registry.Registry
	Renderer *rendering.UniversalRenderer
	Modules  []module.Module
	// Echo is optional; a new instance is created when nil.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	reg     *registry.Registry
	modules []module.Module
}

// New creates a new Server instance with the middleware chain installed. Modules are
// booted separately by Boot.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Registry == nil {
		return nil, errors.New("server: config and registry are required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	if deps.Renderer != nil {
		e.Renderer = deps.Renderer
	}
	setupErrorHandling(e)

	s := &Server{
		E:       e,
		Cfg:     deps.Config,
		reg:     deps.Registry,
		modules: deps.Modules,
	}
	s.RegisterRoutes()
	return s, nil
}

// setupErrorHandling installs an error handler that logs unexpected errors with a
// stack trace and answers with a plain status text.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			if he.Internal != nil {
				appmiddleware.FromContext(c.Request().Context()).Debug("HTTP error", "status", code, "error", he.Internal)
			}
		} else {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.String(code, message)
		}
		if err != nil {
			slog.Error("Failed to write error response", "error", err)
		}
	}
}
