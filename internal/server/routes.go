package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/web"
)

// RegisterRoutes sets up the application-level routes. Module routes are added by Boot.
func (s *Server) RegisterRoutes() {
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/profile")
	})
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
