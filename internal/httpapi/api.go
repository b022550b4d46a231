// Package httpapi exposes the spreadsheet tools over HTTP. Handlers never
// touch storage directly; every file operation goes through the dispatcher
// so the backing store stays interchangeable.
package httpapi

import (
	"net/http"

	"sheetbox/internal/config"
	"sheetbox/internal/dispatch"
	"sheetbox/internal/httpapi/handlers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type API struct {
	cfg     config.Config
	handler *handlers.Handler
}

func New(cfg config.Config, d *dispatch.Dispatcher) *API {
	return &API{
		cfg:     cfg,
		handler: handlers.New(d),
	}
}

func (a *API) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.BodyLimit(a.cfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderAccept,
			echo.HeaderContentType,
		},
	}))

	a.registerRoutes(e)
	return e
}
