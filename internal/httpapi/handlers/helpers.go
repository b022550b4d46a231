package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"sheetbox/internal/workbook"

	"github.com/labstack/echo/v4"
)

// mapError translates storage and workbook errors to HTTP status codes.
// The error text itself passes through untranslated.
func mapError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, workbook.ErrSheetNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// requireFilepath validates the one parameter every tool shares.
func requireFilepath(fp string) error {
	if strings.TrimSpace(fp) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "filepath is required")
	}
	return nil
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, map[string]any{"message": msg})
}
