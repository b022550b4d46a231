package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListFiles returns the logical names of all stored workbooks. The pattern
// query is a glob where '*' matches anything; it defaults to "*.xlsx".
func (h *Handler) ListFiles(c echo.Context) error {
	pattern := strings.TrimSpace(c.QueryParam("pattern"))
	if pattern == "" {
		pattern = "*.xlsx"
	}
	if pattern == "*" {
		pattern = ""
	}

	names, err := h.d.ListNames(c.Request().Context(), pattern)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"files": names})
}

func (h *Handler) FileExists(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"filepath": fp,
		"name":     h.d.Resolve(fp),
		"exists":   h.d.Exists(c.Request().Context(), fp),
	})
}

func (h *Handler) DeleteFile(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	if err := h.d.Delete(c.Request().Context(), fp); err != nil {
		return mapError(err)
	}
	return message(c, "deleted "+h.d.Resolve(fp))
}
