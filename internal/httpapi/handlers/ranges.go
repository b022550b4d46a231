package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"sheetbox/internal/workbook"

	"github.com/labstack/echo/v4"
)

func (h *Handler) CopyRange(c echo.Context) error {
	var req struct {
		Filepath    string `json:"filepath"`
		SheetName   string `json:"sheetName"`
		SourceStart string `json:"sourceStart"`
		SourceEnd   string `json:"sourceEnd"`
		TargetStart string `json:"targetStart"`
		TargetSheet string `json:"targetSheet"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.CopyRange(p, req.SheetName, req.SourceStart, req.SourceEnd, req.TargetStart, req.TargetSheet)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "copied "+req.SourceStart+":"+req.SourceEnd+" to "+req.TargetStart)
}

func (h *Handler) DeleteRange(c echo.Context) error {
	var req struct {
		Filepath       string `json:"filepath"`
		SheetName      string `json:"sheetName"`
		StartCell      string `json:"startCell"`
		EndCell        string `json:"endCell"`
		ShiftDirection string `json:"shiftDirection"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.DeleteRange(p, req.SheetName, req.StartCell, req.EndCell, req.ShiftDirection)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "deleted "+req.StartCell+":"+req.EndCell)
}

// ValidateRange reports range problems in the body rather than as an error
// status, the same contract as formula validation. Missing files and sheets
// still map to 404.
func (h *Handler) ValidateRange(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	sheet := c.QueryParam("sheet")
	start := c.QueryParam("start")
	end := c.QueryParam("end")

	var info *workbook.RangeInfo
	err := h.d.ReadCall(c.Request().Context(), fp, func(p string) error {
		var err error
		info, err = workbook.ValidateRange(p, sheet, start, end)
		return err
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]any{"valid": true, "info": info})
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, workbook.ErrSheetNotFound):
		return mapError(err)
	default:
		return c.JSON(http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
	}
}

func (h *Handler) DataValidations(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	sheet := c.QueryParam("sheet")

	var rules []workbook.ValidationRule
	err := h.d.ReadCall(c.Request().Context(), fp, func(p string) error {
		var err error
		rules, err = workbook.DataValidations(p, sheet)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"sheetName":       sheet,
		"validationRules": rules,
	})
}
