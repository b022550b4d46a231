package handlers

import (
	"net/http"

	"sheetbox/internal/workbook"

	"github.com/labstack/echo/v4"
)

type fileRequest struct {
	Filepath string `json:"filepath"`
}

type sheetRequest struct {
	Filepath  string `json:"filepath"`
	SheetName string `json:"sheetName"`
}

func (h *Handler) CreateWorkbook(c echo.Context) error {
	var req fileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.Create(p)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "created workbook "+h.d.Resolve(req.Filepath))
}

func (h *Handler) WorkbookMetadata(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	var info *workbook.Info
	err := h.d.ReadCall(c.Request().Context(), fp, func(p string) error {
		var err error
		info, err = workbook.Metadata(p)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *Handler) CreateSheet(c echo.Context) error {
	var req sheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.CreateSheet(p, req.SheetName)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "created sheet "+req.SheetName)
}

func (h *Handler) DeleteSheet(c echo.Context) error {
	var req sheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.DeleteSheet(p, req.SheetName)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "deleted sheet "+req.SheetName)
}

func (h *Handler) RenameSheet(c echo.Context) error {
	var req struct {
		Filepath string `json:"filepath"`
		OldName  string `json:"oldName"`
		NewName  string `json:"newName"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.RenameSheet(p, req.OldName, req.NewName)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "renamed sheet "+req.OldName+" to "+req.NewName)
}

func (h *Handler) CopySheet(c echo.Context) error {
	var req struct {
		Filepath    string `json:"filepath"`
		SourceSheet string `json:"sourceSheet"`
		TargetSheet string `json:"targetSheet"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.CopySheet(p, req.SourceSheet, req.TargetSheet)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "copied sheet "+req.SourceSheet+" to "+req.TargetSheet)
}

func (h *Handler) ReadData(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	sheet := c.QueryParam("sheet")
	start := c.QueryParam("start")
	if start == "" {
		start = "A1"
	}
	end := c.QueryParam("end")

	var rows [][]string
	err := h.d.ReadCall(c.Request().Context(), fp, func(p string) error {
		var err error
		rows, err = workbook.ReadRange(p, sheet, start, end)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) WriteData(c echo.Context) error {
	var req struct {
		Filepath  string  `json:"filepath"`
		SheetName string  `json:"sheetName"`
		StartCell string  `json:"startCell"`
		Rows      [][]any `json:"rows"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	if req.StartCell == "" {
		req.StartCell = "A1"
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.WriteRows(p, req.SheetName, req.StartCell, req.Rows)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "data written")
}

func (h *Handler) ApplyFormula(c echo.Context) error {
	var req struct {
		Filepath  string `json:"filepath"`
		SheetName string `json:"sheetName"`
		Cell      string `json:"cell"`
		Formula   string `json:"formula"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	if err := workbook.ValidateFormula(req.Formula); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.ApplyFormula(p, req.SheetName, req.Cell, req.Formula)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "applied formula to "+req.Cell)
}

func (h *Handler) ValidateFormula(c echo.Context) error {
	var req struct {
		Formula string `json:"formula"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := workbook.ValidateFormula(req.Formula); err != nil {
		return c.JSON(http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": true})
}

type rangeRequest struct {
	Filepath  string `json:"filepath"`
	SheetName string `json:"sheetName"`
	StartCell string `json:"startCell"`
	EndCell   string `json:"endCell"`
}

func (h *Handler) MergeCells(c echo.Context) error {
	var req rangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.MergeRange(p, req.SheetName, req.StartCell, req.EndCell)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "merged "+req.StartCell+":"+req.EndCell)
}

func (h *Handler) UnmergeCells(c echo.Context) error {
	var req rangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.UnmergeRange(p, req.SheetName, req.StartCell, req.EndCell)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "unmerged "+req.StartCell+":"+req.EndCell)
}

func (h *Handler) MergedRanges(c echo.Context) error {
	fp := c.QueryParam("filepath")
	if err := requireFilepath(fp); err != nil {
		return err
	}
	sheet := c.QueryParam("sheet")

	var ranges []string
	err := h.d.ReadCall(c.Request().Context(), fp, func(p string) error {
		var err error
		ranges, err = workbook.MergedRanges(p, sheet)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"merged": ranges})
}

type spanRequest struct {
	Filepath  string `json:"filepath"`
	SheetName string `json:"sheetName"`
	Start     int    `json:"start"`
	Count     int    `json:"count"`
}

func (r *spanRequest) countOrDefault() int {
	if r.Count <= 0 {
		return 1
	}
	return r.Count
}

func (h *Handler) InsertRows(c echo.Context) error {
	return h.spanCall(c, workbook.InsertRows, "rows inserted")
}

func (h *Handler) DeleteRows(c echo.Context) error {
	return h.spanCall(c, workbook.DeleteRows, "rows deleted")
}

func (h *Handler) InsertCols(c echo.Context) error {
	return h.spanCall(c, workbook.InsertCols, "columns inserted")
}

func (h *Handler) DeleteCols(c echo.Context) error {
	return h.spanCall(c, workbook.DeleteCols, "columns deleted")
}

func (h *Handler) spanCall(c echo.Context, op func(path, sheet string, start, count int) error, msg string) error {
	var req spanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return op(p, req.SheetName, req.Start, req.countOrDefault())
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, msg)
}

func (h *Handler) FormatRange(c echo.Context) error {
	var req struct {
		Filepath  string               `json:"filepath"`
		SheetName string               `json:"sheetName"`
		StartCell string               `json:"startCell"`
		EndCell   string               `json:"endCell"`
		Format    workbook.RangeFormat `json:"format"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := requireFilepath(req.Filepath); err != nil {
		return err
	}
	err := h.d.WriteCall(c.Request().Context(), req.Filepath, func(p string) error {
		return workbook.FormatRange(p, req.SheetName, req.StartCell, req.EndCell, req.Format)
	})
	if err != nil {
		return mapError(err)
	}
	return message(c, "range formatted")
}
