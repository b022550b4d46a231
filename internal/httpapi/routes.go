package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *API) registerRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"ok":        true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := e.Group("/api/v1")

	v1.GET("/files", a.handler.ListFiles)
	v1.GET("/files/exists", a.handler.FileExists)
	v1.DELETE("/files", a.handler.DeleteFile)

	v1.POST("/workbooks", a.handler.CreateWorkbook)
	v1.GET("/workbooks/metadata", a.handler.WorkbookMetadata)

	v1.POST("/workbooks/sheets", a.handler.CreateSheet)
	v1.DELETE("/workbooks/sheets", a.handler.DeleteSheet)
	v1.POST("/workbooks/sheets/rename", a.handler.RenameSheet)
	v1.POST("/workbooks/sheets/copy", a.handler.CopySheet)

	v1.GET("/workbooks/data", a.handler.ReadData)
	v1.POST("/workbooks/data", a.handler.WriteData)

	v1.POST("/workbooks/formula", a.handler.ApplyFormula)
	v1.POST("/workbooks/formula/validate", a.handler.ValidateFormula)

	v1.POST("/workbooks/range/copy", a.handler.CopyRange)
	v1.POST("/workbooks/range/delete", a.handler.DeleteRange)
	v1.GET("/workbooks/range/validate", a.handler.ValidateRange)
	v1.GET("/workbooks/validations", a.handler.DataValidations)

	v1.POST("/workbooks/merge", a.handler.MergeCells)
	v1.POST("/workbooks/unmerge", a.handler.UnmergeCells)
	v1.GET("/workbooks/merged", a.handler.MergedRanges)

	v1.POST("/workbooks/rows/insert", a.handler.InsertRows)
	v1.POST("/workbooks/rows/delete", a.handler.DeleteRows)
	v1.POST("/workbooks/cols/insert", a.handler.InsertCols)
	v1.POST("/workbooks/cols/delete", a.handler.DeleteCols)

	v1.POST("/workbooks/format", a.handler.FormatRange)
}
