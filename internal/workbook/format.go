package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RangeFormat describes the formatting applied by the format tool. Zero
// values leave the corresponding attribute alone.
type RangeFormat struct {
	Bold      bool    `json:"bold"`
	Italic    bool    `json:"italic"`
	Underline bool    `json:"underline"`
	FontSize  float64 `json:"fontSize"`
	FontColor string  `json:"fontColor"`
	BgColor   string  `json:"bgColor"`
	WrapText  bool    `json:"wrapText"`
	Alignment string  `json:"alignment"`
	NumberFmt string  `json:"numberFormat"`
	MergeCell bool    `json:"mergeCells"`
}

// FormatRange applies fmt to the rectangle from startCell to endCell. An
// empty endCell formats just the start cell.
func FormatRange(path, sheet, startCell, endCell string, rf RangeFormat) error {
	if endCell == "" {
		endCell = startCell
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}

		style := excelize.Style{
			Font: &excelize.Font{
				Bold:   rf.Bold,
				Italic: rf.Italic,
			},
		}
		if rf.Underline {
			style.Font.Underline = "single"
		}
		if rf.FontSize > 0 {
			style.Font.Size = rf.FontSize
		}
		if rf.FontColor != "" {
			style.Font.Color = rf.FontColor
		}
		if rf.BgColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{rf.BgColor},
			}
		}
		if rf.WrapText || rf.Alignment != "" {
			style.Alignment = &excelize.Alignment{
				Horizontal: rf.Alignment,
				WrapText:   rf.WrapText,
				Vertical:   "center",
			}
		}
		if rf.NumberFmt != "" {
			style.CustomNumFmt = &rf.NumberFmt
		}

		styleID, err := f.NewStyle(&style)
		if err != nil {
			return fmt.Errorf("build style: %w", err)
		}
		if err := f.SetCellStyle(sheet, startCell, endCell, styleID); err != nil {
			return fmt.Errorf("apply style: %w", err)
		}
		if rf.MergeCell {
			return f.MergeCell(sheet, startCell, endCell)
		}
		return nil
	})
}
