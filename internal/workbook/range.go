package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellData captures everything that moves when a cell is copied or shifted.
type cellData struct {
	value   string
	formula string
	style   int
}

func captureCell(f *excelize.File, sheet, cell string) (cellData, error) {
	var d cellData
	var err error
	if d.value, err = f.GetCellValue(sheet, cell); err != nil {
		return d, fmt.Errorf("get %s: %w", cell, err)
	}
	if d.formula, err = f.GetCellFormula(sheet, cell); err != nil {
		return d, fmt.Errorf("get formula %s: %w", cell, err)
	}
	if d.style, err = f.GetCellStyle(sheet, cell); err != nil {
		return d, fmt.Errorf("get style %s: %w", cell, err)
	}
	return d, nil
}

func restoreCell(f *excelize.File, sheet, cell string, d cellData) error {
	if d.formula != "" {
		if err := f.SetCellFormula(sheet, cell, d.formula); err != nil {
			return fmt.Errorf("set formula %s: %w", cell, err)
		}
	} else if err := f.SetCellDefault(sheet, cell, d.value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, d.style); err != nil {
		return fmt.Errorf("set style %s: %w", cell, err)
	}
	return nil
}

func clearCell(f *excelize.File, sheet, cell string) error {
	if err := f.SetCellValue(sheet, cell, nil); err != nil {
		return fmt.Errorf("clear %s: %w", cell, err)
	}
	return nil
}

// parseRange resolves a start/end cell pair to coordinates. An empty endCell
// collapses the range to the start cell.
func parseRange(startCell, endCell string) (sc, sr, ec, er int, err error) {
	sc, sr, err = excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("start cell %q: %w", startCell, err)
	}
	if endCell == "" {
		return sc, sr, sc, sr, nil
	}
	ec, er, err = excelize.CellNameToCoordinates(endCell)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("end cell %q: %w", endCell, err)
	}
	if ec < sc || er < sr {
		return 0, 0, 0, 0, fmt.Errorf("range %s:%s is inverted", startCell, endCell)
	}
	return sc, sr, ec, er, nil
}

// CopyRange copies the rectangle from srcStart to srcEnd so its top-left
// corner lands on dstStart, optionally on another sheet. Values, formulas and
// styles travel together; the source is captured before anything is written,
// so overlapping source and target ranges copy correctly.
func CopyRange(path, sheet, srcStart, srcEnd, dstStart, dstSheet string) error {
	if dstSheet == "" {
		dstSheet = sheet
	}
	sc, sr, ec, er, err := parseRange(srcStart, srcEnd)
	if err != nil {
		return err
	}
	dc, dr, err := excelize.CellNameToCoordinates(dstStart)
	if err != nil {
		return fmt.Errorf("target cell %q: %w", dstStart, err)
	}

	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if err := requireSheet(f, dstSheet); err != nil {
			return err
		}

		buf := make([][]cellData, 0, er-sr+1)
		for r := sr; r <= er; r++ {
			row := make([]cellData, 0, ec-sc+1)
			for c := sc; c <= ec; c++ {
				cell, err := excelize.CoordinatesToCellName(c, r)
				if err != nil {
					return err
				}
				d, err := captureCell(f, sheet, cell)
				if err != nil {
					return err
				}
				row = append(row, d)
			}
			buf = append(buf, row)
		}

		for i, row := range buf {
			for j, d := range row {
				cell, err := excelize.CoordinatesToCellName(dc+j, dr+i)
				if err != nil {
					return err
				}
				if err := restoreCell(f, dstSheet, cell, d); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteRange removes the rectangle from startCell to endCell and closes the
// gap: "up" pulls the cells below it up, "left" pulls the cells to its right
// left. Only cells in line with the deleted block move.
func DeleteRange(path, sheet, startCell, endCell, shift string) error {
	if shift == "" {
		shift = "up"
	}
	if shift != "up" && shift != "left" {
		return fmt.Errorf("invalid shift direction %q: want \"up\" or \"left\"", shift)
	}
	sc, sr, ec, er, err := parseRange(startCell, endCell)
	if err != nil {
		return err
	}

	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		end, err := lastUsedCell(f, sheet, startCell)
		if err != nil {
			return err
		}
		lastCol, lastRow, err := excelize.CellNameToCoordinates(end)
		if err != nil {
			return err
		}

		if shift == "up" {
			height := er - sr + 1
			for c := sc; c <= ec; c++ {
				for r := sr; r <= lastRow; r++ {
					if err := shiftCell(f, sheet, c, r, c, r+height, r+height <= lastRow); err != nil {
						return err
					}
				}
			}
			return nil
		}

		width := ec - sc + 1
		for r := sr; r <= er; r++ {
			for c := sc; c <= lastCol; c++ {
				if err := shiftCell(f, sheet, c, r, c+width, r, c+width <= lastCol); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// shiftCell moves the cell at the source coordinates onto the destination
// coordinates, or clears the destination when the source is past the used
// area.
func shiftCell(f *excelize.File, sheet string, dstCol, dstRow, srcCol, srcRow int, haveSrc bool) error {
	dst, err := excelize.CoordinatesToCellName(dstCol, dstRow)
	if err != nil {
		return err
	}
	if !haveSrc {
		return clearCell(f, sheet, dst)
	}
	src, err := excelize.CoordinatesToCellName(srcCol, srcRow)
	if err != nil {
		return err
	}
	d, err := captureCell(f, sheet, src)
	if err != nil {
		return err
	}
	return restoreCell(f, sheet, dst, d)
}

// RangeInfo describes a validated cell range against the sheet's used area.
type RangeInfo struct {
	Range     string `json:"range"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	UsedRange string `json:"usedRange"`
}

// ValidateRange checks that startCell/endCell form a well-formed, non-inverted
// range on an existing sheet and reports its shape alongside the sheet's used
// area.
func ValidateRange(path, sheet, startCell, endCell string) (*RangeInfo, error) {
	sc, sr, ec, er, err := parseRange(startCell, endCell)
	if err != nil {
		return nil, err
	}

	var info RangeInfo
	err = read(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		used, err := lastUsedCell(f, sheet, "A1")
		if err != nil {
			return err
		}
		info = RangeInfo{
			Range:     startCell,
			Rows:      er - sr + 1,
			Cols:      ec - sc + 1,
			UsedRange: "A1",
		}
		if endCell != "" {
			info.Range = startCell + ":" + endCell
		}
		if used != "A1" {
			info.UsedRange = "A1:" + used
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ValidationRule is one data-validation rule attached to a sheet.
type ValidationRule struct {
	Range      string `json:"range"`
	Type       string `json:"type"`
	Operator   string `json:"operator,omitempty"`
	Formula1   string `json:"formula1,omitempty"`
	Formula2   string `json:"formula2,omitempty"`
	AllowBlank bool   `json:"allowBlank"`
}

// DataValidations lists the data-validation rules of a sheet. Sheets without
// rules return an empty slice.
func DataValidations(path, sheet string) ([]ValidationRule, error) {
	rules := []ValidationRule{}
	err := read(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		dvs, err := f.GetDataValidations(sheet)
		if err != nil {
			return err
		}
		for _, dv := range dvs {
			if dv == nil {
				continue
			}
			rules = append(rules, ValidationRule{
				Range:      dv.Sqref,
				Type:       dv.Type,
				Operator:   dv.Operator,
				Formula1:   stripFormulaTag(dv.Formula1, "formula1"),
				Formula2:   stripFormulaTag(dv.Formula2, "formula2"),
				AllowBlank: dv.AllowBlank,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// stripFormulaTag removes the XML element wrapper that data-validation
// formulas are stored with.
func stripFormulaTag(s, tag string) string {
	s = strings.TrimPrefix(s, "<"+tag+">")
	return strings.TrimSuffix(s, "</"+tag+">")
}
