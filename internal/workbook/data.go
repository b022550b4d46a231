package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteRows writes rows into sheet starting at startCell, row-major. Cells
// beyond the written rectangle are left untouched.
func WriteRows(path, sheet, startCell string, rows [][]any) error {
	startCol, startRow, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return fmt.Errorf("start cell %q: %w", startCell, err)
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		for i, row := range rows {
			for j, value := range row {
				cell, err := excelize.CoordinatesToCellName(startCol+j, startRow+i)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("set %s: %w", cell, err)
				}
			}
		}
		return nil
	})
}

// ReadRange returns the displayed values of the rectangle from startCell to
// endCell inclusive. An empty endCell expands to the sheet's used dimension.
// Missing cells read as empty strings.
func ReadRange(path, sheet, startCell, endCell string) ([][]string, error) {
	var out [][]string
	err := read(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		startCol, startRow, err := excelize.CellNameToCoordinates(startCell)
		if err != nil {
			return fmt.Errorf("start cell %q: %w", startCell, err)
		}

		end := endCell
		if end == "" {
			end, err = lastUsedCell(f, sheet, startCell)
			if err != nil {
				return err
			}
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(end)
		if err != nil {
			return fmt.Errorf("end cell %q: %w", end, err)
		}
		if endCol < startCol || endRow < startRow {
			return fmt.Errorf("range %s:%s is inverted", startCell, end)
		}

		for r := startRow; r <= endRow; r++ {
			row := make([]string, 0, endCol-startCol+1)
			for c := startCol; c <= endCol; c++ {
				cell, err := excelize.CoordinatesToCellName(c, r)
				if err != nil {
					return err
				}
				v, err := f.GetCellValue(sheet, cell)
				if err != nil {
					return fmt.Errorf("get %s: %w", cell, err)
				}
				row = append(row, v)
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lastUsedCell computes the bottom-right corner of the sheet's populated
// area. The stored dimension attribute is not trusted because it is not
// updated on writes. An empty sheet collapses the range to the start cell.
func lastUsedCell(f *excelize.File, sheet, startCell string) (string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", err
	}
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	if len(rows) == 0 || maxCol == 0 {
		return startCell, nil
	}
	return excelize.CoordinatesToCellName(maxCol, len(rows))
}
