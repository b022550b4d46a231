package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MergeRange merges the rectangle from startCell to endCell into one cell.
func MergeRange(path, sheet, startCell, endCell string) error {
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		return f.MergeCell(sheet, startCell, endCell)
	})
}

// UnmergeRange splits a previously merged rectangle.
func UnmergeRange(path, sheet, startCell, endCell string) error {
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		return f.UnmergeCell(sheet, startCell, endCell)
	})
}

// MergedRanges lists the merged rectangles of a sheet as "A1:B2" strings.
func MergedRanges(path, sheet string) ([]string, error) {
	var out []string
	err := read(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		merged, err := f.GetMergeCells(sheet)
		if err != nil {
			return err
		}
		out = make([]string, 0, len(merged))
		for _, m := range merged {
			out = append(out, m.GetStartAxis()+":"+m.GetEndAxis())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsertRows inserts count empty rows before startRow (1-based).
func InsertRows(path, sheet string, startRow, count int) error {
	if startRow < 1 || count < 1 {
		return fmt.Errorf("invalid row insert: start %d, count %d", startRow, count)
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		return f.InsertRows(sheet, startRow, count)
	})
}

// DeleteRows removes count rows starting at startRow (1-based).
func DeleteRows(path, sheet string, startRow, count int) error {
	if startRow < 1 || count < 1 {
		return fmt.Errorf("invalid row delete: start %d, count %d", startRow, count)
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			// Rows shift up after each removal, so the start row is removed
			// count times.
			if err := f.RemoveRow(sheet, startRow); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertCols inserts count empty columns before startCol (1-based).
func InsertCols(path, sheet string, startCol, count int) error {
	if startCol < 1 || count < 1 {
		return fmt.Errorf("invalid column insert: start %d, count %d", startCol, count)
	}
	name, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		return err
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		return f.InsertCols(sheet, name, count)
	})
}

// DeleteCols removes count columns starting at startCol (1-based).
func DeleteCols(path, sheet string, startCol, count int) error {
	if startCol < 1 || count < 1 {
		return fmt.Errorf("invalid column delete: start %d, count %d", startCol, count)
	}
	name, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		return err
	}
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := f.RemoveCol(sheet, name); err != nil {
				return err
			}
		}
		return nil
	})
}
