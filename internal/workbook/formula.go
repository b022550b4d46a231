package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidateFormula performs the syntax checks applied before a formula is
// written: non-empty, balanced parentheses, balanced double quotes. The
// leading '=' is optional; it is stripped before the cell is written.
func ValidateFormula(formula string) error {
	expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(formula), "="))
	if expr == "" {
		return fmt.Errorf("formula is empty")
	}

	depth := 0
	inString := false
	for _, r := range expr {
		switch r {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
				if depth < 0 {
					return fmt.Errorf("unbalanced parentheses in formula")
				}
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses in formula")
	}
	if inString {
		return fmt.Errorf("unterminated string literal in formula")
	}
	return nil
}

// ApplyFormula validates and writes a formula to a cell, then forces a
// recalculation of the cell so the stored workbook carries a result.
func ApplyFormula(path, sheet, cell, formula string) error {
	if err := ValidateFormula(formula); err != nil {
		return err
	}
	expr := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
			return fmt.Errorf("cell %q: %w", cell, err)
		}
		if err := f.SetCellFormula(sheet, cell, expr); err != nil {
			return fmt.Errorf("set formula: %w", err)
		}
		if _, err := f.CalcCellValue(sheet, cell); err != nil {
			return fmt.Errorf("formula %q does not evaluate: %w", formula, err)
		}
		return nil
	})
}
