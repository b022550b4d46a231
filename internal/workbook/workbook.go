// Package workbook implements the spreadsheet operations exposed as tools.
// Every exported function takes the local path of the workbook first, so the
// dispatch layer can hand it whatever path the storage backend scoped for
// the call.
package workbook

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound reports a sheet name that is not present in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// update opens the workbook, applies fn, and saves it back to the same path
// when fn succeeds.
func update(path string, fn func(f *excelize.File) error) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// read opens the workbook for inspection only.
func read(path string, fn func(f *excelize.File) error) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return fn(f)
}

func requireSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return nil
}

// Create writes a new empty workbook at path, replacing any file there.
func Create(path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	return nil
}

// SheetInfo describes one worksheet for workbook metadata.
type SheetInfo struct {
	Name      string `json:"name"`
	Dimension string `json:"dimension"`
	Merged    int    `json:"mergedRanges"`
}

// Info is the workbook metadata returned by the metadata tool.
type Info struct {
	Sheets []SheetInfo `json:"sheets"`
}

// Metadata reports the sheets of the workbook with their used dimensions.
func Metadata(path string) (*Info, error) {
	var info Info
	err := read(path, func(f *excelize.File) error {
		for _, name := range f.GetSheetList() {
			end, err := lastUsedCell(f, name, "A1")
			if err != nil {
				return fmt.Errorf("sheet %q dimension: %w", name, err)
			}
			dim := "A1"
			if end != "A1" {
				dim = "A1:" + end
			}
			merged, err := f.GetMergeCells(name)
			if err != nil {
				return fmt.Errorf("sheet %q merged ranges: %w", name, err)
			}
			info.Sheets = append(info.Sheets, SheetInfo{
				Name:      name,
				Dimension: dim,
				Merged:    len(merged),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateSheet adds a worksheet to an existing workbook.
func CreateSheet(path, sheet string) error {
	return update(path, func(f *excelize.File) error {
		if idx, err := f.GetSheetIndex(sheet); err != nil {
			return err
		} else if idx >= 0 {
			return fmt.Errorf("sheet %q already exists", sheet)
		}
		_, err := f.NewSheet(sheet)
		return err
	})
}

// DeleteSheet removes a worksheet. The last remaining sheet cannot be
// deleted; excelize rejects that and the error passes through.
func DeleteSheet(path, sheet string) error {
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, sheet); err != nil {
			return err
		}
		return f.DeleteSheet(sheet)
	})
}

// RenameSheet renames a worksheet in place.
func RenameSheet(path, oldName, newName string) error {
	return update(path, func(f *excelize.File) error {
		if err := requireSheet(f, oldName); err != nil {
			return err
		}
		if idx, err := f.GetSheetIndex(newName); err != nil {
			return err
		} else if idx >= 0 {
			return fmt.Errorf("sheet %q already exists", newName)
		}
		return f.SetSheetName(oldName, newName)
	})
}

// CopySheet duplicates source into a new sheet named target.
func CopySheet(path, source, target string) error {
	return update(path, func(f *excelize.File) error {
		srcIdx, err := f.GetSheetIndex(source)
		if err != nil {
			return err
		}
		if srcIdx < 0 {
			return fmt.Errorf("%w: %q", ErrSheetNotFound, source)
		}
		if idx, err := f.GetSheetIndex(target); err != nil {
			return err
		} else if idx >= 0 {
			return fmt.Errorf("sheet %q already exists", target)
		}
		dstIdx, err := f.NewSheet(target)
		if err != nil {
			return err
		}
		return f.CopySheet(srcIdx, dstIdx)
	})
}
