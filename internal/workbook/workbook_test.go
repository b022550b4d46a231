package workbook

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func newTestWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := Create(path); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return path
}

func TestCreateAndMetadata(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	info, err := Metadata(path)
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if len(info.Sheets) != 1 || info.Sheets[0].Name != "Sheet1" {
		t.Fatalf("new workbook sheets = %#v, want single Sheet1", info.Sheets)
	}
}

func TestSheetLifecycle(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)

	if err := CreateSheet(path, "Data"); err != nil {
		t.Fatalf("CreateSheet() error = %v", err)
	}
	if err := CreateSheet(path, "Data"); err == nil {
		t.Fatal("CreateSheet() of duplicate name error = nil")
	}
	if err := RenameSheet(path, "Data", "Numbers"); err != nil {
		t.Fatalf("RenameSheet() error = %v", err)
	}
	if err := RenameSheet(path, "Ghost", "X"); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("RenameSheet() of missing sheet error = %v, want ErrSheetNotFound", err)
	}
	if err := CopySheet(path, "Numbers", "NumbersCopy"); err != nil {
		t.Fatalf("CopySheet() error = %v", err)
	}
	if err := DeleteSheet(path, "NumbersCopy"); err != nil {
		t.Fatalf("DeleteSheet() error = %v", err)
	}

	info, err := Metadata(path)
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	var names []string
	for _, s := range info.Sheets {
		names = append(names, s.Name)
	}
	if want := []string{"Sheet1", "Numbers"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("sheets = %#v, want %#v", names, want)
	}
}

func TestWriteAndReadRange(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	rows := [][]any{
		{"name", "qty"},
		{"alpha", 3},
		{"beta", 5},
	}
	if err := WriteRows(path, "Sheet1", "B2", rows); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}

	got, err := ReadRange(path, "Sheet1", "B2", "C4")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	want := [][]string{
		{"name", "qty"},
		{"alpha", "3"},
		{"beta", "5"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadRange() = %#v, want %#v", got, want)
	}

	// Without an end cell the range expands to the used dimension.
	all, err := ReadRange(path, "Sheet1", "B2", "")
	if err != nil {
		t.Fatalf("ReadRange() open-ended error = %v", err)
	}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("open-ended ReadRange() = %#v, want %#v", all, want)
	}
}

func TestReadRange_MissingSheet(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	if _, err := ReadRange(path, "Nope", "A1", "B2"); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("ReadRange() error = %v, want ErrSheetNotFound", err)
	}
}

func TestReadRange_InvertedRange(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	if _, err := ReadRange(path, "Sheet1", "C3", "A1"); err == nil {
		t.Fatal("ReadRange() of inverted range error = nil")
	}
}

func TestValidateFormula(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formula string
		wantErr bool
	}{
		{name: "plain sum", formula: "=SUM(A1:A10)"},
		{name: "no leading equals", formula: "SUM(A1:A10)"},
		{name: "nested calls", formula: `=IF(SUM(A1:A2)>0,"yes","no")`},
		{name: "parens inside string", formula: `=CONCAT("(",A1,")")`},
		{name: "empty", formula: "", wantErr: true},
		{name: "only equals", formula: "=", wantErr: true},
		{name: "unbalanced open", formula: "=SUM(A1:A10", wantErr: true},
		{name: "unbalanced close", formula: "=SUM)A1(", wantErr: true},
		{name: "unterminated string", formula: `=CONCAT("abc`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateFormula(tt.formula)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFormula(%q) error = %v, wantErr %v", tt.formula, err, tt.wantErr)
			}
		})
	}
}

func TestApplyFormula(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	if err := WriteRows(path, "Sheet1", "A1", [][]any{{1}, {2}, {3}}); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}
	if err := ApplyFormula(path, "Sheet1", "B1", "=SUM(A1:A3)"); err != nil {
		t.Fatalf("ApplyFormula() error = %v", err)
	}

	var formula string
	err := read(path, func(f *excelize.File) error {
		var err error
		formula, err = f.GetCellFormula("Sheet1", "B1")
		return err
	})
	if err != nil {
		t.Fatalf("GetCellFormula() error = %v", err)
	}
	if formula != "SUM(A1:A3)" {
		t.Fatalf("stored formula = %q, want SUM(A1:A3)", formula)
	}

	// Formulas that parse but cannot evaluate are rejected before save.
	if err := ApplyFormula(path, "Sheet1", "B2", "=NOSUCHFN(A1)"); err == nil {
		t.Fatal("ApplyFormula() of unknown function error = nil")
	}
}

func TestMergeLifecycle(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	if err := MergeRange(path, "Sheet1", "A1", "B2"); err != nil {
		t.Fatalf("MergeRange() error = %v", err)
	}

	ranges, err := MergedRanges(path, "Sheet1")
	if err != nil {
		t.Fatalf("MergedRanges() error = %v", err)
	}
	if want := []string{"A1:B2"}; !reflect.DeepEqual(ranges, want) {
		t.Fatalf("MergedRanges() = %#v, want %#v", ranges, want)
	}

	if err := UnmergeRange(path, "Sheet1", "A1", "B2"); err != nil {
		t.Fatalf("UnmergeRange() error = %v", err)
	}
	ranges, err = MergedRanges(path, "Sheet1")
	if err != nil {
		t.Fatalf("MergedRanges() error = %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("MergedRanges() after unmerge = %#v, want empty", ranges)
	}
}

func TestRowAndColumnOps(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	seed := [][]any{
		{"r1", 1},
		{"r2", 2},
		{"r3", 3},
	}
	if err := WriteRows(path, "Sheet1", "A1", seed); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}

	if err := InsertRows(path, "Sheet1", 2, 1); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	got, err := ReadRange(path, "Sheet1", "A1", "B4")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	want := [][]string{
		{"r1", "1"},
		{"", ""},
		{"r2", "2"},
		{"r3", "3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after insert = %#v, want %#v", got, want)
	}

	if err := DeleteRows(path, "Sheet1", 2, 1); err != nil {
		t.Fatalf("DeleteRows() error = %v", err)
	}
	got, err = ReadRange(path, "Sheet1", "A1", "B3")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	want = [][]string{
		{"r1", "1"},
		{"r2", "2"},
		{"r3", "3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after delete = %#v, want %#v", got, want)
	}

	if err := InsertCols(path, "Sheet1", 1, 2); err != nil {
		t.Fatalf("InsertCols() error = %v", err)
	}
	got, err = ReadRange(path, "Sheet1", "A1", "D1")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]string{{"", "", "r1", "1"}}) {
		t.Fatalf("after column insert = %#v", got)
	}

	if err := DeleteCols(path, "Sheet1", 1, 2); err != nil {
		t.Fatalf("DeleteCols() error = %v", err)
	}
	got, err = ReadRange(path, "Sheet1", "A1", "B1")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]string{{"r1", "1"}}) {
		t.Fatalf("after column delete = %#v", got)
	}

	if err := InsertRows(path, "Sheet1", 0, 1); err == nil {
		t.Fatal("InsertRows() with row 0 error = nil")
	}
	if err := DeleteCols(path, "Sheet1", 1, 0); err == nil {
		t.Fatal("DeleteCols() with count 0 error = nil")
	}
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	if err := WriteRows(path, "Sheet1", "A1", [][]any{{"header", "values"}}); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}

	err := FormatRange(path, "Sheet1", "A1", "B1", RangeFormat{
		Bold:     true,
		FontSize: 14,
		BgColor:  "DDEBF7",
		WrapText: true,
	})
	if err != nil {
		t.Fatalf("FormatRange() error = %v", err)
	}

	// Content survives formatting.
	got, err := ReadRange(path, "Sheet1", "A1", "B1")
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if !reflect.DeepEqual(got, [][]string{{"header", "values"}}) {
		t.Fatalf("after format = %#v", got)
	}
}

func TestFormatRange_Merge(t *testing.T) {
	t.Parallel()

	path := newTestWorkbook(t)
	err := FormatRange(path, "Sheet1", "A1", "C1", RangeFormat{MergeCell: true})
	if err != nil {
		t.Fatalf("FormatRange() error = %v", err)
	}
	ranges, err := MergedRanges(path, "Sheet1")
	if err != nil {
		t.Fatalf("MergedRanges() error = %v", err)
	}
	if !reflect.DeepEqual(ranges, []string{"A1:C1"}) {
		t.Fatalf("MergedRanges() = %#v, want [A1:C1]", ranges)
	}
}
