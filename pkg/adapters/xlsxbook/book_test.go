package xlsxbook

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/user/framelabel/pkg/adapters/osfilesystem"
	"github.com/user/framelabel/pkg/mocks"
	"github.com/user/framelabel/pkg/ports"
	"github.com/user/framelabel/pkg/slicer"
)

func labelSheet(name string, rows ...[]string) ports.Sheet {
	return ports.Sheet{
		Name:   name,
		Header: []string{"Repetition 1 Start", "Repetition 1 End", "Repetition 2 Start", "Repetition 2 End"},
		Rows:   rows,
	}
}

func TestBook_WriteThenRead(t *testing.T) {
	book := New(osfilesystem.New())
	path := filepath.Join(t.TempDir(), "labels.xlsx")

	sheet := labelSheet("squat", []string{"10", "19", "40", "52"}, []string{"60", "71"})
	if err := book.WriteSheet(path, sheet); err != nil {
		t.Fatalf("WriteSheet failed: %v", err)
	}

	names, err := book.SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "squat" {
		t.Errorf("expected only sheet squat, got %v", names)
	}

	got, err := book.ReadSheet(path, "squat")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if len(got.Header) != 4 || got.Header[3] != "Repetition 2 End" {
		t.Errorf("unexpected header %v", got.Header)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.Cell(0, "Repetition 2 End") != "52" {
		t.Errorf("expected 52, got %q", got.Cell(0, "Repetition 2 End"))
	}
	if got.Cell(1, "Repetition 2 Start") != "" {
		t.Errorf("expected empty cell, got %q", got.Cell(1, "Repetition 2 Start"))
	}
}

func TestBook_WriteReplacesSameSheet(t *testing.T) {
	book := New(osfilesystem.New())
	path := filepath.Join(t.TempDir(), "labels.xlsx")

	if err := book.WriteSheet(path, labelSheet("squat", []string{"1", "2"}, []string{"3", "4"}, []string{"5", "6"})); err != nil {
		t.Fatal(err)
	}
	if err := book.WriteSheet(path, labelSheet("lunge", []string{"7", "8"})); err != nil {
		t.Fatal(err)
	}
	if err := book.WriteSheet(path, labelSheet("squat", []string{"9", "10"})); err != nil {
		t.Fatal(err)
	}

	names, _ := book.SheetNames(path)
	if len(names) != 2 || names[0] != "squat" || names[1] != "lunge" {
		t.Errorf("expected [squat lunge], got %v", names)
	}

	squat, err := book.ReadSheet(path, "squat")
	if err != nil {
		t.Fatal(err)
	}
	if len(squat.Rows) != 1 || squat.Cell(0, "Repetition 1 Start") != "9" {
		t.Errorf("expected replaced contents, got %v", squat.Rows)
	}

	lunge, _ := book.ReadSheet(path, "lunge")
	if lunge.Cell(0, "Repetition 1 End") != "8" {
		t.Errorf("expected lunge sheet untouched, got %v", lunge.Rows)
	}
}

func TestBook_ReadSpreadsheetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranges.xlsx")

	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]interface{}{" Repetition 1 Start ", "Repetition 1 End", "Notes"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{10.0, 19, "good"})
	_ = f.SetSheetRow("Sheet1", "A4", &[]interface{}{30, 39})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	sheet, err := New(osfilesystem.New()).ReadSheet(path, "Sheet1")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}

	if sheet.Header[0] != "Repetition 1 Start" {
		t.Errorf("expected trimmed header, got %q", sheet.Header[0])
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("expected blank row kept, got %d rows", len(sheet.Rows))
	}
	if sheet.Cell(0, "Repetition 1 Start") != "10" {
		t.Errorf("expected 10, got %q", sheet.Cell(0, "Repetition 1 Start"))
	}
	if sheet.Cell(1, "Repetition 1 Start") != "" {
		t.Errorf("expected blank row, got %v", sheet.Rows[1])
	}
	if sheet.Cell(2, "Repetition 1 End") != "39" {
		t.Errorf("expected 39, got %q", sheet.Cell(2, "Repetition 1 End"))
	}
}

func TestBook_ReadFormattedNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted.xlsx")

	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Repetition 1 Start", "Repetition 1 End"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{1200, 1500})
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "A2", "B2", thousands); err != nil {
		t.Fatalf("SetCellStyle failed: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	sheet, err := New(osfilesystem.New()).ReadSheet(path, "Sheet1")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if got := sheet.Cell(0, "Repetition 1 Start"); got != "1200" {
		t.Errorf("expected raw value 1200, got %q", got)
	}

	plan := slicer.Plan(sheet)
	if len(plan) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(plan))
	}
	if plan[0].Err != nil {
		t.Fatalf("expected a valid range, got %v", plan[0].Err)
	}
	if plan[0].Request.Start != 1200 || plan[0].Request.End != 1500 {
		t.Errorf("expected frames 1200..1500, got %+v", plan[0].Request)
	}
}

func TestBook_MissingSheetAndFile(t *testing.T) {
	book := New(osfilesystem.New())
	path := filepath.Join(t.TempDir(), "labels.xlsx")

	if _, err := book.SheetNames(path); err == nil {
		t.Error("expected error for missing workbook")
	}

	if err := book.WriteSheet(path, labelSheet("squat")); err != nil {
		t.Fatal(err)
	}
	if _, err := book.ReadSheet(path, "deadlift"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestBook_WritesThroughFileSystem(t *testing.T) {
	fs := mocks.NewFileSystem()
	book := New(fs)

	if err := book.WriteSheet("out/labels.xlsx", labelSheet("squat", []string{"0", "5"})); err != nil {
		t.Fatalf("WriteSheet failed: %v", err)
	}

	data, ok := fs.GetFile("out/labels.xlsx")
	if !ok || len(data) < 4 || string(data[:2]) != "PK" {
		t.Fatal("expected zip-encoded workbook written through the file system")
	}

	sheet, err := book.ReadSheet("out/labels.xlsx", "squat")
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}
	if sheet.Cell(0, "Repetition 1 End") != "5" {
		t.Errorf("expected 5, got %q", sheet.Cell(0, "Repetition 1 End"))
	}
}
