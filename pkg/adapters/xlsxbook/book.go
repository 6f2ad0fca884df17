// Package xlsxbook reads and writes .xlsx workbooks with excelize.
package xlsxbook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/user/framelabel/pkg/ports"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

// Book implements ports.WorkbookReader and ports.WorkbookWriter.
// Files go through the FileSystem port so writes stay atomic.
type Book struct {
	fs ports.FileSystem
}

// New creates a Book backed by fs.
func New(fs ports.FileSystem) *Book {
	return &Book{fs: fs}
}

func (b *Book) open(path string) (*excelize.File, error) {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return f, nil
}

// SheetNames returns the worksheet names in workbook order.
func (b *Book) SheetNames(path string) ([]string, error) {
	f, err := b.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadSheet returns the first row as the header and the rest as data rows.
// Header names are trimmed; blank rows between data rows are kept so row
// numbers match the spreadsheet. Cells are read unformatted so number
// formats such as "#,##0" do not hide the stored value.
func (b *Book) ReadSheet(path, name string) (ports.Sheet, error) {
	f, err := b.open(path)
	if err != nil {
		return ports.Sheet{}, err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return ports.Sheet{}, fmt.Errorf("sheet %q not found in %s", name, path)
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return ports.Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
	}

	sheet := ports.Sheet{Name: name}
	if len(rows) == 0 {
		return sheet, nil
	}
	sheet.Header = make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		sheet.Header[i] = strings.TrimSpace(cell)
	}
	sheet.Rows = rows[1:]
	return sheet, nil
}

// WriteSheet stores sheet in the workbook at path, creating the file when
// missing and replacing the contents of a sheet with the same name.
// Integer cells are written as numbers.
func (b *Book) WriteSheet(path string, sheet ports.Sheet) error {
	f, created, err := b.openOrCreate(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := prepareSheet(f, sheet.Name, created); err != nil {
		return err
	}

	if err := writeRow(f, sheet.Name, 1, sheet.Header); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		if err := writeRow(f, sheet.Name, i+2, row); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("serialize workbook: %w", err)
	}
	return b.fs.WriteFile(path, buf.Bytes())
}

func (b *Book) openOrCreate(path string) (*excelize.File, bool, error) {
	exists, err := b.fs.Exists(path)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return excelize.NewFile(), true, nil
	}
	f, err := b.open(path)
	return f, false, err
}

// prepareSheet leaves an empty sheet called name in f.
func prepareSheet(f *excelize.File, name string, created bool) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("invalid sheet name %q: %w", name, err)
	}

	if idx >= 0 {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("read sheet %q: %w", name, err)
		}
		for r := len(rows); r >= 1; r-- {
			if err := f.RemoveRow(name, r); err != nil {
				return fmt.Errorf("clear sheet %q: %w", name, err)
			}
		}
		return nil
	}

	idx, err = f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	if created {
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if n, err := strconv.Atoi(cell); err == nil {
			values[i] = n
		} else {
			values[i] = cell
		}
	}
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", row, sheet, err)
	}
	return nil
}

var (
	_ ports.WorkbookReader = (*Book)(nil)
	_ ports.WorkbookWriter = (*Book)(nil)
)
