package mocks

import (
	"fmt"
	"sort"

	"github.com/user/framelabel/pkg/ports"
)

// Workbook is an in-memory ports.WorkbookReader and ports.WorkbookWriter.
type Workbook struct {
	books map[string]map[string]ports.Sheet

	ReadSheetFunc func(path, name string) (ports.Sheet, error)
}

// NewWorkbook creates an empty mock workbook store.
func NewWorkbook() *Workbook {
	return &Workbook{books: make(map[string]map[string]ports.Sheet)}
}

// Put stores a sheet in the workbook at path.
func (m *Workbook) Put(path string, sheet ports.Sheet) {
	if m.books[path] == nil {
		m.books[path] = make(map[string]ports.Sheet)
	}
	m.books[path][sheet.Name] = sheet
}

// Get returns a stored sheet (for test verification).
func (m *Workbook) Get(path, name string) (ports.Sheet, bool) {
	sheet, ok := m.books[path][name]
	return sheet, ok
}

func (m *Workbook) SheetNames(path string) ([]string, error) {
	book, ok := m.books[path]
	if !ok {
		return nil, fmt.Errorf("workbook not found: %s", path)
	}
	names := make([]string, 0, len(book))
	for name := range book {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Workbook) ReadSheet(path, name string) (ports.Sheet, error) {
	if m.ReadSheetFunc != nil {
		return m.ReadSheetFunc(path, name)
	}
	sheet, ok := m.books[path][name]
	if !ok {
		return ports.Sheet{}, fmt.Errorf("sheet %q not found in %s", name, path)
	}
	return sheet, nil
}

func (m *Workbook) WriteSheet(path string, sheet ports.Sheet) error {
	m.Put(path, sheet)
	return nil
}

var (
	_ ports.WorkbookReader = (*Workbook)(nil)
	_ ports.WorkbookWriter = (*Workbook)(nil)
)
