package ports

// Sheet is one worksheet: a header row followed by data rows.
// Rows may be shorter than Header; missing trailing cells are empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns the value of the named column in data row i, or "" when absent.
func (s Sheet) Cell(i int, column string) string {
	if i < 0 || i >= len(s.Rows) {
		return ""
	}
	for c, name := range s.Header {
		if name == column {
			if c < len(s.Rows[i]) {
				return s.Rows[i][c]
			}
			return ""
		}
	}
	return ""
}

// WorkbookReader reads worksheets from a spreadsheet file.
type WorkbookReader interface {
	SheetNames(path string) ([]string, error)
	ReadSheet(path, name string) (Sheet, error)
}

// WorkbookWriter writes a worksheet, replacing any sheet with the same name.
type WorkbookWriter interface {
	WriteSheet(path string, sheet Sheet) error
}
