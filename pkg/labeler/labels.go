package labeler

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/framelabel/pkg/ports"
	"github.com/user/framelabel/pkg/slicer"
)

// Range is an inclusive frame range of one repetition.
type Range struct {
	Start int
	End   int
}

// LabelBook collects repetition ranges per video, in rows, in the column
// layout the slicer reads.
type LabelBook struct {
	order []string
	rows  map[string][][]Range
}

// NewLabelBook creates an empty book.
func NewLabelBook() *LabelBook {
	return &LabelBook{rows: make(map[string][][]Range)}
}

func (b *LabelBook) ensure(video string) {
	if _, ok := b.rows[video]; !ok {
		b.order = append(b.order, video)
		b.rows[video] = [][]Range{nil}
	}
}

// Add appends r to the last row of video and returns its 1-based row and
// repetition numbers.
func (b *LabelBook) Add(video string, r Range) (row, rep int) {
	b.ensure(video)
	rows := b.rows[video]
	last := len(rows) - 1
	rows[last] = append(rows[last], r)
	return last + 1, len(rows[last])
}

// NewRow starts a new row for video unless the last row is still empty.
// It returns the 1-based number of the row now receiving ranges.
func (b *LabelBook) NewRow(video string) int {
	b.ensure(video)
	rows := b.rows[video]
	if len(rows[len(rows)-1]) > 0 {
		rows = append(rows, nil)
		b.rows[video] = rows
	}
	return len(rows)
}

// Rows returns the recorded rows of video.
func (b *LabelBook) Rows(video string) [][]Range {
	return b.rows[video]
}

// Count returns the number of ranges recorded for video.
func (b *LabelBook) Count(video string) int {
	n := 0
	for _, row := range b.rows[video] {
		n += len(row)
	}
	return n
}

// Videos returns the videos with recorded ranges, in first-labeled order.
func (b *LabelBook) Videos() []string {
	var out []string
	for _, v := range b.order {
		if b.Count(v) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Sheet renders the ranges of video as a sheet named after the video file.
func (b *LabelBook) Sheet(video string) ports.Sheet {
	var rows [][]Range
	for _, row := range b.rows[video] {
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	reps := 0
	for _, row := range rows {
		if len(row) > reps {
			reps = len(row)
		}
	}

	sheet := ports.Sheet{Name: SheetName(video)}
	for n := 1; n <= reps; n++ {
		sheet.Header = append(sheet.Header, slicer.StartColumn(n), slicer.EndColumn(n))
	}
	for _, row := range rows {
		cells := make([]string, 0, 2*len(row))
		for _, r := range row {
			cells = append(cells, strconv.Itoa(r.Start), strconv.Itoa(r.End))
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

// Sheets returns one sheet per labeled video.
func (b *LabelBook) Sheets() []ports.Sheet {
	var sheets []ports.Sheet
	for _, v := range b.Videos() {
		sheets = append(sheets, b.Sheet(v))
	}
	return sheets
}

// SheetName derives a worksheet name from a video path: the file name
// without extension, with characters spreadsheets reject replaced and the
// length capped at 31.
func SheetName(video string) string {
	name := filepath.Base(video)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		name = "Sheet1"
	}
	return name
}
