// Package slicer turns spreadsheet repetition ranges into clip requests and
// copies those frame ranges out of a video source.
package slicer

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/framelabel/pkg/ports"
)

var (
	// ErrMissingRange marks a repetition whose start or end cell is empty or not a number.
	ErrMissingRange = errors.New("slicer: missing range")
	// ErrInvalidRange marks a repetition whose start lies after its end or before frame 0.
	ErrInvalidRange = errors.New("slicer: invalid range")
)

// ClipRequest is one frame range to copy. Row is 1-based over data rows.
type ClipRequest struct {
	Row        int
	Repetition int
	Start      int
	End        int
}

// Len returns the number of frames the range covers.
func (r ClipRequest) Len() int {
	return r.End - r.Start + 1
}

// Entry is a planned repetition: a request, or the reason it cannot run.
type Entry struct {
	Request ClipRequest
	Err     error
}

// StartColumn returns the header name holding the start frame of repetition n.
func StartColumn(n int) string {
	return fmt.Sprintf("Repetition %d Start", n)
}

// EndColumn returns the header name holding the end frame of repetition n.
func EndColumn(n int) string {
	return fmt.Sprintf("Repetition %d End", n)
}

// RepetitionNumber extracts N from a "Repetition N Start" or "Repetition N End"
// column name. Names that do not follow that shape report false.
func RepetitionNumber(column string) (int, bool) {
	if !strings.Contains(column, "Repetition") {
		return 0, false
	}
	if !strings.Contains(column, "Start") && !strings.Contains(column, "End") {
		return 0, false
	}
	fields := strings.Fields(column)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// MaxRepetition returns the highest repetition number named in header, or 0.
func MaxRepetition(header []string) int {
	highest := 0
	for _, column := range header {
		if n, ok := RepetitionNumber(column); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// ParseFrame reads a frame index from a cell. Numbers are truncated toward
// zero; empty and non-numeric cells report false.
func ParseFrame(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}

// Plan walks every data row and every repetition 1..MaxRepetition in order.
func Plan(sheet ports.Sheet) []Entry {
	reps := MaxRepetition(sheet.Header)
	if reps == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(sheet.Rows)*reps)
	for i := range sheet.Rows {
		for n := 1; n <= reps; n++ {
			entries = append(entries, planOne(sheet, i, n))
		}
	}
	return entries
}

func planOne(sheet ports.Sheet, i, n int) Entry {
	req := ClipRequest{Row: i + 1, Repetition: n}
	start, okStart := ParseFrame(sheet.Cell(i, StartColumn(n)))
	end, okEnd := ParseFrame(sheet.Cell(i, EndColumn(n)))
	switch {
	case !okStart && !okEnd:
		return Entry{Request: req, Err: fmt.Errorf("%w: no %q or %q", ErrMissingRange, StartColumn(n), EndColumn(n))}
	case !okStart:
		return Entry{Request: req, Err: fmt.Errorf("%w: no %q", ErrMissingRange, StartColumn(n))}
	case !okEnd:
		return Entry{Request: req, Err: fmt.Errorf("%w: no %q", ErrMissingRange, EndColumn(n))}
	}
	req.Start, req.End = start, end
	if start < 0 || start > end {
		return Entry{Request: req, Err: fmt.Errorf("%w: frames %d..%d", ErrInvalidRange, start, end)}
	}
	return Entry{Request: req}
}

// ClipDir returns the folder receiving clips cut from videoPath.
func ClipDir(outputDir, videoPath string) string {
	return filepath.Join(outputDir, "Clips_"+filepath.Base(videoPath))
}

// ClipName returns the file name for a clip in the given container.
func ClipName(req ClipRequest, container string) string {
	return fmt.Sprintf("row%d_rep%d_frames_%d_%d.%s", req.Row, req.Repetition, req.Start, req.End, container)
}

// ContainerOf returns the lower-case extension of path without the dot.
func ContainerOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
