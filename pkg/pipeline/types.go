package pipeline

import (
	"github.com/user/framelabel/pkg/slicer"
)

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput names one (sheet, video) job.
type ExtractInput struct {
	Workbook  string // spreadsheet path
	Sheet     string // sheet holding the repetition ranges for VideoPath
	VideoPath string
	OutputDir string // clips go to <OutputDir>/Clips_<video file name>/
	Container string // empty keeps the source container
	Quality   int    // CRF passed to the encoder, 0 for its default
}

// ClipStatus classifies the outcome of one repetition.
type ClipStatus int

const (
	// ClipSaved is a clip written with every requested frame.
	ClipSaved ClipStatus = iota
	// ClipTruncated is a clip written after the source ran out of frames.
	ClipTruncated
	// ClipEmpty is a range starting past the end of the source; nothing was written.
	ClipEmpty
	// ClipSkipped is a row whose range was missing or invalid.
	ClipSkipped
	// ClipFailed is a clip whose decoding, encoding or writing failed.
	ClipFailed
)

// String returns the lower-case status name.
func (s ClipStatus) String() string {
	switch s {
	case ClipSaved:
		return "saved"
	case ClipTruncated:
		return "truncated"
	case ClipEmpty:
		return "empty"
	case ClipSkipped:
		return "skipped"
	case ClipFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ClipOutcome records what happened to one row/repetition.
type ClipOutcome struct {
	Request slicer.ClipRequest
	Status  ClipStatus
	Path    string // written file, empty unless saved or truncated
	Frames  int    // frames copied
	Bytes   int64
	Reason  string // why the clip was skipped, empty or failed
}

// ExtractResult collects the outcomes of one job in row/repetition order.
type ExtractResult struct {
	VideoPath     string
	Sheet         string
	ClipDir       string
	FrameCount    int
	FrameRate     float64
	MaxRepetition int
	Clips         []ClipOutcome
}

// Count returns how many outcomes have the given status.
func (r ExtractResult) Count(status ClipStatus) int {
	n := 0
	for _, c := range r.Clips {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Written returns the number of clip files written.
func (r ExtractResult) Written() int {
	return r.Count(ClipSaved) + r.Count(ClipTruncated)
}
