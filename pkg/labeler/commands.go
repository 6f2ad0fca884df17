package labeler

// Command is one user or scheduler action delivered to HandleCommand.
// The set of variants is closed.
type Command interface {
	command()
}

// OpenFile opens a single video.
type OpenFile struct{ Path string }

// OpenFolder lists the videos in a folder and opens the first one.
type OpenFolder struct{ Path string }

// SelectVideo opens the video at index ID of the folder listing.
type SelectVideo struct{ ID int }

// TogglePlay starts or pauses playback.
type TogglePlay struct{}

// StepForward moves one frame forward.
type StepForward struct{}

// StepBackward moves one frame back.
type StepBackward struct{}

// Seek jumps to Frame. It is ignored while the display is being refreshed.
type Seek struct{ Frame int }

// MarkStart remembers the current frame as the start of a repetition.
type MarkStart struct{}

// MarkEnd records a repetition from the marked start to the current frame.
type MarkEnd struct{}

// NewRow starts a new data row for the current video in the label book.
type NewRow struct{}

// SaveLabels writes the label book to the configured workbook.
type SaveLabels struct{}

// Snapshot saves the current frame with the time readout drawn under it.
type Snapshot struct{}

// Tick is delivered by the scheduler while playing.
type Tick struct{}

func (OpenFile) command()     {}
func (OpenFolder) command()   {}
func (SelectVideo) command()  {}
func (TogglePlay) command()   {}
func (StepForward) command()  {}
func (StepBackward) command() {}
func (Seek) command()         {}
func (MarkStart) command()    {}
func (MarkEnd) command()      {}
func (NewRow) command()       {}
func (SaveLabels) command()   {}
func (Snapshot) command()     {}
func (Tick) command()         {}
