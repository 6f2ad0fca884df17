package playback

import "fmt"

// Clock formats seconds as HH:MM:SS, truncating fractions.
// Negative input is treated as zero.
func Clock(seconds float64) string {
	if seconds < 0 || seconds != seconds {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Readout joins the elapsed and total clocks as "HH:MM:SS / HH:MM:SS".
func Readout(elapsed, total float64) string {
	return Clock(elapsed) + " / " + Clock(total)
}
