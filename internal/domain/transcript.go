package domain

import "fmt"

// Segment is a timed span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcript struct {
	Segments  []Segment
	CachePath string
}

// Span returns the start of the first segment and the end of the last one.
func (t *Transcript) Span() (start, end float64) {
	if t == nil || len(t.Segments) == 0 {
		return 0, 0
	}
	return t.Segments[0].Start, t.Segments[len(t.Segments)-1].End
}

// Criterion is a named block of scoring guidance for the analyzer.
type Criterion struct {
	Name    string
	Content string
}

// VideoMetadata is what the video source reports before downloading.
type VideoMetadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Uploader string  `json:"uploader"`
}

// FormatTimestamp renders seconds as MM:SS, or H:MM:SS past an hour.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
