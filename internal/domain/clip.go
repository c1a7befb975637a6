package domain

import (
	"fmt"
	"sort"
	"time"
)

// Clip is a persisted output artifact of a completed job.
type Clip struct {
	ID              string
	JobID           string
	Filename        string
	FilePath        string
	MetadataPath    string
	SuggestedTitle  string
	StartTime       float64
	EndTime         float64
	Duration        float64
	ViralScore      float64
	CriteriaMatched []string
	Reasoning       string
	FileSize        int64
	CreatedAt       time.Time
}

// ClipWindow is a candidate time range proposed by the analyzer.
type ClipWindow struct {
	StartSeconds    float64  `json:"start_time"`
	EndSeconds      float64  `json:"end_time"`
	ViralScore      float64  `json:"viral_score"`
	CriteriaMatched []string `json:"criteria_matched"`
	Reasoning       string   `json:"reasoning"`
	SuggestedTitle  string   `json:"suggested_title"`
	KeyQuote        string   `json:"key_quote,omitempty"`
}

func (w ClipWindow) Duration() float64 {
	return w.EndSeconds - w.StartSeconds
}

// ClipConstraints bound which windows are acceptable.
type ClipConstraints struct {
	MinDuration float64
	MaxDuration float64
	MaxClips    int
	MinScore    float64
}

func (c ClipConstraints) Accepts(w ClipWindow) bool {
	if w.StartSeconds < 0 || w.EndSeconds <= w.StartSeconds {
		return false
	}
	d := w.Duration()
	return d >= c.MinDuration && d <= c.MaxDuration && w.ViralScore >= c.MinScore
}

// SelectWindows keeps accepted windows, orders them by score descending and
// caps the list at MaxClips.
func SelectWindows(windows []ClipWindow, c ClipConstraints) []ClipWindow {
	selected := make([]ClipWindow, 0, len(windows))
	for _, w := range windows {
		if c.Accepts(w) {
			selected = append(selected, w)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].ViralScore > selected[j].ViralScore
	})
	if c.MaxClips > 0 && len(selected) > c.MaxClips {
		selected = selected[:c.MaxClips]
	}
	return selected
}

// CutRequest describes one clip to extract from a source video.
type CutRequest struct {
	SourcePath    string
	OutputDir     string
	BaseName      string
	Index         int
	Window        ClipWindow
	PaddingBefore float64
	PaddingAfter  float64
}

// PaddedRange returns the cut range with padding applied, clamped at zero.
func (r CutRequest) PaddedRange() (start, end float64) {
	start = r.Window.StartSeconds - r.PaddingBefore
	if start < 0 {
		start = 0
	}
	return start, r.Window.EndSeconds + r.PaddingAfter
}

func (r CutRequest) Filename() string {
	return fmt.Sprintf("%s_clip%02d.mp4", r.BaseName, r.Index)
}

func (r CutRequest) MetadataFilename() string {
	return fmt.Sprintf("%s_clip%02d_metadata.json", r.BaseName, r.Index)
}

// CutResult describes a clip file written by the cutter.
type CutResult struct {
	Path         string
	MetadataPath string
	FileSize     int64
	Duration     float64
}
