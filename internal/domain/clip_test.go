package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectWindows(t *testing.T) {
	c := ClipConstraints{MinDuration: 15, MaxDuration: 60, MaxClips: 2, MinScore: 7}
	windows := []ClipWindow{
		{StartSeconds: 0, EndSeconds: 20, ViralScore: 7.5},
		{StartSeconds: 30, EndSeconds: 40, ViralScore: 9.5},  // too short
		{StartSeconds: 50, EndSeconds: 120, ViralScore: 9.0}, // too long
		{StartSeconds: 130, EndSeconds: 160, ViralScore: 6.9},
		{StartSeconds: 200, EndSeconds: 230, ViralScore: 8.8},
		{StartSeconds: 300, EndSeconds: 330, ViralScore: 8.1},
		{StartSeconds: -3, EndSeconds: 20, ViralScore: 10},
	}

	got := SelectWindows(windows, c)

	assert.Len(t, got, 2)
	assert.Equal(t, 8.8, got[0].ViralScore)
	assert.Equal(t, 8.1, got[1].ViralScore)
	for _, w := range got {
		assert.True(t, c.Accepts(w))
	}
}

func TestCutRequest_PaddedRange(t *testing.T) {
	req := CutRequest{Window: ClipWindow{StartSeconds: 0.2, EndSeconds: 20}, PaddingBefore: 0.5, PaddingAfter: 0.5}

	start, end := req.PaddedRange()

	assert.Equal(t, 0.0, start)
	assert.Equal(t, 20.5, end)
}

func TestCutRequest_Filenames(t *testing.T) {
	req := CutRequest{BaseName: "talk", Index: 3}

	assert.Equal(t, "talk_clip03.mp4", req.Filename())
	assert.Equal(t, "talk_clip03_metadata.json", req.MetadataFilename())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimestamp(-1))
	assert.Equal(t, "01:05", FormatTimestamp(65.9))
	assert.Equal(t, "1:01:01", FormatTimestamp(3661))
}
