package domain

import "strconv"

type ProbeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ProbeStream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  string `json:"duration"`
}

// ProbeResult is the subset of `ffprobe -show_format -show_streams` output
// recorded for each clip.
type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

func (p *ProbeResult) VideoStream() *ProbeStream {
	for i := range p.Streams {
		if p.Streams[i].CodecType == "video" {
			return &p.Streams[i]
		}
	}
	return nil
}

func (p *ProbeResult) HasAudio() bool {
	for i := range p.Streams {
		if p.Streams[i].CodecType == "audio" {
			return true
		}
	}
	return false
}

func (p *ProbeResult) Dimensions() (width, height int) {
	vs := p.VideoStream()
	if vs != nil {
		return vs.Width, vs.Height
	}
	return 0, 0
}

// Duration prefers the container duration and falls back to the video stream.
func (p *ProbeResult) Duration() float64 {
	if d := ParseDuration(p.Format.Duration); d > 0 {
		return d
	}
	if vs := p.VideoStream(); vs != nil {
		return ParseDuration(vs.Duration)
	}
	return 0
}

func ParseDuration(durationStr string) float64 {
	if durationStr == "" || durationStr == "N/A" {
		return 0
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0
	}
	return duration
}
