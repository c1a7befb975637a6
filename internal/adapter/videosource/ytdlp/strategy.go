package ytdlp

import (
	"strings"
)

// Strategy is one named way of invoking yt-dlp. Args are inserted before
// the URL.
type Strategy struct {
	Name string
	Args []string
}

var qualityFormats = map[string][]string{
	"1080p": {
		"best",
		"bestvideo+bestaudio/best",
		"best[height<=1080]",
		"bestvideo[height<=1080]+bestaudio/best[height<=1080]",
		"bestvideo[height<=1080]+bestaudio",
		"bestaudio/best",
	},
	"720p": {
		"best",
		"bestvideo+bestaudio/best",
		"best[height<=720]",
		"bestvideo[height<=720]+bestaudio/best[height<=720]",
		"bestvideo[height<=720]+bestaudio",
		"bestaudio/best",
	},
	"480p": {
		"best",
		"bestvideo+bestaudio/best",
		"best[height<=480]",
		"bestvideo[height<=480]+bestaudio/best[height<=480]",
		"bestvideo[height<=480]+bestaudio",
		"bestaudio/best",
	},
	"best": {
		"best",
		"bestvideo+bestaudio/best",
		"bestvideo+bestaudio",
		"bestaudio/best",
	},
}

var browsers = map[string]bool{
	"chrome": true, "firefox": true, "edge": true, "opera": true,
	"safari": true, "vivaldi": true, "brave": true,
}

// cookieArgs maps the configured cookie source to yt-dlp flags. A browser
// name reads cookies from that browser; anything else is a cookie file.
func cookieArgs(cookies string) []string {
	c := strings.TrimSpace(cookies)
	if c == "" {
		return nil
	}
	if browsers[strings.ToLower(c)] {
		return []string{"--cookies-from-browser", strings.ToLower(c)}
	}
	return []string{"--cookies", c}
}

func clientArgs(client string) []string {
	return []string{"--extractor-args", "youtube:player_client=" + client}
}

// metadataStrategies tries a flat extraction first, then a cookie-backed
// web client, then each public client identity.
func metadataStrategies(cookies string) []Strategy {
	strategies := []Strategy{{Name: "flat", Args: []string{"--flat-playlist"}}}
	if ca := cookieArgs(cookies); ca != nil {
		strategies = append(strategies, Strategy{
			Name: "cookies-web",
			Args: append(ca, clientArgs("web")...),
		})
	}
	for _, client := range []string{"ios", "android", "mweb", "web"} {
		strategies = append(strategies, Strategy{Name: "client-" + client, Args: clientArgs(client)})
	}
	return strategies
}

// downloadStrategies walks the quality ladder. With cookies every format is
// tried; without cookies only the permissive formats are, since selective
// formats rarely succeed anonymously.
func downloadStrategies(quality, cookies string) []Strategy {
	formats, ok := qualityFormats[quality]
	if !ok {
		formats = qualityFormats["best"]
	}
	ca := cookieArgs(cookies)

	var strategies []Strategy
	for _, format := range formats {
		if ca != nil {
			args := append([]string{"-f", format}, ca...)
			if format != "best" {
				args = append(args, clientArgs("web")...)
			}
			strategies = append(strategies, Strategy{Name: "cookies:" + format, Args: args})
		}
		if format == "best" || format == "bestaudio/best" {
			for _, client := range []string{"web", "ios"} {
				strategies = append(strategies, Strategy{
					Name: client + ":" + format,
					Args: append([]string{"-f", format}, clientArgs(client)...),
				})
			}
		}
	}
	return strategies
}

var nonRetryable = []string{
	"private video",
	"video unavailable",
	"this video has been removed",
	"this video is no longer available",
	"unsupported url",
	"is not a valid url",
	"account associated with this video has been terminated",
}

// isRetryable reports whether another strategy could plausibly succeed.
func isRetryable(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, phrase := range nonRetryable {
		if strings.Contains(s, phrase) {
			return false
		}
	}
	return true
}
