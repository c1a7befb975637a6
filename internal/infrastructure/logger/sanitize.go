package logger

import (
	"fmt"
	"net/url"
	"strings"
)

// maxFieldLen caps a single sanitized value. Tool stderr and model replies
// can run to megabytes.
const maxFieldLen = 1024

// SanitizeForLog escapes control characters so one value cannot forge log
// lines or drive the terminal, and truncates it to maxFieldLen bytes.
// Printable Unicode passes through.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(min(len(s), maxFieldLen))

	for _, r := range s {
		if b.Len() >= maxFieldLen {
			b.WriteString("...")
			break
		}
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 32 || r == 127 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

var secretParams = []string{"token", "key", "sig", "signature", "auth", "password", "secret"}

// RedactURL drops credentials from a video URL before it is logged: user
// info is removed and query values whose name looks secret are replaced.
// Unparseable input is sanitized as plain text.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return SanitizeForLog(raw)
	}
	u.User = nil
	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			lower := strings.ToLower(name)
			for _, secret := range secretParams {
				if strings.Contains(lower, secret) {
					q.Set(name, "REDACTED")
					break
				}
			}
		}
		u.RawQuery = q.Encode()
	}
	return SanitizeForLog(u.String())
}
