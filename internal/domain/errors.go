package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrNoMetadata        = errors.New("no video metadata")
	ErrNoSegments        = errors.New("no transcript segments")
	ErrDownloadFailed    = errors.New("download failed")
	ErrCutFailed         = errors.New("clip cut failed")
	ErrNotConfigured     = errors.New("not configured")
	ErrInvalidTransition = errors.New("invalid status transition")
)

const maxUserMessageLen = 240

// StageError pairs a short user-facing message with the underlying cause.
type StageError struct {
	Stage   string
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// UserMessage reduces err to a single short line fit for Job.ErrorMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StageError
	msg := err.Error()
	if errors.As(err, &se) && se.Err != nil {
		msg = se.Message + ": " + firstLine(se.Err.Error())
	}
	msg = firstLine(msg)
	if len(msg) > maxUserMessageLen {
		msg = strings.ToValidUTF8(strings.TrimSpace(msg[:maxUserMessageLen-3]), "") + "..."
	}
	return msg
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
