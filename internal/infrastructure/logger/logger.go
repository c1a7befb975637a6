package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Printer keeps the Printf call style used throughout the codebase while
// routing through the shared logrus logger.
type Printer struct {
	level logrus.Level
}

func (p *Printer) Printf(format string, args ...any) {
	base.Logf(p.level, format, args...)
}

func (p *Printer) Println(args ...any) {
	base.Logln(p.level, args...)
}

var (
	base = logrus.New()

	Info  = &Printer{level: logrus.InfoLevel}
	Error = &Printer{level: logrus.ErrorLevel}
	Debug = &Printer{level: logrus.DebugLevel}
	Warn  = &Printer{level: logrus.WarnLevel}
)

func init() {
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
}

// Setup applies the level ("debug", "info", ...) and format ("text" or "json").
func Setup(level, format string) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	base.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// WithJob returns an entry tagged with the job id.
func WithJob(jobID string) *logrus.Entry {
	return base.WithField("job_id", jobID)
}

func WithWorker(id int) *logrus.Entry {
	return base.WithField("worker", id)
}
