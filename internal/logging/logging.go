package logging

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/thoreinstein/meshkit/internal/errors"
)

// Format selects how records are rendered.
type Format string

const (
	// FormatText renders records for a human at a terminal.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per record.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for names other than text and json.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseFormat maps a --log-format value to a Format. The empty string
// selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// HandlerFor builds the handler meshkit writes to w. Text output goes
// through Handler so terminals get color and short paths.
func HandlerFor(w io.Writer, format Format, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return NewHandler(w, opts)
}

// NewDiscard returns a logger that drops everything. Libraries fall back to
// it when the caller passes no logger.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a Trace-level logger that writes through t.Log, so output
// only shows for failing tests or under go test -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(NewHandler(testWriter{t: t}, &slog.HandlerOptions{Level: LevelTrace}))
}
