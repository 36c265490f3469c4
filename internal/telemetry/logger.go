package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// JSONLogger writes one JSON object per line: ts, level, msg, then fields.
// Children made by With share the parent's writer.
type JSONLogger struct {
	mu   *sync.Mutex
	w    io.WriteCloser
	base map[string]any
	now  func() time.Time
}

func NewJSONLogger(path string) (*JSONLogger, error) {
	if path == "" {
		return NewJSONLoggerTo(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{mu: &sync.Mutex{}, w: f, now: time.Now}, nil
}

// NewJSONLoggerTo logs to w. Close does not close w.
func NewJSONLoggerTo(w io.Writer) *JSONLogger {
	return &JSONLogger{mu: &sync.Mutex{}, w: nopCloser{Writer: w}, now: time.Now}
}

// With returns a logger that adds fields to every entry.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	if l == nil {
		return nil
	}
	base := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		base[k] = v
	}
	for k, v := range fields {
		base[k] = v
	}
	return &JSONLogger{mu: l.mu, w: l.w, base: base, now: l.now}
}

func (l *JSONLogger) Info(msg string, fields map[string]any) {
	l.log("info", msg, fields)
}

func (l *JSONLogger) Warn(msg string, fields map[string]any) {
	l.log("warn", msg, fields)
}

func (l *JSONLogger) Error(msg string, fields map[string]any) {
	l.log("error", msg, fields)
}

func (l *JSONLogger) log(level, msg string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := make(map[string]any, len(l.base)+len(fields)+3)
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = l.now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg
	b, err := json.Marshal(entry)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"ts": entry["ts"], "level": "error", "msg": "log.marshal_failed", "error": err.Error(), "orig": msg})
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
