package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Record represents a single diagnostic log entry.
type Record struct {
	Timestamp time.Time `json:"ts"`
	Component string    `json:"component"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	ErrorType string    `json:"errorType,omitempty"`
	Action    string    `json:"action,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	LatencyMS int64     `json:"latencyMs,omitempty"`
}

// Factory produces named sinks sharing one rotated output file.
type Factory struct {
	mu  sync.Mutex
	out io.WriteCloser
}

// NewFactory creates a sink factory writing to diag.jsonl under logDir.
// Rotation keeps files bounded on long-lived consoles.
func NewFactory(logDir string) (*Factory, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Factory{
		out: &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "diag.jsonl"),
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		},
	}, nil
}

// NewFactoryWithWriter creates a factory writing to an arbitrary writer.
func NewFactoryWithWriter(w io.Writer) *Factory {
	return &Factory{out: nopCloser{w}}
}

// For returns a sink labeled with the given component name.
func (f *Factory) For(component string) *Logger {
	return &Logger{factory: f, component: component}
}

// Close closes the shared output.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}

// write serializes and appends a record.
func (f *Factory) write(rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal diagnostic record: %v\n", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.out.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write diagnostic record: %v\n", err)
	}
}

// Logger is a component-scoped diagnostic sink.
type Logger struct {
	factory   *Factory
	component string
}

// Error records an unexpected failure with its concrete type name.
func (l *Logger) Error(err error, msg string) {
	rec := Record{
		Timestamp: time.Now().UTC(),
		Component: l.component,
		Level:     "error",
		Message:   msg,
	}
	if err != nil {
		rec.Error = err.Error()
		rec.ErrorType = fmt.Sprintf("%T", err)
	}
	l.factory.write(rec)
}

// Action records an audited northbound intent with its outcome.
func (l *Logger) Action(action, outcome string, latency time.Duration) {
	l.factory.write(Record{
		Timestamp: time.Now().UTC(),
		Component: l.component,
		Level:     "info",
		Action:    action,
		Outcome:   outcome,
		LatencyMS: latency.Milliseconds(),
	})
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
