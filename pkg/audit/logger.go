package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Appender persists entries somewhere.
type Appender interface {
	Append(e *Entry) error
	Close() error
}

// Logger fans entries out to its appenders. Safe for concurrent use, though
// the client submits one statement at a time.
type Logger struct {
	mu        sync.Mutex
	appenders []Appender
}

// NewLogger builds a logger over zero or more appenders. With no appenders
// Record is a no-op.
func NewLogger(appenders ...Appender) *Logger {
	return &Logger{appenders: appenders}
}

// Enabled reports whether any appender is attached.
func (l *Logger) Enabled() bool {
	return l != nil && len(l.appenders) > 0
}

// Record stamps and persists an entry. Missing ID, timestamp, and statement
// fingerprint are filled in.
func (l *Logger) Record(e *Entry) error {
	if !l.Enabled() {
		return nil
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Fingerprint == "" && e.Statement != "" {
		e.Fingerprint = Fingerprint(e.Statement)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, a := range l.appenders {
		if err := a.Append(e); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("audit append failed: %w", err)
		}
	}
	return firstErr
}

// Close closes every appender, returning the first failure.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, a := range l.appenders {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
