// Package audit records every batch the client submits: what was sent, where
// it was routed, how it ended. Entries fan out to pluggable appenders (JSON
// file, sqlite database).
package audit

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// Operation classifies what produced an entry.
type Operation string

const (
	OpConnect    Operation = "connect"
	OpQuery      Operation = "query"
	OpNonQuery   Operation = "non_query"
	OpAction     Operation = "action"
	OpModeChange Operation = "mode_change"
)

// Status is the outcome of the operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry is one audit record.
type Entry struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Operation   Operation     `json:"operation"`
	Status      Status        `json:"status"`
	Server      string        `json:"server,omitempty"`    // execution target or chain trail
	Statement   string        `json:"statement,omitempty"` // logical statement as typed
	Fingerprint string        `json:"fingerprint,omitempty"`
	Duration    time.Duration `json:"duration_ns,omitempty"`
	Rows        int           `json:"rows,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Fingerprint hashes a statement for dedup and cross-log correlation.
func Fingerprint(statement string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(statement))
}
