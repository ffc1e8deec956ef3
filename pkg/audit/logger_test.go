package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("SELECT 1")
	b := Fingerprint("SELECT 1")
	c := Fingerprint("SELECT 2")

	if a != b {
		t.Errorf("fingerprint not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("distinct statements share fingerprint %q", a)
	}
	if len(a) != 16 {
		t.Errorf("fingerprint length = %d, want 16 hex chars", len(a))
	}
}

func TestLoggerFillsDefaults(t *testing.T) {
	rec := &recordingAppender{}
	l := NewLogger(rec)

	e := &Entry{Operation: OpQuery, Status: StatusSuccess, Statement: "SELECT 1"}
	if err := l.Record(e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if e.ID == "" {
		t.Errorf("expected generated ID")
	}
	if e.Timestamp.IsZero() {
		t.Errorf("expected stamped timestamp")
	}
	if e.Fingerprint != Fingerprint("SELECT 1") {
		t.Errorf("expected statement fingerprint, got %q", e.Fingerprint)
	}
	if len(rec.entries) != 1 {
		t.Errorf("expected 1 appended entry, got %d", len(rec.entries))
	}
}

func TestLoggerWithoutAppendersIsNoop(t *testing.T) {
	l := NewLogger()
	if l.Enabled() {
		t.Errorf("logger without appenders reports enabled")
	}
	if err := l.Record(&Entry{Operation: OpQuery}); err != nil {
		t.Errorf("Record on empty logger failed: %v", err)
	}
}

func TestFileAppenderWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	fa, err := NewFileAppender(path)
	if err != nil {
		t.Fatalf("NewFileAppender failed: %v", err)
	}

	l := NewLogger(fa)
	for _, stmt := range []string{"SELECT 1", "SELECT 2"} {
		err := l.Record(&Entry{
			Operation: OpQuery,
			Status:    StatusSuccess,
			Server:    "SQL02 -> SQL03",
			Statement: stmt,
			Duration:  12 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open audit file: %v", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Statement != "SELECT 1" || entries[0].Server != "SQL02 -> SQL03" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestSQLiteAppenderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	sa, err := NewSQLiteAppender(path)
	if err != nil {
		t.Fatalf("NewSQLiteAppender failed: %v", err)
	}

	l := NewLogger(sa)
	err = l.Record(&Entry{
		Operation: OpQuery,
		Status:    StatusFailure,
		Statement: "SELECT * FROM missing",
		Error:     "Invalid object name 'missing'.",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	sa2, err := NewSQLiteAppender(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer sa2.Close()

	var count int
	if err := sa2.db.QueryRow("SELECT COUNT(*) FROM audit_log WHERE status = 'failure'").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 failure row, got %d", count)
	}
}

type recordingAppender struct {
	entries []Entry
}

func (r *recordingAppender) Append(e *Entry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *recordingAppender) Close() error { return nil }
