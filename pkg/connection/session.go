// Package connection opens and owns the single TDS session to the
// directly-reachable SQL Server and exposes it as a query.Connection.
package connection

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // MS SQL Server driver
	"github.com/pterm/pterm"

	"github.com/ruslano69/mschain/pkg/query"
)

// Session wraps the one live connection. It implements query.Connection.
// Not safe for concurrent use; one statement is in flight at a time.
type Session struct {
	db  *sql.DB
	cfg Config

	serverName   string
	version      string
	majorVersion int
	systemUser   string
	mappedUser   string
}

// Connect dials the server, verifies the session, and detects the server
// identity. A failed connection is not retried; re-establishment is owned by
// the caller.
func Connect(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.DriverName(), cfg.BuildDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Exactly one live connection: the TDS stream is stateful (USE, EXECUTE
	// AS) and must not fan out over a pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Session{db: db, cfg: cfg}
	if err := s.detectIdentity(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to detect server identity: %w", err)
	}

	if s.Legacy() {
		pterm.Warning.Printfln("legacy server detected: version %s (SQL Server 2016 or older)", s.version)
	}

	return s, nil
}

// detectIdentity reads the server name, product version, and the logins this
// session maps to.
func (s *Session) detectIdentity(ctx context.Context) error {
	var name sql.NullString
	if err := s.db.QueryRowContext(ctx, "SELECT @@SERVERNAME").Scan(&name); err != nil {
		return fmt.Errorf("failed to get server name: %w", err)
	}
	// Keep the hostname only, dropping a named-instance suffix.
	s.serverName, _, _ = strings.Cut(name.String, "\\")

	var version sql.NullString
	if err := s.db.QueryRowContext(ctx, "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(256))").Scan(&version); err != nil {
		return fmt.Errorf("failed to get server version: %w", err)
	}
	s.version = version.String
	s.majorVersion = parseMajorVersion(version.String)

	var systemUser, mappedUser sql.NullString
	if err := s.db.QueryRowContext(ctx, "SELECT SYSTEM_USER, USER_NAME()").Scan(&systemUser, &mappedUser); err != nil {
		return fmt.Errorf("failed to get session users: %w", err)
	}
	s.systemUser = systemUser.String
	s.mappedUser = mappedUser.String

	return nil
}

// parseMajorVersion parses a product version string to its major number.
// "15.0.2000.5" -> 15. Returns 0 when parsing fails.
func parseMajorVersion(version string) int {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return major
}

// Submit implements query.Connection: one flat batch, rows string-scanned
// with NULL rendered as the empty string.
func (s *Session) Submit(ctx context.Context, statement string, wantRows bool) (*query.Result, error) {
	if s.db == nil {
		return nil, query.ErrNotConnected
	}

	if !wantRows {
		res, err := s.db.ExecContext(ctx, statement)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = -1
		}
		return &query.Result{Affected: affected}, nil
	}

	rows, err := s.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &query.Result{Columns: columns}

	scanArgs := make([]interface{}, len(columns))
	for i := range scanArgs {
		scanArgs[i] = new(sql.NullString)
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		values := make([]string, len(columns))
		for i, arg := range scanArgs {
			v := arg.(*sql.NullString)
			if v.Valid {
				values[i] = v.String
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return result, nil
}

// Close closes the connection.
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping tests the connection.
func (s *Session) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ServerName returns the hostname reported by @@SERVERNAME, without the
// instance suffix.
func (s *Session) ServerName() string {
	if s.serverName == "" {
		return "Unknown"
	}
	return s.serverName
}

// Version returns the full product version string.
func (s *Session) Version() string {
	return s.version
}

// MajorVersion returns the major product version (15 = SQL Server 2019).
func (s *Session) MajorVersion() int {
	return s.majorVersion
}

// Legacy reports whether the server is SQL Server 2016 or older.
func (s *Session) Legacy() bool {
	return s.majorVersion > 0 && s.majorVersion <= 13
}

// SystemUser returns the login this session authenticated as.
func (s *Session) SystemUser() string {
	return s.systemUser
}

// MappedUser returns the database user the login maps to.
func (s *Session) MappedUser() string {
	return s.mappedUser
}

// Database returns the configured database name.
func (s *Session) Database() string {
	return s.cfg.database()
}
