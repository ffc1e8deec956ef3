package query

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors, rejected before any network activity.
var (
	ErrEmptyStatement = errors.New("statement cannot be empty")
	ErrNotConnected   = errors.New("database connection is not open")
)

// Failure signatures raised by SQL Server and relayed through the driver.
// Matching is on message text because the server reports both conditions as
// generic execution errors.
const (
	rpcDisabledSignature = "not configured for RPC"
	resultShapeSignature = "metadata could not be determined"
)

// IsRemoteProcedureDisabled reports whether err carries the "server is not
// configured for RPC" signature. This is the only failure that triggers the
// one-way downgrade to the OPENQUERY encoding.
func IsRemoteProcedureDisabled(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), rpcDisabledSignature)
}

// IsResultShapeAmbiguous reports whether err carries the "metadata could not
// be determined" signature: OPENQUERY demands a single consistent column set
// and some procedures (sp_configure among them) cannot promise one.
func IsResultShapeAmbiguous(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), resultShapeSignature)
}

// ResultShapeError wraps a metadata-determination failure with remediation
// guidance. It is never retried: the fix is enabling RPC Out on the offending
// server, not re-running the distributed query.
type ResultShapeError struct {
	Server string
	Err    error
}

func (e *ResultShapeError) Error() string {
	return fmt.Sprintf(
		"OPENQUERY requires a single consistent result shape and the remote statement does not provide one; "+
			"enable the RPC Out option on %q (!rpc add %s) and retry: %v",
		e.Server, e.Server, e.Err)
}

func (e *ResultShapeError) Unwrap() error {
	return e.Err
}
