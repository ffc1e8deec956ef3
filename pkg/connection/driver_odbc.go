//go:build cgo || windows

package connection

import (
	_ "github.com/alexbrainman/odbc" // system ODBC driver
)
