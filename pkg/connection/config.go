package connection

import (
	"fmt"
	"net/url"
	"strconv"
)

// Supported database/sql driver names.
const (
	DriverMSSQL = "mssql" // go-mssqldb, default
	DriverODBC  = "odbc"  // system ODBC, useful for integrated auth setups
)

// Config describes the one direct connection the client owns.
type Config struct {
	Driver      string `yaml:"driver,omitempty"` // mssql (default) or odbc
	Host        string `yaml:"host"`
	Port        int    `yaml:"port,omitempty"` // default 1433
	Database    string `yaml:"database,omitempty"`
	User        string `yaml:"user,omitempty"`
	Password    string `yaml:"password,omitempty"`
	Domain      string `yaml:"domain,omitempty"`
	WindowsAuth bool   `yaml:"windows_auth,omitempty"`
	AppName     string `yaml:"app_name,omitempty"`
	DialTimeout int    `yaml:"dial_timeout,omitempty"` // seconds, default 15
}

// Validate checks the fields needed before dialing.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("connection host is required")
	}
	switch c.Driver {
	case "", DriverMSSQL, DriverODBC:
	default:
		return fmt.Errorf("unsupported driver %q (expected %s or %s)", c.Driver, DriverMSSQL, DriverODBC)
	}
	return nil
}

// DriverName returns the database/sql driver to open, defaulting to mssql.
func (c *Config) DriverName() string {
	if c.Driver == "" {
		return DriverMSSQL
	}
	return c.Driver
}

func (c *Config) port() int {
	if c.Port == 0 {
		return 1433
	}
	return c.Port
}

func (c *Config) database() string {
	if c.Database == "" {
		return "master"
	}
	return c.Database
}

func (c *Config) dialTimeout() int {
	if c.DialTimeout <= 0 {
		return 15
	}
	return c.DialTimeout
}

// BuildDSN constructs the connection string for the selected driver.
func (c *Config) BuildDSN() string {
	if c.DriverName() == DriverODBC {
		dsn := fmt.Sprintf("driver={ODBC Driver 18 for SQL Server};server=%s,%d;database=%s;TrustServerCertificate=yes",
			c.Host, c.port(), c.database())
		if c.WindowsAuth {
			return dsn + ";trusted_connection=yes"
		}
		return dsn + fmt.Sprintf(";uid=%s;pwd=%s", c.User, c.Password)
	}

	if c.WindowsAuth {
		return fmt.Sprintf("sqlserver://%s:%d?database=%s&integrated security=SSPI&dial timeout=%d",
			c.Host, c.port(), c.database(), c.dialTimeout())
	}

	user := c.User
	if c.Domain != "" {
		user = c.Domain + "\\" + c.User
	}

	u := url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(user, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.port()),
	}
	q := url.Values{}
	q.Set("database", c.database())
	q.Set("dial timeout", strconv.Itoa(c.dialTimeout()))
	if c.AppName != "" {
		q.Set("app name", c.AppName)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
