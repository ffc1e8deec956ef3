package connection

import (
	"strings"
	"testing"
)

func TestBuildDSNDefaults(t *testing.T) {
	cfg := Config{Host: "10.0.0.5", User: "sa", Password: "p@ss"}
	dsn := cfg.BuildDSN()

	if !strings.HasPrefix(dsn, "sqlserver://") {
		t.Fatalf("expected sqlserver URL, got %q", dsn)
	}
	if !strings.Contains(dsn, "10.0.0.5:1433") {
		t.Errorf("expected default port 1433 in %q", dsn)
	}
	if !strings.Contains(dsn, "database=master") {
		t.Errorf("expected default database master in %q", dsn)
	}
}

func TestBuildDSNWindowsAuth(t *testing.T) {
	cfg := Config{Host: "sql01", Port: 1435, Database: "msdb", WindowsAuth: true}
	dsn := cfg.BuildDSN()

	want := "sqlserver://sql01:1435?database=msdb&integrated security=SSPI&dial timeout=15"
	if dsn != want {
		t.Errorf("BuildDSN() = %q, want %q", dsn, want)
	}
}

func TestBuildDSNDialTimeout(t *testing.T) {
	cfg := Config{Host: "sql01", User: "sa", Password: "p", DialTimeout: 5}
	if dsn := cfg.BuildDSN(); !strings.Contains(dsn, "dial+timeout=5") {
		t.Errorf("expected dial timeout 5 in %q", dsn)
	}
}

func TestBuildDSNDomainUser(t *testing.T) {
	cfg := Config{Host: "sql01", User: "svc", Password: "x", Domain: "CORP"}
	dsn := cfg.BuildDSN()

	if !strings.Contains(dsn, "CORP%5Csvc") {
		t.Errorf("expected URL-escaped DOMAIN\\user in %q", dsn)
	}
}

func TestBuildDSNODBC(t *testing.T) {
	cfg := Config{Driver: DriverODBC, Host: "sql01", User: "sa", Password: "p"}
	dsn := cfg.BuildDSN()

	if !strings.Contains(dsn, "driver={ODBC Driver 18 for SQL Server}") {
		t.Errorf("expected ODBC driver clause in %q", dsn)
	}
	if !strings.Contains(dsn, "uid=sa;pwd=p") {
		t.Errorf("expected credentials in %q", dsn)
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{}).Validate(); err == nil {
		t.Errorf("expected error for missing host")
	}
	if err := (&Config{Host: "sql01", Driver: "mysql"}).Validate(); err == nil {
		t.Errorf("expected error for unsupported driver")
	}
	if err := (&Config{Host: "sql01"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseMajorVersion(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"15.0.2000.5", 15},
		{"11.0.2100.60", 11},
		{"garbage", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseMajorVersion(tt.in); got != tt.want {
			t.Errorf("parseMajorVersion(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
