package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ruslano69/mschain/pkg/connection"
)

// Config represents the main configuration structure
type Config struct {
	Connection connection.Config `yaml:"connection"`
	Chain      string            `yaml:"chain,omitempty"`
	Audit      AuditConfig       `yaml:"audit,omitempty"`
}

// AuditConfig for audit logging settings
type AuditConfig struct {
	File     string `yaml:"file,omitempty"`     // JSON-lines file, .zst enables compression
	Database string `yaml:"database,omitempty"` // SQLite database path
}

// LoadConfig loads configuration from YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to YAML file
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateSampleConfig creates a sample configuration
func CreateSampleConfig() *Config {
	return &Config{
		Connection: connection.Config{
			Driver:   connection.DriverMSSQL,
			Host:     "localhost",
			Port:     1433,
			Database: "master",
			User:     "sa",
			Password: "YourPassword123",
		},
		Chain: "SQL02:webuser,SQL03",
		Audit: AuditConfig{
			File: "audit.jsonl",
		},
	}
}

// mergeFlags overlays non-empty flag values on top of the file config.
// Flags win so a config file can hold defaults for a whole engagement.
func mergeFlags(config *Config, flags *Flags) {
	if *flags.Host != "" {
		config.Connection.Host = *flags.Host
	}
	if *flags.Port != 0 {
		config.Connection.Port = *flags.Port
	}
	if *flags.Database != "" {
		config.Connection.Database = *flags.Database
	}
	if *flags.User != "" {
		config.Connection.User = *flags.User
	}
	if *flags.Password != "" {
		config.Connection.Password = *flags.Password
	}
	if *flags.Domain != "" {
		config.Connection.Domain = *flags.Domain
	}
	if *flags.WindowsAuth {
		config.Connection.WindowsAuth = true
	}
	if *flags.Driver != "" {
		config.Connection.Driver = *flags.Driver
	}
	if *flags.LinkChain != "" {
		config.Chain = *flags.LinkChain
	}
	if *flags.AuditFile != "" {
		config.Audit.File = *flags.AuditFile
	}
	if *flags.AuditDB != "" {
		config.Audit.Database = *flags.AuditDB
	}
}
