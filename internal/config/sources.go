package config

import "time"

// Flight log source limits
const (
	// SSH source configuration
	SSHPort        = "22"
	SSHDialTimeout = 30 * time.Second
	SSHReadTimeout = 60 * time.Second

	// Google Sheets source configuration
	SheetReadTimeout = 30 * time.Second

	// SQLite store configuration
	SQLitePingTimeout = 3 * time.Second
	SQLiteReadTimeout = 30 * time.Second

	// MaxFlightLogBytes caps a single remote read of a flight log
	MaxFlightLogBytes int64 = 32 << 20
)

// SourceConfig defines how long a single flight log read may take
type SourceConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

// SourceLimits contains the read limits for every remote or stored source
type SourceLimits struct {
	SSH    SourceConfig
	Sheets SourceConfig
	SQLite SourceConfig
}

// DefaultSourceLimits provides sensible defaults
var DefaultSourceLimits = SourceLimits{
	SSH: SourceConfig{
		Timeout:  SSHReadTimeout,
		MaxBytes: MaxFlightLogBytes,
	},
	Sheets: SourceConfig{
		Timeout: SheetReadTimeout,
	},
	SQLite: SourceConfig{
		Timeout: SQLiteReadTimeout,
	},
}
