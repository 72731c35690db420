package config

import (
	"math"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultPermissionThreshold is the highest item value restricted users see.
	DefaultPermissionThreshold = 500

	// DefaultPriorityLimit is the value an item must exceed to be priority.
	DefaultPriorityLimit = 1000

	// DefaultConcurrency is the number of reports rendered at once when
	// several report types are requested.
	DefaultConcurrency = 4

	// DefaultReportType is used when neither flags nor the config file name one.
	DefaultReportType = "CSV"

	// AppName is the application name used for XDG directory paths.
	AppName = "itemreport"
)

// Config holds all options for one itemreport invocation.
// It is populated from CLI flags and the optional config file, then passed
// down explicitly rather than kept in global state.
type Config struct {
	// PermissionThreshold is the highest item value visible to restricted users.
	PermissionThreshold float64

	// PriorityLimit is the value an item must exceed to be flagged as priority.
	PriorityLimit float64

	// ReportTypes lists the requested report types (CSV, HTML, MARKDOWN).
	// More than one type renders a batch into OutputDir.
	ReportTypes []string

	// UserName is the name printed in the report.
	UserName string

	// Role is the role of the user. Only ADMIN is privileged.
	Role string

	// Profile names a user profile from the config file.
	// Explicit UserName and Role flags override the profile values.
	Profile string

	// ItemsFile is the JSON or YAML file holding the items.
	// An empty path or "-" reads JSON from stdin.
	ItemsFile string

	// OutputFile is the destination for a single report. Empty means stdout.
	OutputFile string

	// OutputDir receives one file per report type.
	OutputDir string

	// Tee also echoes reports to stdout when writing to files.
	Tee bool

	// Markdown registers the Markdown formatter in addition to CSV and HTML.
	Markdown bool

	// Concurrency is the number of reports rendered at once in batch mode.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string

	// File is the loaded config file. Never nil after loading.
	File *File

	// SaveHistory stores every generated report in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		PermissionThreshold: DefaultPermissionThreshold,
		PriorityLimit:       DefaultPriorityLimit,
		Concurrency:         DefaultConcurrency,
		SaveHistory:         true,
		DBDir:               XDGDataDir(),
		File:                NewFile(),
	}
}

// XDGDataDir returns the XDG data directory for itemreport.
// On Linux: ~/.local/share/itemreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for itemreport.
// On Linux: ~/.config/itemreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.ReportTypes) == 0 {
		return ErrNoReportType
	}

	if c.UserName == "" {
		return ErrNoUser
	}

	if c.PermissionThreshold < 0 || math.IsNaN(c.PermissionThreshold) {
		return ErrInvalidThreshold
	}

	if c.PriorityLimit < 0 || math.IsNaN(c.PriorityLimit) {
		return ErrInvalidPriorityLimit
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.OutputFile != "" && c.OutputDir != "" {
		return ErrConflictingOutputs
	}

	if len(c.ReportTypes) > 1 && c.OutputDir == "" {
		return ErrOutputDirRequired
	}

	return nil
}
