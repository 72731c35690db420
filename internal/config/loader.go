package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".itemreport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// UserProfile is a named user stored in the config file.
type UserProfile struct {
	// Name is printed in reports.
	Name string `yaml:"name"`

	// Role is the user's role; ADMIN is the only privileged value.
	Role string `yaml:"role"`
}

// File represents the structure of the .itemreport configuration file.
// Pointer fields distinguish "not set" from an explicit zero.
type File struct {
	// Threshold overrides the permission threshold.
	Threshold *float64 `yaml:"threshold,omitempty"`

	// PriorityLimit overrides the priority limit.
	PriorityLimit *float64 `yaml:"priorityLimit,omitempty"`

	// Types are the report types generated when --type is not given.
	Types []string `yaml:"types,omitempty"`

	// Users maps profile names to users.
	Users map[string]UserProfile `yaml:"users,omitempty"`
}

// NewFile returns an empty File.
func NewFile() *File {
	return &File{Users: make(map[string]UserProfile)}
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cf := NewFile()
	if err := yaml.Unmarshal(data, cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Users == nil {
		cf.Users = make(map[string]UserProfile)
	}

	return cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .itemreport in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .itemreport in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Apply copies the values set in the file onto cfg.
// Fields already set explicitly by the caller should be applied afterwards.
func (cf *File) Apply(cfg *Config) {
	if cf.Threshold != nil {
		cfg.PermissionThreshold = *cf.Threshold
	}
	if cf.PriorityLimit != nil {
		cfg.PriorityLimit = *cf.PriorityLimit
	}
	if len(cfg.ReportTypes) == 0 && len(cf.Types) > 0 {
		cfg.ReportTypes = append([]string(nil), cf.Types...)
	}
}

// Profile returns the user profile with the given name.
func (cf *File) Profile(name string) (UserProfile, error) {
	profile, ok := cf.Users[name]
	if !ok {
		return UserProfile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return profile, nil
}
